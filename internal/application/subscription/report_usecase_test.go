package subscription_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notify-renewals/internal/application/subscription"
	"github.com/jhoicas/notify-renewals/internal/domain"
	"github.com/jhoicas/notify-renewals/pkg/timeutil"
)

type captureGenerator struct {
	got subscription.RenewalReport
	err error
}

func (g *captureGenerator) GenerateRenewalReport(_ context.Context, r subscription.RenewalReport) ([]byte, error) {
	g.got = r
	return []byte("%PDF-1.3"), g.err
}

func TestReportUseCase_Generate(t *testing.T) {
	repo := newMemRepo()
	uc := newUseCase(repo, &publishes{})
	ctx := context.Background()
	for _, start := range []string{"2024-05-01", "2024-05-20", "2024-08-01"} {
		_, err := uc.Create(ctx, request("Acme Pools", 1, start))
		require.NoError(t, err)
	}

	gen := &captureGenerator{}
	report := subscription.NewReportUseCase(repo, gen, timeutil.NewMock(today))

	doc, err := report.Generate(ctx, "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), doc)
	assert.Equal(t, "2024-06-01", gen.got.From)
	assert.Equal(t, "2024-06-30", gen.got.To)
	assert.Equal(t, today, gen.got.GeneratedAt)
	assert.Len(t, gen.got.Customers, 2)
}

func TestReportUseCase_Errores(t *testing.T) {
	repo := newMemRepo()
	gen := &captureGenerator{err: errors.New("sin fuentes")}
	report := subscription.NewReportUseCase(repo, gen, timeutil.NewMock(today))

	_, err := report.Generate(context.Background(), "2024-06-01", "junio")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = report.Generate(context.Background(), "2024-06-01", "2024-06-30")
	assert.ErrorContains(t, err, "sin fuentes")
}
