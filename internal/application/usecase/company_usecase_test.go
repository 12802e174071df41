package usecase_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notify-renewals/internal/application/dto"
	"github.com/jhoicas/notify-renewals/internal/application/livequery"
	"github.com/jhoicas/notify-renewals/internal/application/usecase"
	"github.com/jhoicas/notify-renewals/internal/domain"
	"github.com/jhoicas/notify-renewals/internal/domain/entity"
	"github.com/jhoicas/notify-renewals/pkg/logger"
)

type memCompanies map[string]entity.Company

func (m memCompanies) Create(_ context.Context, c *entity.Company) error {
	m[c.ID] = *c
	return nil
}

func (m memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := m[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m memCompanies) List(_ context.Context) ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(m))
	for _, c := range m {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memCompanies) Update(_ context.Context, c *entity.Company) error {
	m[c.ID] = *c
	return nil
}

type countingPublisher map[livequery.Topic]int

func (p countingPublisher) Publish(topic livequery.Topic) { p[topic]++ }

func TestCompanyUseCase_CrearYRenombrar(t *testing.T) {
	repo, pub := memCompanies{}, countingPublisher{}
	uc := usecase.NewCompanyUseCase(repo, pub, logger.Nop())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CompanyRequest{Name: "Acme Pools"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	renamed, err := uc.Update(ctx, created.ID, dto.CompanyRequest{Name: "Beta Company"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, renamed.ID)
	assert.Equal(t, "Beta Company", renamed.Name)
	assert.Equal(t, 2, pub[livequery.TopicCompanies])

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beta Company", got.Name)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestCompanyUseCase_NombreCorto(t *testing.T) {
	repo, pub := memCompanies{}, countingPublisher{}
	uc := usecase.NewCompanyUseCase(repo, pub, logger.Nop())

	_, err := uc.Create(context.Background(), dto.CompanyRequest{Name: "Acme"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Fields[0].Field)
	assert.Empty(t, repo)
	assert.Zero(t, pub[livequery.TopicCompanies])

	// cinco caracteres es el mínimo
	_, err = uc.Create(context.Background(), dto.CompanyRequest{Name: "Acme!"})
	assert.NoError(t, err)
}

func TestCompanyUseCase_NoEncontrada(t *testing.T) {
	uc := usecase.NewCompanyUseCase(memCompanies{}, countingPublisher{}, logger.Nop())

	_, err := uc.Update(context.Background(), "nada", dto.CompanyRequest{Name: "Acme Pools"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetByID(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
