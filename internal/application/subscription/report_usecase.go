package subscription

import (
	"context"
	"fmt"

	"github.com/jhoicas/notify-renewals/internal/domain/repository"
	"github.com/jhoicas/notify-renewals/pkg/timeutil"
)

// ReportUseCase genera el informe PDF de renovaciones de un rango de fechas.
type ReportUseCase struct {
	repo  repository.CustomerRepository
	gen   RenewalReportGenerator
	clock timeutil.Provider
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.CustomerRepository, gen RenewalReportGenerator, clock timeutil.Provider) *ReportUseCase {
	return &ReportUseCase{repo: repo, gen: gen, clock: clock}
}

// Generate devuelve los bytes del PDF con los clientes habilitados que renuevan entre from y to.
func (uc *ReportUseCase) Generate(ctx context.Context, from, to string) ([]byte, error) {
	fromDay, toDay, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByRenewalBetween(ctx, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	doc, err := uc.gen.GenerateRenewalReport(ctx, RenewalReport{
		Title:       "Renovaciones",
		From:        fromDay,
		To:          toDay,
		GeneratedAt: uc.clock.Now(),
		Customers:   list,
	})
	if err != nil {
		return nil, fmt.Errorf("generar informe de renovaciones: %w", err)
	}
	return doc, nil
}
