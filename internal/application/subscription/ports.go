package subscription

import (
	"context"
	"time"

	"github.com/jhoicas/notify-renewals/internal/domain/entity"
)

// RenewalReport datos del informe imprimible de renovaciones.
type RenewalReport struct {
	Title       string
	From        string
	To          string
	GeneratedAt time.Time
	Customers   []*entity.Customer
}

// RenewalReportGenerator genera la representación PDF del informe.
type RenewalReportGenerator interface {
	GenerateRenewalReport(ctx context.Context, report RenewalReport) ([]byte, error)
}
