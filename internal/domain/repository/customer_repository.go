package repository

import (
	"context"

	"github.com/jhoicas/notify-renewals/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// GetByID devuelve (nil, nil) si no existe.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	// ListByRenewalDate devuelve los clientes habilitados cuya renovación cae en date (YYYY-MM-DD).
	ListByRenewalDate(ctx context.Context, date string) ([]*entity.Customer, error)
	// ListByRenewalBetween devuelve los clientes habilitados con from <= renovación <= to.
	ListByRenewalBetween(ctx context.Context, from, to string) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
}
