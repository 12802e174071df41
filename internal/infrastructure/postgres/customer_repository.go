package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/notify-renewals/internal/domain/entity"
	"github.com/jhoicas/notify-renewals/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, company, villa, telephone, subscription, subscription_date, renewal_date, enabled`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Company, c.Villa, c.Telephone,
		c.Subscription, c.SubscriptionDate, c.RenewalDate, enabledValue(c.Enabled),
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	var c entity.Customer
	var enabled int32
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Company, &c.Villa, &c.Telephone, &c.Subscription,
		&c.SubscriptionDate, &c.RenewalDate, &enabled,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	c.Enabled = enabled != 0
	return &c, nil
}

// List devuelve todos los clientes.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	return r.list(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY company, id`)
}

// ListByRenewalDate devuelve los clientes habilitados que renuevan en date.
func (r *CustomerRepo) ListByRenewalDate(ctx context.Context, date string) ([]*entity.Customer, error) {
	return r.list(ctx, `SELECT `+customerColumns+` FROM customers
		WHERE renewal_date = $1 AND enabled = 1 ORDER BY company, id`, date)
}

// ListByRenewalBetween devuelve los clientes habilitados que renuevan en [from, to].
func (r *CustomerRepo) ListByRenewalBetween(ctx context.Context, from, to string) ([]*entity.Customer, error) {
	return r.list(ctx, `SELECT `+customerColumns+` FROM customers
		WHERE renewal_date BETWEEN $1 AND $2 AND enabled = 1 ORDER BY renewal_date, company, id`, from, to)
}

// Update reemplaza los campos editables de un cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET company = $2, villa = $3, telephone = $4, subscription = $5,
			subscription_date = $6, renewal_date = $7, enabled = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Company, c.Villa, c.Telephone, c.Subscription,
		c.SubscriptionDate, c.RenewalDate, enabledValue(c.Enabled),
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		var enabled int32
		if err := rows.Scan(&c.ID, &c.Company, &c.Villa, &c.Telephone, &c.Subscription,
			&c.SubscriptionDate, &c.RenewalDate, &enabled); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.Enabled = enabled != 0
		list = append(list, &c)
	}
	return list, rows.Err()
}

func enabledValue(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
