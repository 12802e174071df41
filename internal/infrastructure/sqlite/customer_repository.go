package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/notify-renewals/internal/domain/entity"
	"github.com/jhoicas/notify-renewals/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, company, villa, telephone, subscription, subscription_date, renewal_date, enabled`

// CustomerRepo implementación de CustomerRepository sobre SQLite.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Company, nullString(c.Villa), nullString(c.Telephone),
		c.Subscription, c.SubscriptionDate, c.RenewalDate, boolToInt(c.Enabled),
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List devuelve todos los clientes.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	return r.list(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY company, id`)
}

// ListByRenewalDate devuelve los clientes habilitados que renuevan en date.
func (r *CustomerRepo) ListByRenewalDate(ctx context.Context, date string) ([]*entity.Customer, error) {
	return r.list(ctx, `SELECT `+customerColumns+` FROM customers
		WHERE renewal_date = ? AND enabled = 1 ORDER BY company, id`, date)
}

// ListByRenewalBetween devuelve los clientes habilitados que renuevan en [from, to].
// Las fechas YYYY-MM-DD ordenan igual como texto que como fecha.
func (r *CustomerRepo) ListByRenewalBetween(ctx context.Context, from, to string) ([]*entity.Customer, error) {
	return r.list(ctx, `SELECT `+customerColumns+` FROM customers
		WHERE renewal_date BETWEEN ? AND ? AND enabled = 1 ORDER BY renewal_date, company, id`, from, to)
}

// Update reemplaza los campos editables de un cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET company = ?, villa = ?, telephone = ?, subscription = ?,
			subscription_date = ?, renewal_date = ?, enabled = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Company, nullString(c.Villa), nullString(c.Telephone), c.Subscription,
		c.SubscriptionDate, c.RenewalDate, boolToInt(c.Enabled), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Customer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(s scanner) (*entity.Customer, error) {
	var (
		c                entity.Customer
		villa, telephone sql.NullString
		enabled          int64
	)
	if err := s.Scan(&c.ID, &c.Company, &villa, &telephone, &c.Subscription,
		&c.SubscriptionDate, &c.RenewalDate, &enabled); err != nil {
		return nil, err
	}
	c.Villa = stringPtr(villa)
	c.Telephone = stringPtr(telephone)
	c.Enabled = enabled != 0
	return &c, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
