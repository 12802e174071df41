// Package subscription contiene los casos de uso de clientes y sus renovaciones.
package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/notify-renewals/internal/application/dto"
	"github.com/jhoicas/notify-renewals/internal/application/livequery"
	"github.com/jhoicas/notify-renewals/internal/application/validation"
	"github.com/jhoicas/notify-renewals/internal/domain"
	"github.com/jhoicas/notify-renewals/internal/domain/entity"
	"github.com/jhoicas/notify-renewals/internal/domain/renewal"
	"github.com/jhoicas/notify-renewals/internal/domain/repository"
	"github.com/jhoicas/notify-renewals/pkg/logger"
	"github.com/jhoicas/notify-renewals/pkg/timeutil"
)

// DefaultSubscriptionMonths duración propuesta en el formulario de alta.
const DefaultSubscriptionMonths = 3

// CustomerUseCase casos de uso para clientes. Garantiza que renewal_date
// siempre se recalcula y se guarda junto con subscription y subscription_date.
type CustomerUseCase struct {
	repo    repository.CustomerRepository
	changes livequery.Publisher
	clock   timeutil.Provider
	loc     *time.Location
	v       *validation.Validator
	log     *logger.Logger
}

// NewCustomerUseCase construye el caso de uso. loc define qué es "hoy".
func NewCustomerUseCase(
	repo repository.CustomerRepository,
	changes livequery.Publisher,
	clock timeutil.Provider,
	loc *time.Location,
	log *logger.Logger,
) *CustomerUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &CustomerUseCase{
		repo:    repo,
		changes: changes,
		clock:   clock,
		loc:     loc,
		v:       validation.Default(),
		log:     log.Component("customers"),
	}
}

// Create valida, calcula la renovación y persiste un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := uc.v.Struct(in); err != nil {
		return nil, err
	}
	customer := &entity.Customer{
		ID:      uuid.New().String(),
		Enabled: true,
	}
	if err := applyRequest(customer, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	uc.changes.Publish(livequery.TopicCustomers)
	uc.log.Info().
		Str("customer_id", customer.ID).
		Str("renewal_date", customer.RenewalDate).
		Msg("cliente creado")
	return entityToCustomerResponse(customer), nil
}

// CreateChained crea el cliente y devuelve el siguiente borrador con la misma empresa,
// para dar de alta varios clientes seguidos.
func (uc *CustomerUseCase) CreateChained(ctx context.Context, in dto.CustomerRequest) (*dto.CreateCustomerResult, error) {
	created, err := uc.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	next := uc.Defaults()
	next.Company = created.Company
	return &dto.CreateCustomerResult{Customer: *created, Next: &next}, nil
}

// Update reemplaza los campos editables del cliente y recalcula la renovación aunque
// subscription y subscription_date no cambien. El ID nunca se modifica.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.v.Struct(in); err != nil {
		return nil, err
	}
	if err := applyRequest(customer, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	uc.changes.Publish(livequery.TopicCustomers)
	uc.log.Info().
		Str("customer_id", customer.ID).
		Str("renewal_date", customer.RenewalDate).
		Msg("cliente actualizado")
	return entityToCustomerResponse(customer), nil
}

// Delete elimina un cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.changes.Publish(livequery.TopicCustomers)
	uc.log.Info().Str("customer_id", id).Msg("cliente eliminado")
	return nil
}

// GetByID obtiene un cliente. Devuelve domain.ErrNotFound si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCustomerResponse(customer), nil
}

// List lista todos los clientes.
func (uc *CustomerUseCase) List(ctx context.Context) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerListResponse{Items: toCustomerResponses(list)}, nil
}

// RenewalsOn lista los clientes habilitados que renuevan el día date (YYYY-MM-DD).
func (uc *CustomerUseCase) RenewalsOn(ctx context.Context, date string) (*dto.RenewalListResponse, error) {
	d, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, domain.NewValidationError("date", "Date debe ser una fecha YYYY-MM-DD")
	}
	day := timeutil.FormatDate(d)
	list, err := uc.repo.ListByRenewalDate(ctx, day)
	if err != nil {
		return nil, err
	}
	return &dto.RenewalListResponse{From: day, To: day, Items: toCustomerResponses(list)}, nil
}

// RenewalsToday lista los clientes que renuevan hoy.
func (uc *CustomerUseCase) RenewalsToday(ctx context.Context) (*dto.RenewalListResponse, error) {
	return uc.RenewalsOn(ctx, uc.Today())
}

// RenewalsBetween lista los clientes habilitados que renuevan entre from y to, ambos incluidos.
func (uc *CustomerUseCase) RenewalsBetween(ctx context.Context, from, to string) (*dto.RenewalListResponse, error) {
	fromDay, toDay, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByRenewalBetween(ctx, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	return &dto.RenewalListResponse{From: fromDay, To: toDay, Items: toCustomerResponses(list)}, nil
}

// WatchRenewalsToday emite la lista de renovaciones de hoy y la vuelve a emitir tras cada
// cambio en clientes y en cada medianoche de loc. "Hoy" se evalúa en cada emisión.
func (uc *CustomerUseCase) WatchRenewalsToday(ctx context.Context, hub *livequery.Hub) <-chan livequery.Snapshot[*dto.RenewalListResponse] {
	untilMidnight := func() time.Duration {
		return timeutil.UntilNextMidnight(uc.clock.Now(), uc.loc)
	}
	return livequery.Watch(ctx, hub, livequery.TopicCustomers, uc.RenewalsToday, livequery.WakeAfter(untilMidnight))
}

// Defaults valores iniciales del formulario de alta.
func (uc *CustomerUseCase) Defaults() dto.CustomerDraft {
	today := uc.Today()
	renewalDate, _ := renewal.DeriveRenewalDateString(today, DefaultSubscriptionMonths)
	return dto.CustomerDraft{
		Subscription:     DefaultSubscriptionMonths,
		SubscriptionDate: today,
		RenewalDate:      renewalDate,
		Enabled:          true,
	}
}

// PreviewRenewal calcula la renovación sin persistir nada (campo de solo lectura del formulario).
func (uc *CustomerUseCase) PreviewRenewal(in dto.RenewalPreviewRequest) (*dto.RenewalPreviewResponse, error) {
	if err := uc.v.Struct(in); err != nil {
		return nil, err
	}
	renewalDate, err := renewal.DeriveRenewalDateString(in.SubscriptionDate, in.Subscription)
	if err != nil {
		return nil, domain.NewValidationError("subscription_date", err.Error())
	}
	return &dto.RenewalPreviewResponse{RenewalDate: renewalDate}, nil
}

// Today fecha de hoy en la zona configurada.
func (uc *CustomerUseCase) Today() string {
	return timeutil.Today(uc.clock.Now(), uc.loc)
}

// applyRequest copia la entrada ya validada sobre customer y recalcula la renovación.
func applyRequest(customer *entity.Customer, in dto.CustomerRequest) error {
	start, err := timeutil.ParseDate(in.SubscriptionDate)
	if err != nil {
		return domain.NewValidationError("subscription_date", err.Error())
	}
	customer.Company = in.Company
	customer.Villa = in.Villa
	customer.Telephone = in.Telephone
	customer.Subscription = in.Subscription
	customer.SubscriptionDate = timeutil.FormatDate(start)
	customer.RenewalDate = timeutil.FormatDate(renewal.DeriveRenewalDate(start, in.Subscription))
	if in.Enabled != nil {
		customer.Enabled = *in.Enabled
	}
	return nil
}

func parseRange(from, to string) (string, string, error) {
	f, err := timeutil.ParseDate(from)
	if err != nil {
		return "", "", domain.NewValidationError("from", "From debe ser una fecha YYYY-MM-DD")
	}
	t, err := timeutil.ParseDate(to)
	if err != nil {
		return "", "", domain.NewValidationError("to", "To debe ser una fecha YYYY-MM-DD")
	}
	if t.Before(f) {
		return "", "", domain.NewValidationError("to", "To debe ser posterior o igual a From")
	}
	return timeutil.FormatDate(f), timeutil.FormatDate(t), nil
}

func toCustomerResponses(list []*entity.Customer) []dto.CustomerResponse {
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *entityToCustomerResponse(c))
	}
	return out
}

func entityToCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:               c.ID,
		Company:          c.Company,
		Villa:            c.Villa,
		Telephone:        c.Telephone,
		Subscription:     c.Subscription,
		SubscriptionDate: c.SubscriptionDate,
		RenewalDate:      c.RenewalDate,
		Enabled:          c.Enabled,
	}
}
