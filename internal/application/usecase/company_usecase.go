package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/notify-renewals/internal/application/dto"
	"github.com/jhoicas/notify-renewals/internal/application/livequery"
	"github.com/jhoicas/notify-renewals/internal/application/validation"
	"github.com/jhoicas/notify-renewals/internal/domain"
	"github.com/jhoicas/notify-renewals/internal/domain/entity"
	"github.com/jhoicas/notify-renewals/internal/domain/repository"
	"github.com/jhoicas/notify-renewals/pkg/logger"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo    repository.CompanyRepository
	changes livequery.Publisher
	v       *validation.Validator
	log     *logger.Logger
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, changes livequery.Publisher, log *logger.Logger) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, changes: changes, v: validation.Default(), log: log.Component("companies")}
}

// Create crea una nueva empresa. Devuelve *domain.ValidationError si el nombre tiene menos de 5 caracteres.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if err := uc.v.Struct(in); err != nil {
		return nil, err
	}
	company := &entity.Company{
		ID:   uuid.New().String(),
		Name: in.Name,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	uc.changes.Publish(livequery.TopicCompanies)
	uc.log.Info().Str("company_id", company.ID).Msg("empresa creada")
	return entityToCompanyResponse(company), nil
}

// Update renombra una empresa. Los clientes guardan una copia del nombre y no se modifican.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.v.Struct(in); err != nil {
		return nil, err
	}
	existing.Name = in.Name
	if err := uc.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	uc.changes.Publish(livequery.TopicCompanies)
	uc.log.Info().Str("company_id", existing.ID).Msg("empresa actualizada")
	return entityToCompanyResponse(existing), nil
}

// GetByID obtiene una empresa por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// List lista todas las empresas.
func (uc *CompanyUseCase) List(ctx context.Context) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:   c.ID,
		Name: c.Name,
	}
}
