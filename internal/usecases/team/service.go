package team

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vfg2006/flow-erp-api/infrastructure/repository"
	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/pkg/apiErrors"
	"github.com/vfg2006/flow-erp-api/pkg/log"
	"github.com/vfg2006/flow-erp-api/pkg/utils"
)

// Team administra colaboradores e a configuração da empresa
type Team interface {
	ListCollaborators(ctx context.Context) ([]*domain.Collaborator, error)
	GetCollaborator(ctx context.Context, id string) (*domain.Collaborator, error)
	CreateCollaborator(ctx context.Context, req *domain.CollaboratorRequest) (*domain.Collaborator, error)
	UpdateCollaborator(ctx context.Context, id string, req *domain.CollaboratorRequest) (*domain.Collaborator, error)
	DeleteCollaborator(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (*domain.AppSettings, error)
	UpdateSettings(ctx context.Context, req *domain.SettingsRequest) (*domain.AppSettings, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	collaboratorRepo repository.CollaboratorRepository
	settingsRepo     repository.SettingsRepository
	invalidator      Invalidator
	now              func() time.Time
}

func NewService(collaboratorRepo repository.CollaboratorRepository, settingsRepo repository.SettingsRepository, invalidator Invalidator) Team {
	return &Service{
		collaboratorRepo: collaboratorRepo,
		settingsRepo:     settingsRepo,
		invalidator:      invalidator,
		now:              time.Now,
	}
}

func (s *Service) ListCollaborators(ctx context.Context) ([]*domain.Collaborator, error) {
	collaborators, err := s.collaboratorRepo.List(ctx)
	if err != nil {
		return nil, NewTeamError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar colaboradores")
	}
	return collaborators, nil
}

func (s *Service) GetCollaborator(ctx context.Context, id string) (*domain.Collaborator, error) {
	collaborator, err := s.collaboratorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewTeamError(err, apiErrors.ErrDatabaseOperation, "Erro ao buscar colaborador")
	}
	if collaborator == nil {
		return nil, NewTeamError(ErrCollaboratorNotFound, apiErrors.ErrNotFound, id)
	}
	return collaborator, nil
}

func (s *Service) CreateCollaborator(ctx context.Context, req *domain.CollaboratorRequest) (*domain.Collaborator, error) {
	if err := validateCollaborator(req); err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewTeamError(err, apiErrors.ErrInternalServer, "Erro ao gerar identificador")
	}

	now := s.now().UTC()
	collaborator := &domain.Collaborator{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(collaborator, req)

	if err := s.collaboratorRepo.Create(ctx, collaborator); err != nil {
		if errors.Is(err, repository.ErrDuplicated) {
			return nil, NewTeamError(err, apiErrors.ErrConflict, "colaborador já cadastrado")
		}
		return nil, NewTeamError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar colaborador")
	}

	s.invalidator.Invalidate(ctx)
	return collaborator, nil
}

func (s *Service) UpdateCollaborator(ctx context.Context, id string, req *domain.CollaboratorRequest) (*domain.Collaborator, error) {
	if err := validateCollaborator(req); err != nil {
		return nil, err
	}

	collaborator, err := s.GetCollaborator(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(collaborator, req)
	collaborator.UpdatedAt = s.now().UTC()

	if err := s.collaboratorRepo.Update(ctx, collaborator); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return nil, NewTeamError(ErrCollaboratorNotFound, apiErrors.ErrNotFound, id)
		}
		return nil, NewTeamError(err, apiErrors.ErrDatabaseOperation, "Erro ao atualizar colaborador")
	}

	s.invalidator.Invalidate(ctx)
	return collaborator, nil
}

func (s *Service) DeleteCollaborator(ctx context.Context, id string) error {
	if err := s.collaboratorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return NewTeamError(ErrCollaboratorNotFound, apiErrors.ErrNotFound, id)
		}
		return NewTeamError(err, apiErrors.ErrDatabaseOperation, "Erro ao excluir colaborador")
	}

	s.invalidator.Invalidate(ctx)
	return nil
}

// GetSettings devolve a configuração salva ou a padrão quando ainda não existe
func (s *Service) GetSettings(ctx context.Context) (*domain.AppSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, NewTeamError(err, apiErrors.ErrDatabaseOperation, "Erro ao buscar configurações")
	}
	if settings == nil {
		return domain.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *Service) UpdateSettings(ctx context.Context, req *domain.SettingsRequest) (*domain.AppSettings, error) {
	if req.TaxRate != nil {
		rate := req.TaxRate.Float()
		if rate < 0 || rate > 100 {
			return nil, NewTeamError(ErrInvalidTaxRate, apiErrors.ErrInvalidFormat, "alíquota deve estar entre 0 e 100")
		}
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if req.TaxRate != nil {
		settings.TaxRate = domain.Amount(req.TaxRate.Float())
	}
	if req.CompanyName != nil {
		settings.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	settings.UpdatedAt = s.now().UTC()

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, NewTeamError(err, apiErrors.ErrDatabaseOperation, "Erro ao salvar configurações")
	}

	log.ForContext(ctx).WithField("tax_rate", settings.TaxRate.Float()).Info("Configurações atualizadas")

	s.invalidator.Invalidate(ctx)
	return settings, nil
}

func validateCollaborator(req *domain.CollaboratorRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return NewTeamError(ErrMissingName, apiErrors.ErrMissingRequiredData, "")
	}
	for _, role := range req.Roles {
		switch role {
		case domain.RoleAdmin, domain.RoleSeller, domain.RoleProduction:
		default:
			return NewTeamError(ErrInvalidRole, apiErrors.ErrInvalidFormat, role)
		}
	}
	if req.CommissionFixed.Float() < 0 {
		return NewTeamError(ErrInvalidCommission, apiErrors.ErrInvalidFormat, "comissão fixa negativa")
	}
	if percent := req.CommissionPercent.Float(); percent < 0 || percent > 100 {
		return NewTeamError(ErrInvalidCommission, apiErrors.ErrInvalidFormat, "percentual deve estar entre 0 e 100")
	}
	return nil
}

// apply copia a requisição para o colaborador. Percentual de comissão só vale
// para quem tem o perfil de vendedor.
func apply(collaborator *domain.Collaborator, req *domain.CollaboratorRequest) {
	collaborator.UserID = req.UserID
	collaborator.Name = strings.TrimSpace(req.Name)
	collaborator.Email = strings.TrimSpace(req.Email)
	collaborator.Roles = dedupRoles(req.Roles)
	collaborator.CommissionFixed = domain.Amount(req.CommissionFixed.Float())
	collaborator.CommissionPercent = domain.Amount(req.CommissionPercent.Float())

	if !collaborator.HasRole(domain.RoleSeller) {
		collaborator.CommissionPercent = 0
	}
}

func dedupRoles(roles []string) []string {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}
	return out
}
