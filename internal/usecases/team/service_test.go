package team

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/flow-erp-api/infrastructure/repository"
	"github.com/vfg2006/flow-erp-api/infrastructure/repository/mocks"
	"github.com/vfg2006/flow-erp-api/internal/domain"
	reportingmocks "github.com/vfg2006/flow-erp-api/internal/usecases/reporting/mocks"
	"github.com/vfg2006/flow-erp-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type teamMocks struct {
	collaborators *mocks.MockCollaboratorRepository
	settings      *mocks.MockSettingsRepository
	reporter      *reportingmocks.MockReporter
}

var fixedNow = time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, teamMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := teamMocks{
		collaborators: mocks.NewMockCollaboratorRepository(ctrl),
		settings:      mocks.NewMockSettingsRepository(ctrl),
		reporter:      reportingmocks.NewMockReporter(ctrl),
	}

	return &Service{
		collaboratorRepo: m.collaborators,
		settingsRepo:     m.settings,
		invalidator:      m.reporter,
		now:              func() time.Time { return fixedNow },
	}, m
}

func teamCode(t *testing.T, err error) string {
	t.Helper()
	var teamErr *TeamError
	require.True(t, errors.As(err, &teamErr), "esperado TeamError, obtido %v", err)
	return teamErr.Code
}

func TestService_CreateCollaborator(t *testing.T) {
	tests := []struct {
		name     string
		req      *domain.CollaboratorRequest
		setup    func(m teamMocks)
		validate func(t *testing.T, c *domain.Collaborator, err error)
	}{
		{
			name: "Vendedor mantém o percentual",
			req:  &domain.CollaboratorRequest{Name: "Ana", Roles: []string{domain.RoleSeller}, CommissionPercent: 10, CommissionFixed: 500},
			setup: func(m teamMocks) {
				m.collaborators.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				m.reporter.EXPECT().Invalidate(gomock.Any())
			},
			validate: func(t *testing.T, c *domain.Collaborator, err error) {
				require.NoError(t, err)
				assert.NotEmpty(t, c.ID)
				assert.Equal(t, 10.0, c.CommissionPercent.Float())
				assert.Equal(t, 500.0, c.CommissionFixed.Float())
				assert.Equal(t, fixedNow, c.CreatedAt)
			},
		},
		{
			name: "Produção não recebe percentual",
			req:  &domain.CollaboratorRequest{Name: "Bruno", Roles: []string{domain.RoleProduction, domain.RoleProduction}, CommissionPercent: 8, CommissionFixed: 2000},
			setup: func(m teamMocks) {
				m.collaborators.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				m.reporter.EXPECT().Invalidate(gomock.Any())
			},
			validate: func(t *testing.T, c *domain.Collaborator, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0.0, c.CommissionPercent.Float())
				assert.Equal(t, 2000.0, c.CommissionFixed.Float())
				assert.Equal(t, []string{domain.RoleProduction}, c.Roles)
			},
		},
		{
			name:  "Perfil desconhecido",
			req:   &domain.CollaboratorRequest{Name: "Carla", Roles: []string{"gerente"}},
			setup: func(m teamMocks) {},
			validate: func(t *testing.T, c *domain.Collaborator, err error) {
				assert.ErrorIs(t, err, ErrInvalidRole)
				assert.Equal(t, apiErrors.ErrInvalidFormat, teamCode(t, err))
			},
		},
		{
			name:  "Percentual acima de 100",
			req:   &domain.CollaboratorRequest{Name: "Davi", Roles: []string{domain.RoleSeller}, CommissionPercent: 120},
			setup: func(m teamMocks) {},
			validate: func(t *testing.T, c *domain.Collaborator, err error) {
				assert.ErrorIs(t, err, ErrInvalidCommission)
			},
		},
		{
			name: "Colaborador duplicado",
			req:  &domain.CollaboratorRequest{Name: "Ana", Roles: []string{domain.RoleSeller}},
			setup: func(m teamMocks) {
				m.collaborators.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicated)
			},
			validate: func(t *testing.T, c *domain.Collaborator, err error) {
				assert.ErrorIs(t, err, repository.ErrDuplicated)
				assert.Equal(t, apiErrors.ErrConflict, teamCode(t, err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestService(t)
			tt.setup(m)

			c, err := service.CreateCollaborator(context.Background(), tt.req)
			tt.validate(t, c, err)
		})
	}
}

func TestService_UpdateCollaborator(t *testing.T) {
	t.Run("Perda do perfil de vendedor zera o percentual", func(t *testing.T) {
		service, m := newTestService(t)
		m.collaborators.EXPECT().GetByID(gomock.Any(), "c1").Return(&domain.Collaborator{
			ID: "c1", Name: "Ana", Roles: []string{domain.RoleSeller}, CommissionPercent: 10,
		}, nil)
		m.collaborators.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		m.reporter.EXPECT().Invalidate(gomock.Any())

		c, err := service.UpdateCollaborator(context.Background(), "c1", &domain.CollaboratorRequest{
			Name: "Ana", Roles: []string{domain.RoleAdmin}, CommissionPercent: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, 0.0, c.CommissionPercent.Float())
		assert.Equal(t, fixedNow, c.UpdatedAt)
	})

	t.Run("Colaborador inexistente", func(t *testing.T) {
		service, m := newTestService(t)
		m.collaborators.EXPECT().GetByID(gomock.Any(), "c9").Return(nil, nil)

		_, err := service.UpdateCollaborator(context.Background(), "c9", &domain.CollaboratorRequest{Name: "X", Roles: []string{domain.RoleSeller}})
		assert.ErrorIs(t, err, ErrCollaboratorNotFound)
		assert.Equal(t, apiErrors.ErrNotFound, teamCode(t, err))
	})
}

func TestService_DeleteCollaborator(t *testing.T) {
	service, m := newTestService(t)
	m.collaborators.EXPECT().Delete(gomock.Any(), "c1").Return(nil)
	m.reporter.EXPECT().Invalidate(gomock.Any())

	assert.NoError(t, service.DeleteCollaborator(context.Background(), "c1"))
}

func TestService_GetSettings(t *testing.T) {
	t.Run("Sem configuração salva usa alíquota padrão", func(t *testing.T) {
		service, m := newTestService(t)
		m.settings.EXPECT().Get(gomock.Any()).Return(nil, nil)

		settings, err := service.GetSettings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, float64(domain.DefaultTaxRate), settings.TaxRate.Float())
	})

	t.Run("Erro do banco", func(t *testing.T) {
		service, m := newTestService(t)
		m.settings.EXPECT().Get(gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := service.GetSettings(context.Background())
		assert.Equal(t, apiErrors.ErrDatabaseOperation, teamCode(t, err))
	})
}

func TestService_UpdateSettings(t *testing.T) {
	t.Run("Altera só o que foi enviado", func(t *testing.T) {
		service, m := newTestService(t)
		m.settings.EXPECT().Get(gomock.Any()).Return(&domain.AppSettings{TaxRate: 15, CompanyName: "Flow"}, nil)
		m.settings.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *domain.AppSettings) error {
			assert.Equal(t, 6.0, s.TaxRate.Float())
			assert.Equal(t, "Flow", s.CompanyName)
			return nil
		})
		m.reporter.EXPECT().Invalidate(gomock.Any())

		rate := domain.Amount(6)
		settings, err := service.UpdateSettings(context.Background(), &domain.SettingsRequest{TaxRate: &rate})
		require.NoError(t, err)
		assert.Equal(t, fixedNow, settings.UpdatedAt)
	})

	t.Run("Alíquota fora do intervalo", func(t *testing.T) {
		service, _ := newTestService(t)

		rate := domain.Amount(150)
		_, err := service.UpdateSettings(context.Background(), &domain.SettingsRequest{TaxRate: &rate})
		assert.ErrorIs(t, err, ErrInvalidTaxRate)
	})
}
