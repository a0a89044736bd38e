package pipeline

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

var fixedNow = time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mocks.MockCardRepository, *reportingmocks.MockReporter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	cardRepo := mocks.NewMockCardRepository(ctrl)
	reporter := reportingmocks.NewMockReporter(ctrl)

	return &Service{
		cardRepo:    cardRepo,
		invalidator: reporter,
		now:         func() time.Time { return fixedNow },
	}, cardRepo, reporter
}

func existingCard(status domain.CardStatus) *domain.FlowCard {
	return &domain.FlowCard{
		ID:          "card-1",
		Title:       "Site institucional",
		ClientName:  "Padaria",
		EntryValue:  1200,
		Status:      status,
		AttendantID: "7",
		CreatedAt:   time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
	}
}

func assertCardError(t *testing.T, err error, sentinel error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	var cardErr *CardError
	require.True(t, errors.As(err, &cardErr))
	assert.Equal(t, code, cardErr.Code)
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name     string
		req      *domain.CreateCardRequest
		setup    func(repo *mocks.MockCardRepository, reporter *reportingmocks.MockReporter)
		validate func(t *testing.T, card *domain.FlowCard, err error)
	}{
		{
			name: "Card novo começa em leads",
			req:  &domain.CreateCardRequest{Title: "  Loja virtual ", ClientName: "Mercado", EntryValue: 3000},
			setup: func(repo *mocks.MockCardRepository, reporter *reportingmocks.MockReporter) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				reporter.EXPECT().Invalidate(gomock.Any())
			},
			validate: func(t *testing.T, card *domain.FlowCard, err error) {
				require.NoError(t, err)
				assert.Len(t, card.ID, 12)
				assert.Equal(t, "Loja virtual", card.Title)
				assert.Equal(t, domain.CardStatusLeads, card.Status)
				assert.Equal(t, 3000.0, card.EntryValue.Float())
				assert.Equal(t, fixedNow, card.CreatedAt)
				assert.Equal(t, fixedNow, card.UpdatedAt)
			},
		},
		{
			name:  "Título vazio",
			req:   &domain.CreateCardRequest{Title: "   "},
			setup: func(repo *mocks.MockCardRepository, reporter *reportingmocks.MockReporter) {},
			validate: func(t *testing.T, card *domain.FlowCard, err error) {
				assert.Nil(t, card)
				assertCardError(t, err, ErrMissingTitle, apiErrors.ErrMissingRequiredData)
			},
		},
		{
			name:  "Status desconhecido",
			req:   &domain.CreateCardRequest{Title: "Card", Status: "arquivado"},
			setup: func(repo *mocks.MockCardRepository, reporter *reportingmocks.MockReporter) {},
			validate: func(t *testing.T, card *domain.FlowCard, err error) {
				assertCardError(t, err, ErrInvalidStatus, apiErrors.ErrInvalidFormat)
			},
		},
		{
			name: "Falha no banco não invalida o cache",
			req:  &domain.CreateCardRequest{Title: "Card"},
			setup: func(repo *mocks.MockCardRepository, reporter *reportingmocks.MockReporter) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("conexão recusada"))
			},
			validate: func(t *testing.T, card *domain.FlowCard, err error) {
				require.Error(t, err)
				var cardErr *CardError
				require.True(t, errors.As(err, &cardErr))
				assert.Equal(t, apiErrors.ErrDatabaseOperation, cardErr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, reporter := newTestService(t)
			tt.setup(repo, reporter)

			card, err := service.Create(context.Background(), tt.req)
			tt.validate(t, card, err)
		})
	}
}

func TestService_Move(t *testing.T) {
	t.Run("Marca a data da transição", func(t *testing.T) {
		service, repo, reporter := newTestService(t)
		repo.EXPECT().GetByID(gomock.Any(), "card-1").Return(existingCard(domain.CardStatusRevisao), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, card *domain.FlowCard) error {
			assert.Equal(t, domain.CardStatusConcluido, card.Status)
			assert.Equal(t, fixedNow, card.UpdatedAt)
			return nil
		})
		reporter.EXPECT().Invalidate(gomock.Any())

		card, err := service.Move(context.Background(), "card-1", domain.CardStatusConcluido)
		require.NoError(t, err)
		assert.Equal(t, domain.CardStatusConcluido, card.Status)
	})

	t.Run("Status inválido não consulta o banco", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.Move(context.Background(), "card-1", "pausado")
		assertCardError(t, err, ErrInvalidStatus, apiErrors.ErrInvalidFormat)
	})

	t.Run("Card inexistente", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		repo.EXPECT().GetByID(gomock.Any(), "nao-existe").Return(nil, nil)

		_, err := service.Move(context.Background(), "nao-existe", domain.CardStatusRevisao)
		assertCardError(t, err, ErrCardNotFound, apiErrors.ErrNotFound)
	})
}

func TestService_Update(t *testing.T) {
	service, repo, reporter := newTestService(t)
	original := existingCard(domain.CardStatusEmProducao)
	repo.EXPECT().GetByID(gomock.Any(), "card-1").Return(original, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	reporter.EXPECT().Invalidate(gomock.Any())

	value := domain.Amount(1500)
	title := "Site com blog"
	card, err := service.Update(context.Background(), "card-1", &domain.UpdateCardRequest{Title: &title, EntryValue: &value})

	require.NoError(t, err)
	assert.Equal(t, "Site com blog", card.Title)
	assert.Equal(t, 1500.0, card.EntryValue.Float())
	assert.Equal(t, domain.CardStatusEmProducao, card.Status)
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), card.UpdatedAt, "edição não altera a data da transição")
}

func TestService_ConfirmPayment(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.CardStatus
		setup    func(repo *mocks.MockCardRepository, reporter *reportingmocks.MockReporter)
		validate func(t *testing.T, card *domain.FlowCard, err error)
	}{
		{
			name:   "Aguardando pagamento vai para produção",
			status: domain.CardStatusAguardandoPagamento,
			setup: func(repo *mocks.MockCardRepository, reporter *reportingmocks.MockReporter) {
				repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
				reporter.EXPECT().Invalidate(gomock.Any())
			},
			validate: func(t *testing.T, card *domain.FlowCard, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.CardStatusEmProducao, card.Status)
				assert.Equal(t, fixedNow, card.UpdatedAt)
			},
		},
		{
			name:   "Card em negociação é rejeitado",
			status: domain.CardStatusNegociacao,
			setup:  func(repo *mocks.MockCardRepository, reporter *reportingmocks.MockReporter) {},
			validate: func(t *testing.T, card *domain.FlowCard, err error) {
				assert.Nil(t, card)
				assertCardError(t, err, ErrNotAwaitingPayment, apiErrors.ErrInvalidTransition)
			},
		},
		{
			name:   "Card concluído é rejeitado",
			status: domain.CardStatusConcluido,
			setup:  func(repo *mocks.MockCardRepository, reporter *reportingmocks.MockReporter) {},
			validate: func(t *testing.T, card *domain.FlowCard, err error) {
				assertCardError(t, err, ErrNotAwaitingPayment, apiErrors.ErrInvalidTransition)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, reporter := newTestService(t)
			repo.EXPECT().GetByID(gomock.Any(), "card-1").DoAndReturn(func(context.Context, string) (*domain.FlowCard, error) {
				return existingCard(tt.status), nil
			}).AnyTimes()
			tt.setup(repo, reporter)

			card, err := service.ConfirmPayment(context.Background(), "card-1")
			tt.validate(t, card, err)
		})
	}
}

func TestService_Delete(t *testing.T) {
	t.Run("Exclui e invalida indicadores", func(t *testing.T) {
		service, repo, reporter := newTestService(t)
		repo.EXPECT().Delete(gomock.Any(), "card-1").Return(nil)
		reporter.EXPECT().Invalidate(gomock.Any())

		assert.NoError(t, service.Delete(context.Background(), "card-1"))
	})

	t.Run("Nenhuma linha afetada vira não encontrado", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		repo.EXPECT().Delete(gomock.Any(), "card-9").Return(repository.ErrNoRowsAffected)

		err := service.Delete(context.Background(), "card-9")
		assertCardError(t, err, ErrCardNotFound, apiErrors.ErrNotFound)
	})
}

func TestService_List(t *testing.T) {
	t.Run("Repassa o filtro", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		filter := domain.CardFilter{Statuses: []domain.CardStatus{domain.CardStatusLeads}, AttendantID: "7"}
		repo.EXPECT().List(gomock.Any(), filter).Return([]*domain.FlowCard{existingCard(domain.CardStatusLeads)}, nil)

		cards, err := service.List(context.Background(), filter)
		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})

	t.Run("Filtro com status inválido", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.List(context.Background(), domain.CardFilter{Statuses: []domain.CardStatus{"x"}})
		assertCardError(t, err, ErrInvalidStatus, apiErrors.ErrInvalidFormat)
	})
}
