package pipeline

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

// Pipeline administra os cards do fluxo comercial e de produção
type Pipeline interface {
	List(ctx context.Context, filter domain.CardFilter) ([]*domain.FlowCard, error)
	Get(ctx context.Context, id string) (*domain.FlowCard, error)
	Create(ctx context.Context, req *domain.CreateCardRequest) (*domain.FlowCard, error)
	Update(ctx context.Context, id string, req *domain.UpdateCardRequest) (*domain.FlowCard, error)
	Move(ctx context.Context, id string, status domain.CardStatus) (*domain.FlowCard, error)
	ConfirmPayment(ctx context.Context, id string) (*domain.FlowCard, error)
	Delete(ctx context.Context, id string) error
}

// Invalidator descarta indicadores calculados após alterações
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	cardRepo    repository.CardRepository
	invalidator Invalidator
	now         func() time.Time
}

func NewService(cardRepo repository.CardRepository, invalidator Invalidator) Pipeline {
	return &Service{
		cardRepo:    cardRepo,
		invalidator: invalidator,
		now:         time.Now,
	}
}

func (s *Service) List(ctx context.Context, filter domain.CardFilter) ([]*domain.FlowCard, error) {
	for _, status := range filter.Statuses {
		if !status.IsValid() {
			return nil, NewCardError(ErrInvalidStatus, apiErrors.ErrInvalidFormat, "", string(status))
		}
	}

	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		return nil, NewCardError(err, apiErrors.ErrDatabaseOperation, "", "Erro ao listar cards")
	}

	return cards, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.FlowCard, error) {
	card, err := s.cardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewCardError(err, apiErrors.ErrDatabaseOperation, id, "Erro ao buscar card")
	}
	if card == nil {
		return nil, NewCardError(ErrCardNotFound, apiErrors.ErrNotFound, id, "")
	}

	return card, nil
}

func (s *Service) Create(ctx context.Context, req *domain.CreateCardRequest) (*domain.FlowCard, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, NewCardError(ErrMissingTitle, apiErrors.ErrMissingRequiredData, "", "")
	}

	status := req.Status
	if status == "" {
		status = domain.CardStatusLeads
	}
	if !status.IsValid() {
		return nil, NewCardError(ErrInvalidStatus, apiErrors.ErrInvalidFormat, "", string(status))
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewCardError(err, apiErrors.ErrInternalServer, "", "Erro ao gerar identificador")
	}

	now := s.now().UTC()
	card := &domain.FlowCard{
		ID:          id,
		Title:       title,
		ClientName:  strings.TrimSpace(req.ClientName),
		Description: req.Description,
		EntryValue:  domain.Amount(req.EntryValue.Float()),
		LeadsCount:  req.LeadsCount,
		Status:      status,
		AttendantID: req.AttendantID,
		Date:        req.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, NewCardError(err, apiErrors.ErrDatabaseOperation, id, "Erro ao criar card")
	}

	s.invalidator.Invalidate(ctx)
	return card, nil
}

// Update altera os dados do card. A data de transição (updated_at) é mantida,
// pois é ela que data o reconhecimento de receita.
func (s *Service) Update(ctx context.Context, id string, req *domain.UpdateCardRequest) (*domain.FlowCard, error) {
	card, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, NewCardError(ErrMissingTitle, apiErrors.ErrMissingRequiredData, id, "")
		}
		card.Title = title
	}
	if req.ClientName != nil {
		card.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.Description != nil {
		card.Description = req.Description
	}
	if req.EntryValue != nil {
		card.EntryValue = domain.Amount(req.EntryValue.Float())
	}
	if req.LeadsCount != nil {
		card.LeadsCount = *req.LeadsCount
	}
	if req.AttendantID != nil {
		card.AttendantID = *req.AttendantID
	}
	if req.Date != nil {
		card.Date = *req.Date
	}

	if err := s.save(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// Move leva o card para qualquer etapa e marca a data da transição
func (s *Service) Move(ctx context.Context, id string, status domain.CardStatus) (*domain.FlowCard, error) {
	if !status.IsValid() {
		return nil, NewCardError(ErrInvalidStatus, apiErrors.ErrInvalidFormat, id, string(status))
	}

	card, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	from := card.Status
	card.Status = status
	card.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, card); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"card_id": id,
		"from":    from,
		"to":      status,
	}).Info("Card movido de etapa")

	return card, nil
}

// ConfirmPayment registra o pagamento de um card aguardando pagamento e o
// envia para produção. A receita passa a contar pela regra dos cards, sem
// lançamento de entrada.
func (s *Service) ConfirmPayment(ctx context.Context, id string) (*domain.FlowCard, error) {
	card, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if card.Status != domain.CardStatusAguardandoPagamento {
		return nil, NewCardError(ErrNotAwaitingPayment, apiErrors.ErrInvalidTransition, id, string(card.Status))
	}

	return s.Move(ctx, id, domain.CardStatusEmProducao)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.cardRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return NewCardError(ErrCardNotFound, apiErrors.ErrNotFound, id, "")
		}
		return NewCardError(err, apiErrors.ErrDatabaseOperation, id, "Erro ao excluir card")
	}

	s.invalidator.Invalidate(ctx)
	return nil
}

func (s *Service) save(ctx context.Context, card *domain.FlowCard) error {
	if err := s.cardRepo.Update(ctx, card); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return NewCardError(ErrCardNotFound, apiErrors.ErrNotFound, card.ID, "")
		}
		return NewCardError(err, apiErrors.ErrDatabaseOperation, card.ID, "Erro ao salvar card")
	}

	s.invalidator.Invalidate(ctx)
	return nil
}
