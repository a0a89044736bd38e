package ledger

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

// Ledger administra lançamentos financeiros e projetos legados
type Ledger interface {
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, req *domain.TransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, req *domain.TransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]*domain.LegacyProject, error)
	CreateProject(ctx context.Context, req *domain.ProjectRequest) (*domain.LegacyProject, error)
	RegisterProjectPayment(ctx context.Context, projectID string, req *domain.ProjectPaymentRequest) (*domain.LegacyProject, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	transactionRepo repository.TransactionRepository
	projectRepo     repository.ProjectRepository
	invalidator     Invalidator
	now             func() time.Time
}

func NewService(transactionRepo repository.TransactionRepository, projectRepo repository.ProjectRepository, invalidator Invalidator) Ledger {
	return &Service{
		transactionRepo: transactionRepo,
		projectRepo:     projectRepo,
		invalidator:     invalidator,
		now:             time.Now,
	}
}

func (s *Service) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	if filter.Type != "" && !validType(filter.Type) {
		return nil, NewLedgerError(ErrInvalidType, apiErrors.ErrInvalidFormat, string(filter.Type))
	}

	transactions, err := s.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, NewLedgerError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar lançamentos")
	}

	return transactions, nil
}

func (s *Service) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewLedgerError(err, apiErrors.ErrDatabaseOperation, "Erro ao buscar lançamento")
	}
	if transaction == nil {
		return nil, NewLedgerError(ErrTransactionNotFound, apiErrors.ErrNotFound, id)
	}

	return transaction, nil
}

func (s *Service) CreateTransaction(ctx context.Context, req *domain.TransactionRequest) (*domain.Transaction, error) {
	if err := validateTransaction(req); err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewLedgerError(err, apiErrors.ErrInternalServer, "Erro ao gerar identificador")
	}

	transaction := &domain.Transaction{
		ID:          id,
		Type:        req.Type,
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		Value:       domain.Amount(req.Value.Float()),
		Date:        req.Date,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, NewLedgerError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar lançamento")
	}

	s.invalidator.Invalidate(ctx)
	return transaction, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, id string, req *domain.TransactionRequest) (*domain.Transaction, error) {
	if err := validateTransaction(req); err != nil {
		return nil, err
	}

	transaction, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	transaction.Type = req.Type
	transaction.Category = strings.TrimSpace(req.Category)
	transaction.Description = req.Description
	transaction.Value = domain.Amount(req.Value.Float())
	transaction.Date = req.Date

	if err := s.transactionRepo.Update(ctx, transaction); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return nil, NewLedgerError(ErrTransactionNotFound, apiErrors.ErrNotFound, id)
		}
		return nil, NewLedgerError(err, apiErrors.ErrDatabaseOperation, "Erro ao atualizar lançamento")
	}

	s.invalidator.Invalidate(ctx)
	return transaction, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return NewLedgerError(ErrTransactionNotFound, apiErrors.ErrNotFound, id)
		}
		return NewLedgerError(err, apiErrors.ErrDatabaseOperation, "Erro ao excluir lançamento")
	}

	s.invalidator.Invalidate(ctx)
	return nil
}

func (s *Service) ListProjects(ctx context.Context) ([]*domain.LegacyProject, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, NewLedgerError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar projetos")
	}

	return projects, nil
}

func (s *Service) CreateProject(ctx context.Context, req *domain.ProjectRequest) (*domain.LegacyProject, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewLedgerError(ErrMissingName, apiErrors.ErrMissingRequiredData, "")
	}
	if req.TotalValue.Float() < 0 || req.PaidValue.Float() < 0 {
		return nil, NewLedgerError(ErrInvalidValue, apiErrors.ErrInvalidFormat, "valores não podem ser negativos")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewLedgerError(err, apiErrors.ErrInternalServer, "Erro ao gerar identificador")
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "ativo"
	}

	now := s.now().UTC()
	project := &domain.LegacyProject{
		ID:         id,
		Name:       name,
		ClientName: strings.TrimSpace(req.ClientName),
		TotalValue: domain.Amount(req.TotalValue.Float()),
		PaidValue:  domain.Amount(req.PaidValue.Float()),
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, NewLedgerError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar projeto")
	}

	s.invalidator.Invalidate(ctx)
	return project, nil
}

// RegisterProjectPayment soma o pagamento ao projeto e gera o lançamento de
// entrada correspondente. Sem data informada, o pagamento é de hoje.
func (s *Service) RegisterProjectPayment(ctx context.Context, projectID string, req *domain.ProjectPaymentRequest) (*domain.LegacyProject, error) {
	if req.Value.Float() <= 0 {
		return nil, NewLedgerError(ErrInvalidValue, apiErrors.ErrInvalidFormat, "valor do pagamento deve ser positivo")
	}

	date := req.Date
	if date == "" {
		date = s.now().Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, NewLedgerError(ErrInvalidDate, apiErrors.ErrInvalidFormat, date)
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewLedgerError(err, apiErrors.ErrInternalServer, "Erro ao gerar identificador")
	}

	payment := &domain.Transaction{
		ID:        id,
		Type:      domain.TransactionTypeIncome,
		Category:  domain.CategoryProjectPayment,
		Value:     domain.Amount(req.Value.Float()),
		Date:      date,
		ProjectID: &projectID,
		CreatedAt: s.now().UTC(),
	}

	project, err := s.projectRepo.RegisterPayment(ctx, projectID, payment)
	if err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return nil, NewLedgerError(ErrProjectNotFound, apiErrors.ErrNotFound, projectID)
		}
		return nil, NewLedgerError(err, apiErrors.ErrDatabaseOperation, "Erro ao registrar pagamento")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"project_id": projectID,
		"value":      payment.Value.Float(),
		"date":       date,
	}).Info("Pagamento de projeto registrado")

	s.invalidator.Invalidate(ctx)
	return project, nil
}

func validateTransaction(req *domain.TransactionRequest) error {
	if !validType(req.Type) {
		return NewLedgerError(ErrInvalidType, apiErrors.ErrInvalidFormat, string(req.Type))
	}
	if req.Value.Float() < 0 {
		return NewLedgerError(ErrInvalidValue, apiErrors.ErrInvalidFormat, "valor não pode ser negativo")
	}
	if _, err := time.Parse(time.DateOnly, req.Date); err != nil {
		return NewLedgerError(ErrInvalidDate, apiErrors.ErrInvalidFormat, req.Date)
	}
	return nil
}

func validType(t domain.TransactionType) bool {
	return t == domain.TransactionTypeIncome || t == domain.TransactionTypeExpense
}
