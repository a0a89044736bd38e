package reporting

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/flow-erp-api/infrastructure/cache"
	"github.com/vfg2006/flow-erp-api/infrastructure/repository"
	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/internal/kpi"
	"github.com/vfg2006/flow-erp-api/pkg/log"
	"github.com/vfg2006/flow-erp-api/pkg/metrics"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=service.go -destination=mocks/reporter_mock.go -package=mocks

// Visões calculadas. O nome entra na chave do cache e nas métricas.
const (
	ViewSummary    = "summary"
	ViewDashboard  = "dashboard"
	ViewDRE        = "dre"
	ViewLegacy     = "legacy"
	ViewSnapshot   = "legacy_snapshot"
	ViewSeller     = "seller"
	ViewProduction = "production"
	ViewClosing    = "closing"
)

// DREDefaultDays é a janela padrão do relatório DRE
const DREDefaultDays = 30

type Reporter interface {
	Summary(ctx context.Context, r *domain.DateRange) (*domain.KPISummary, error)
	Dashboard(ctx context.Context, r *domain.DateRange) (*domain.DashboardKPIs, error)
	DRE(ctx context.Context, r *domain.DateRange) (*domain.DREReport, error)
	LegacyMetrics(ctx context.Context, r *domain.DateRange) (*domain.LegacyMetrics, error)
	LegacyMetricsFromSnapshot(ctx context.Context, snapshot *domain.LegacySnapshot) (*domain.LegacyMetrics, error)
	SellerDashboard(ctx context.Context, userID int, r *domain.DateRange) (*domain.SellerKPIs, error)
	ProductionDashboard(ctx context.Context, r *domain.DateRange) (*domain.ProductionKPIs, error)
	CloseMonth(ctx context.Context, month time.Time) (*domain.KPISnapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]*domain.KPISnapshot, error)
	Invalidate(ctx context.Context)
}

// Cache guarda as visões calculadas
type Cache interface {
	FetchJSON(ctx context.Context, dest any, loader cache.Loader, parts ...string) error
	Bump(ctx context.Context) error
}

// Repositories agrupa as fontes de dados lidas pelo cálculo
type Repositories struct {
	Cards         repository.CardRepository
	Transactions  repository.TransactionRepository
	Collaborators repository.CollaboratorRepository
	Settings      repository.SettingsRepository
	Projects      repository.ProjectRepository
	Snapshots     repository.SnapshotRepository
}

type Service struct {
	repos Repositories
	cache Cache
	group singleflight.Group
	now   func() time.Time
}

func NewService(repos Repositories, kpiCache Cache) Reporter {
	return &Service{
		repos: repos,
		cache: kpiCache,
		now:   time.Now,
	}
}

func (s *Service) Summary(ctx context.Context, r *domain.DateRange) (*domain.KPISummary, error) {
	rng, err := s.resolve(r, ViewSummary)
	if err != nil {
		return nil, err
	}

	out := &domain.KPISummary{}
	err = s.fetch(ctx, ViewSummary, out, func(ctx context.Context) (any, error) {
		in, err := s.loadInput(ctx, rng, true)
		if err != nil {
			return nil, err
		}
		return kpi.Compute(in), nil
	}, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Service) Dashboard(ctx context.Context, r *domain.DateRange) (*domain.DashboardKPIs, error) {
	rng, err := s.resolve(r, ViewDashboard)
	if err != nil {
		return nil, err
	}

	out := &domain.DashboardKPIs{}
	err = s.fetch(ctx, ViewDashboard, out, func(ctx context.Context) (any, error) {
		in, err := s.loadInput(ctx, rng, false)
		if err != nil {
			return nil, err
		}
		return kpi.Dashboard(kpi.Compute(in)), nil
	}, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Service) DRE(ctx context.Context, r *domain.DateRange) (*domain.DREReport, error) {
	rng, err := s.resolve(r, ViewDRE)
	if err != nil {
		return nil, err
	}

	out := &domain.DREReport{}
	err = s.fetch(ctx, ViewDRE, out, func(ctx context.Context) (any, error) {
		in, err := s.loadInput(ctx, rng, false)
		if err != nil {
			return nil, err
		}
		return kpi.Reports(in, kpi.Compute(in)), nil
	}, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Service) LegacyMetrics(ctx context.Context, r *domain.DateRange) (*domain.LegacyMetrics, error) {
	rng, err := s.resolve(r, ViewLegacy)
	if err != nil {
		return nil, err
	}

	out := &domain.LegacyMetrics{}
	err = s.fetch(ctx, ViewLegacy, out, func(ctx context.Context) (any, error) {
		in, err := s.loadInput(ctx, rng, true)
		if err != nil {
			return nil, err
		}
		return kpi.Legacy(kpi.Compute(in)), nil
	}, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// LegacyMetricsFromSnapshot calcula a visão legada sobre o estado enviado pelo
// cliente, sem consultar o banco nem o cache
func (s *Service) LegacyMetricsFromSnapshot(ctx context.Context, snapshot *domain.LegacySnapshot) (*domain.LegacyMetrics, error) {
	if snapshot == nil {
		return nil, ErrEmptySnapshot
	}

	rng, err := s.resolve(snapshot.Range, ViewSnapshot)
	if err != nil {
		return nil, err
	}

	timer := time.Now()
	defer s.observe(ViewSnapshot, timer)

	in := kpi.Input{
		Cards:         snapshot.Cards,
		Transactions:  snapshot.Transactions,
		Collaborators: snapshot.Collaborators,
		Projects:      snapshot.Projects,
		Settings:      snapshot.Settings,
		Range:         rng,
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"view":   ViewSnapshot,
		"period": rng.Start + ":" + rng.End,
		"cards":  len(snapshot.Cards),
	}).Debug("Calculando métricas legadas sobre estado local")

	metricsView := kpi.Legacy(kpi.Compute(in))
	return &metricsView, nil
}

// SellerDashboard calcula o painel do vendedor autenticado. O colaborador é
// encontrado pelo vínculo com o usuário; sem vínculo, a comissão é zero.
func (s *Service) SellerDashboard(ctx context.Context, userID int, r *domain.DateRange) (*domain.SellerKPIs, error) {
	rng, err := s.resolve(r, ViewSeller)
	if err != nil {
		return nil, err
	}

	userKey := strconv.Itoa(userID)
	out := &domain.SellerKPIs{}
	err = s.fetch(ctx, ViewSeller, out, func(ctx context.Context) (any, error) {
		in, err := s.loadInput(ctx, rng, false)
		if err != nil {
			return nil, err
		}

		var collaborator *domain.Collaborator
		for _, c := range in.Collaborators {
			if c != nil && c.UserID != nil && *c.UserID == userKey {
				collaborator = c
				break
			}
		}

		return kpi.Seller(in, collaborator, userKey), nil
	}, userKey, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Service) ProductionDashboard(ctx context.Context, r *domain.DateRange) (*domain.ProductionKPIs, error) {
	rng, err := s.resolve(r, ViewProduction)
	if err != nil {
		return nil, err
	}

	out := &domain.ProductionKPIs{}
	err = s.fetch(ctx, ViewProduction, out, func(ctx context.Context) (any, error) {
		cards, err := s.repos.Cards.List(ctx, domain.CardFilter{})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadFailed, errors.Wrap(err, "erro ao carregar cards"))
		}
		return kpi.Production(kpi.Input{Cards: cards, Range: rng}), nil
	}, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// CloseMonth calcula o registro canônico do mês inteiro e grava o fechamento.
// O cálculo ignora o cache para refletir o estado atual do banco.
func (s *Service) CloseMonth(ctx context.Context, month time.Time) (*domain.KPISnapshot, error) {
	rng := domain.MonthRange(month)

	timer := time.Now()
	in, err := s.loadInput(ctx, rng, true)
	if err != nil {
		return nil, err
	}
	summary := kpi.Compute(in)
	s.observe(ViewClosing, timer)

	snapshot := &domain.KPISnapshot{
		Period:  domain.PeriodLabel(month),
		Summary: summary,
	}

	if err := s.repos.Snapshots.SaveOrUpdate(ctx, snapshot); err != nil {
		return nil, err
	}
	metrics.SnapshotsSavedTotal.Inc()

	log.ForContext(ctx).WithFields(log.Fields{
		"period":     snapshot.Period,
		"revenue":    summary.Revenue,
		"net_profit": summary.NetProfit,
	}).Info("Fechamento mensal gravado")

	return snapshot, nil
}

func (s *Service) ListSnapshots(ctx context.Context, limit int) ([]*domain.KPISnapshot, error) {
	return s.repos.Snapshots.List(ctx, limit)
}

// Invalidate descarta as visões em cache após alterações nos dados
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Não foi possível invalidar o cache de indicadores")
	}
}

// resolve aplica o período padrão da visão quando nenhum foi informado
func (s *Service) resolve(r *domain.DateRange, view string) (domain.DateRange, error) {
	if r == nil {
		return DefaultRange(view, s.now()), nil
	}

	if err := r.Validate(); err != nil {
		return domain.DateRange{}, err
	}

	return *r, nil
}

// DefaultRange retorna o período padrão de cada visão. O DRE olha os últimos
// 30 dias; as demais usam o mês corrente.
func DefaultRange(view string, now time.Time) domain.DateRange {
	if view == ViewDRE {
		return domain.LastDaysRange(now, DREDefaultDays)
	}
	return domain.MonthRange(now)
}

// fetch resolve a visão pelo cache. Consultas iguais simultâneas compartilham
// um único cálculo.
func (s *Service) fetch(ctx context.Context, view string, dest any, compute cache.Loader, parts ...string) error {
	keyParts := append([]string{view}, parts...)
	flightKey := strings.Join(keyParts, ":")

	loader := func(ctx context.Context) (any, error) {
		value, err, shared := s.group.Do(flightKey, func() (interface{}, error) {
			timer := time.Now()
			defer s.observe(view, timer)
			return compute(context.WithoutCancel(ctx))
		})
		if shared {
			log.ForContext(ctx).WithField("view", view).Debug("Cálculo compartilhado com requisição simultânea")
		}
		return value, err
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return assign(dest, value)
	}

	return s.cache.FetchJSON(ctx, dest, loader, keyParts...)
}

func (s *Service) observe(view string, start time.Time) {
	metrics.KPIComputationsTotal.WithLabelValues(view).Inc()
	metrics.KPIComputeDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

// loadInput busca as coleções em paralelo. O primeiro erro cancela as demais
// buscas e nenhum cálculo é feito com dados parciais.
func (s *Service) loadInput(ctx context.Context, rng domain.DateRange, withProjects bool) (kpi.Input, error) {
	in := kpi.Input{Range: rng}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cards, err := s.repos.Cards.List(gctx, domain.CardFilter{})
		if err != nil {
			return errors.Wrap(err, "erro ao carregar cards")
		}
		in.Cards = cards
		return nil
	})

	g.Go(func() error {
		transactions, err := s.repos.Transactions.List(gctx, domain.TransactionFilter{StartDate: rng.Start, EndDate: rng.End})
		if err != nil {
			return errors.Wrap(err, "erro ao carregar lançamentos")
		}
		in.Transactions = transactions
		return nil
	})

	g.Go(func() error {
		collaborators, err := s.repos.Collaborators.List(gctx)
		if err != nil {
			return errors.Wrap(err, "erro ao carregar colaboradores")
		}
		in.Collaborators = collaborators
		return nil
	})

	g.Go(func() error {
		settings, err := s.repos.Settings.Get(gctx)
		if err != nil {
			return errors.Wrap(err, "erro ao carregar configurações")
		}
		in.Settings = settings
		return nil
	})

	if withProjects {
		g.Go(func() error {
			projects, err := s.repos.Projects.List(gctx)
			if err != nil {
				return errors.Wrap(err, "erro ao carregar projetos")
			}
			in.Projects = projects
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.ForContext(ctx).WithError(err).Error("Falha ao carregar dados para indicadores")
		return kpi.Input{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return in, nil
}

// assign copia o valor calculado para dest quando não há cache
func assign(dest any, value any) error {
	switch d := dest.(type) {
	case *domain.KPISummary:
		*d = value.(domain.KPISummary)
	case *domain.DashboardKPIs:
		*d = value.(domain.DashboardKPIs)
	case *domain.DREReport:
		*d = value.(domain.DREReport)
	case *domain.LegacyMetrics:
		*d = value.(domain.LegacyMetrics)
	case *domain.SellerKPIs:
		*d = value.(domain.SellerKPIs)
	case *domain.ProductionKPIs:
		*d = value.(domain.ProductionKPIs)
	default:
		return fmt.Errorf("tipo de destino não suportado: %T", dest)
	}
	return nil
}
