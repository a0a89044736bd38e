package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/flow-erp-api/internal/config"
	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/pkg/log"
	"github.com/vfg2006/flow-erp-api/pkg/utils"
)

// MonthCloser grava o fechamento de indicadores de um mês
type MonthCloser interface {
	CloseMonth(ctx context.Context, month time.Time) (*domain.KPISnapshot, error)
}

// KPISnapshotConfig representa a configuração do agendador de fechamentos
type KPISnapshotConfig struct {
	CronSchedule  string
	SyncEnabled   bool
	MonthLookBack int
}

// KPISnapshotService agenda e executa o fechamento mensal dos indicadores
type KPISnapshotService struct {
	scheduler           *gocron.Scheduler
	config              KPISnapshotConfig
	closer              MonthCloser
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastPeriods         []string
	lastErrors          int
}

func NewKPISnapshotService(closer MonthCloser, appConfig *config.Config) *KPISnapshotService {
	snapshotConfig := KPISnapshotConfig{
		CronSchedule:  appConfig.KPISnapshot.CronSchedule,
		SyncEnabled:   appConfig.KPISnapshot.Enabled,
		MonthLookBack: appConfig.KPISnapshot.MonthLookBack,
	}
	if snapshotConfig.MonthLookBack < 1 {
		snapshotConfig.MonthLookBack = 1
	}

	log.L.WithFields(log.Fields{
		"cron_schedule":   snapshotConfig.CronSchedule,
		"sync_enabled":    snapshotConfig.SyncEnabled,
		"month_look_back": snapshotConfig.MonthLookBack,
	}).Info("Configuração do agendador de fechamentos carregada")

	return &KPISnapshotService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    snapshotConfig,
		closer:    closer,
		now:       time.Now,
	}
}

// Start inicia o agendador e o para quando o contexto for cancelado
func (s *KPISnapshotService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.Info("Fechamento mensal de indicadores desabilitado por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de fechamento mensal")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.closeMonths(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar fechamento mensal: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador de fechamento mensal")
		s.scheduler.Stop()
	}()

	return nil
}

// closeMonths recalcula os meses anteriores ao atual. Um mês com erro não
// interrompe os demais.
func (s *KPISnapshotService) closeMonths(ctx context.Context) {
	startTime := s.now()

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.ForContext(ctx).Info("Fechamento mensal já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	if log.GetCorrelationID(ctx) == "" {
		ctx, _ = log.WithCorrelationID(ctx)
	}
	logger := log.ForContext(ctx).WithField("job", "kpi_snapshot")

	periods := make([]string, 0, s.config.MonthLookBack)
	failures := 0

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.lastPeriods = periods
		s.lastErrors = failures
		s.syncMutex.Unlock()
	}()

	logger.Info("Iniciando fechamento mensal de indicadores")

	for _, month := range utils.PreviousMonths(startTime, s.config.MonthLookBack) {
		if ctx.Err() != nil {
			logger.Warn("Fechamento interrompido pelo cancelamento do contexto")
			return
		}

		period := domain.PeriodLabel(month)
		snapshot, err := s.closer.CloseMonth(ctx, month)
		if err != nil {
			failures++
			logger.WithError(err).WithField("period", period).Error("Erro ao fechar mês")
			continue
		}

		periods = append(periods, period)
		logger.WithFields(log.Fields{
			"period":     period,
			"revenue":    snapshot.Summary.Revenue,
			"net_profit": snapshot.Summary.NetProfit,
		}).Info("Fechamento salvo com sucesso")
	}

	logger.WithFields(log.Fields{
		"duration": time.Since(startTime).String(),
		"months":   len(periods),
		"failures": failures,
	}).Info("Fechamento mensal de indicadores concluído")
}

// TriggerManualSync dispara o fechamento fora do agendamento. Retorna false
// quando já existe uma execução em andamento.
func (s *KPISnapshotService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.ForContext(ctx).Info("Fechamento mensal já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	log.ForContext(ctx).Info("Iniciando fechamento manual de indicadores")
	go s.closeMonths(context.WithoutCancel(ctx))
	return true
}

// GetStatus retorna o status atual do fechamento
func (s *KPISnapshotService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"month_look_back":        s.config.MonthLookBack,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_periods":           s.lastPeriods,
		"last_failures":          s.lastErrors,
	}
}
