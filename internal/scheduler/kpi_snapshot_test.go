package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/flow-erp-api/internal/config"
	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func newTestSnapshotService(t *testing.T, lookBack int) (*KPISnapshotService, *mocks.MockReporter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)

	service := NewKPISnapshotService(reporter, &config.Config{
		KPISnapshot: config.KPISnapshot{CronSchedule: "0 5 1 * *", Enabled: true, MonthLookBack: lookBack},
	})
	service.now = func() time.Time { return time.Date(2024, time.March, 20, 5, 0, 0, 0, time.UTC) }

	return service, reporter
}

func TestKPISnapshotService_closeMonths(t *testing.T) {
	tests := []struct {
		name     string
		lookBack int
		setup    func(reporter *mocks.MockReporter)
		validate func(t *testing.T, status map[string]any)
	}{
		{
			name:     "Fecha os meses anteriores do mais recente para o mais antigo",
			lookBack: 2,
			setup: func(reporter *mocks.MockReporter) {
				gomock.InOrder(
					reporter.EXPECT().CloseMonth(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, month time.Time) (*domain.KPISnapshot, error) {
						assert.Equal(t, time.February, month.Month())
						return &domain.KPISnapshot{Period: "02-2024"}, nil
					}),
					reporter.EXPECT().CloseMonth(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, month time.Time) (*domain.KPISnapshot, error) {
						assert.Equal(t, time.January, month.Month())
						return &domain.KPISnapshot{Period: "01-2024"}, nil
					}),
				)
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, []string{"02-2024", "01-2024"}, status["last_periods"])
				assert.Equal(t, 0, status["last_failures"])
				assert.Equal(t, false, status["sync_running"])
			},
		},
		{
			name:     "Erro em um mês não interrompe os demais",
			lookBack: 3,
			setup: func(reporter *mocks.MockReporter) {
				reporter.EXPECT().CloseMonth(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, month time.Time) (*domain.KPISnapshot, error) {
					if month.Month() == time.January {
						return nil, errors.New("banco indisponível")
					}
					return &domain.KPISnapshot{Period: domain.PeriodLabel(month)}, nil
				}).Times(3)
			},
			validate: func(t *testing.T, status map[string]any) {
				assert.Equal(t, []string{"02-2024", "12-2023"}, status["last_periods"])
				assert.Equal(t, 1, status["last_failures"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, reporter := newTestSnapshotService(t, tt.lookBack)
			tt.setup(reporter)

			service.closeMonths(context.Background())
			tt.validate(t, service.GetStatus())
		})
	}
}

func TestKPISnapshotService_ignoresConcurrentRun(t *testing.T) {
	service, _ := newTestSnapshotService(t, 1)
	service.syncRunning = true

	service.closeMonths(context.Background())
	assert.False(t, service.TriggerManualSync(context.Background()))
}

func TestKPISnapshotService_lookBackMinimum(t *testing.T) {
	service, _ := newTestSnapshotService(t, 0)
	assert.Equal(t, 1, service.config.MonthLookBack)
}

func TestKPISnapshotService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewKPISnapshotService(mocks.NewMockReporter(ctrl), &config.Config{
		KPISnapshot: config.KPISnapshot{CronSchedule: "isso não é cron", Enabled: false},
	})

	require.NoError(t, service.Start(context.Background()))
}

func TestKPISnapshotService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewKPISnapshotService(mocks.NewMockReporter(ctrl), &config.Config{
		KPISnapshot: config.KPISnapshot{CronSchedule: "isso não é cron", Enabled: true},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Error(t, service.Start(ctx))
}
