package main

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/flow-erp-api/infrastructure/cache"
	"github.com/vfg2006/flow-erp-api/infrastructure/database/postgres"
	"github.com/vfg2006/flow-erp-api/infrastructure/migration/script"
	"github.com/vfg2006/flow-erp-api/infrastructure/repository"
	"github.com/vfg2006/flow-erp-api/internal/api"
	"github.com/vfg2006/flow-erp-api/internal/api/handler"
	"github.com/vfg2006/flow-erp-api/internal/config"
	"github.com/vfg2006/flow-erp-api/internal/scheduler"
	"github.com/vfg2006/flow-erp-api/internal/usecases/authenticating"
	"github.com/vfg2006/flow-erp-api/internal/usecases/ledger"
	"github.com/vfg2006/flow-erp-api/internal/usecases/pipeline"
	"github.com/vfg2006/flow-erp-api/internal/usecases/reporting"
	"github.com/vfg2006/flow-erp-api/internal/usecases/team"
	"github.com/vfg2006/flow-erp-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar configuração")
	}

	log.Setup(cfg.App.LogLevel, cfg.App.Env)
	log.L.WithField("level", cfg.App.LogLevel).Info("Nível de log configurado")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.Bootstrap {
		if err := script.Bootstrap(ctx, pgConn); err != nil {
			log.L.WithError(err).Fatal("Erro ao criar schema do banco")
		}
	}

	userRepo := repository.NewUserRepository(pgConn)
	cardRepo := repository.NewCardRepository(pgConn)
	transactionRepo := repository.NewTransactionRepository(pgConn)
	collaboratorRepo := repository.NewCollaboratorRepository(pgConn)
	settingsRepo := repository.NewSettingsRepository(pgConn)
	projectRepo := repository.NewProjectRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)

	redisClient := newRedisClient(cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}
	kpiCache := cache.NewKPICache(redisClient, cfg.Redis.CacheTTL, cfg.Redis.BreakerTimeout)

	reporter := reporting.NewService(reporting.Repositories{
		Cards:         cardRepo,
		Transactions:  transactionRepo,
		Collaborators: collaboratorRepo,
		Settings:      settingsRepo,
		Projects:      projectRepo,
		Snapshots:     snapshotRepo,
	}, kpiCache)

	authenticator := authenticating.NewService(userRepo, cfg.Auth)
	pipelineService := pipeline.NewService(cardRepo, reporter)
	ledgerService := ledger.NewService(transactionRepo, projectRepo, reporter)
	teamService := team.NewService(collaboratorRepo, settingsRepo, reporter)

	kpiSnapshotService := scheduler.NewKPISnapshotService(reporter, cfg)
	if err := kpiSnapshotService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de fechamento mensal")
	}

	dependencies := map[string]handler.Pinger{"postgres": pgConn}
	if redisClient != nil {
		dependencies["redis"] = kpiCache
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Pipeline:      pipelineService,
		Ledger:        ledgerService,
		Team:          teamService,
		Reporter:      reporter,
		CronJobs:      handler.CronJobServices{KPISnapshotService: kpiSnapshotService},
		Dependencies:  dependencies,
	})
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao criar servidor")
	}

	if err := server.Run(ctx); err != nil {
		log.L.WithError(err).Error("Servidor encerrado com erro")
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// newRedisClient retorna nil sem REDIS_ADDR. Nesse caso os indicadores são
// calculados a cada requisição.
func newRedisClient(cfg config.Redis) *redis.Client {
	if cfg.Addr == "" {
		log.L.Info("Cache de indicadores desativado")
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
