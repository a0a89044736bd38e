package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/flow-erp-api/internal/api/handler/router"
	"github.com/vfg2006/flow-erp-api/internal/usecases/authenticating"
	"github.com/vfg2006/flow-erp-api/internal/usecases/ledger"
	"github.com/vfg2006/flow-erp-api/internal/usecases/pipeline"
	"github.com/vfg2006/flow-erp-api/internal/usecases/reporting"
	"github.com/vfg2006/flow-erp-api/internal/usecases/team"
	"github.com/vfg2006/flow-erp-api/pkg/middleware"
)

type mw = func(http.Handler) http.Handler

func Healthcheck(deps map[string]Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(deps),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
	}
}

func Cards(service pipeline.Pipeline) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cards",
			Method:      http.MethodGet,
			Handler:     ListCards(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/cards",
			Method:      http.MethodPost,
			Handler:     CreateCard(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/cards/:id",
			Method:      http.MethodGet,
			Handler:     GetCard(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/cards/:id",
			Method:      http.MethodPut,
			Handler:     UpdateCard(service),
			Middlewares: []mw{middleware.AdminOrSeller()},
		},
		{
			Path:        "/v1/cards/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteCard(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cards/:id/status",
			Method:      http.MethodPut,
			Handler:     MoveCard(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/cards/:id/payment",
			Method:      http.MethodPost,
			Handler:     ConfirmCardPayment(service),
			Middlewares: []mw{middleware.AdminOrSeller()},
		},
	}
}

func Ledger(service ledger.Ledger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/transactions",
			Method:      http.MethodGet,
			Handler:     ListTransactions(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/transactions",
			Method:      http.MethodPost,
			Handler:     CreateTransaction(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/transactions/:id",
			Method:      http.MethodGet,
			Handler:     GetTransaction(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/transactions/:id",
			Method:      http.MethodPut,
			Handler:     UpdateTransaction(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/transactions/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteTransaction(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/projects",
			Method:      http.MethodGet,
			Handler:     ListProjects(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/projects",
			Method:      http.MethodPost,
			Handler:     CreateProject(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/projects/:id/payments",
			Method:      http.MethodPost,
			Handler:     RegisterProjectPayment(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
	}
}

func Team(service team.Team) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/collaborators",
			Method:      http.MethodGet,
			Handler:     ListCollaborators(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/collaborators",
			Method:      http.MethodPost,
			Handler:     CreateCollaborator(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/collaborators/:id",
			Method:      http.MethodPut,
			Handler:     UpdateCollaborator(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/collaborators/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteCollaborator(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/settings",
			Method:      http.MethodGet,
			Handler:     GetSettings(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/settings",
			Method:      http.MethodPut,
			Handler:     UpdateSettings(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/kpis",
			Method:      http.MethodGet,
			Handler:     GetKPISummary(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/dashboard/kpis",
			Method:      http.MethodGet,
			Handler:     GetDashboardKPIs(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/dashboard/seller",
			Method:      http.MethodGet,
			Handler:     GetSellerDashboard(service),
			Middlewares: []mw{middleware.AdminOrSeller()},
		},
		{
			Path:        "/v1/dashboard/production",
			Method:      http.MethodGet,
			Handler:     GetProductionDashboard(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/dre",
			Method:      http.MethodGet,
			Handler:     GetDRE(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/reports/dre/export",
			Method:      http.MethodGet,
			Handler:     ExportDRE(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/legacy/metrics",
			Method:      http.MethodGet,
			Handler:     GetLegacyMetrics(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/legacy/metrics",
			Method:      http.MethodPost,
			Handler:     PostLegacyMetrics(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/reports/snapshots",
			Method:      http.MethodGet,
			Handler:     ListSnapshots(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/reports/snapshots/export",
			Method:      http.MethodGet,
			Handler:     ExportSnapshots(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []mw{middleware.AdminOnly()},
		},
	}
}
