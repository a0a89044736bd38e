package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/internal/usecases/authenticating"
	"github.com/vfg2006/flow-erp-api/internal/usecases/ledger"
	"github.com/vfg2006/flow-erp-api/internal/usecases/pipeline"
	"github.com/vfg2006/flow-erp-api/internal/usecases/reporting"
	"github.com/vfg2006/flow-erp-api/internal/usecases/team"
	"github.com/vfg2006/flow-erp-api/pkg/apiErrors"
	"github.com/vfg2006/flow-erp-api/pkg/log"
)

// writeServiceError converte o erro de um serviço no código da API.
// Erros sem código conhecido viram 500 e são logados.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		cardErr   *pipeline.CardError
		ledgerErr *ledger.LedgerError
		teamErr   *team.TeamError
		authErr   *authenticating.AuthError
	)

	code, message := apiErrors.ErrInternalServer, "Erro interno"
	switch {
	case errors.As(err, &cardErr):
		code, message = cardErr.Code, cardErr.Error()
	case errors.As(err, &ledgerErr):
		code, message = ledgerErr.Code, ledgerErr.Error()
	case errors.As(err, &teamErr):
		code, message = teamErr.Code, teamErr.Error()
	case errors.As(err, &authErr):
		code, message = authErr.Code, authErr.Error()
	case errors.Is(err, domain.ErrInvalidDateRange):
		code, message = apiErrors.ErrInvalidDateRange, err.Error()
	case errors.Is(err, reporting.ErrEmptySnapshot):
		code, message = apiErrors.ErrMissingRequiredData, err.Error()
	case errors.Is(err, reporting.ErrLoadFailed):
		code, message = apiErrors.ErrDatabaseOperation, "Erro ao carregar dados dos indicadores"
	}

	logger := log.ForContext(r.Context()).WithError(err).WithField("code", code)
	if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
		logger.Error("Erro ao processar requisição")
		// mensagens internas não vão para o cliente
		if code == apiErrors.ErrInternalServer || code == apiErrors.ErrDatabaseOperation {
			message = "Erro ao processar requisição"
		}
	} else {
		logger.Warn("Requisição rejeitada")
	}

	apiErrors.WriteError(w, code, message, nil)
}

// writeDecodeError responde erros de leitura ou validação do corpo
func writeDecodeError(w http.ResponseWriter, r *http.Request, details map[string]string, err error) {
	log.ForContext(r.Context()).WithError(err).Warn("Corpo da requisição inválido")
	if details != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Dados inválidos", details)
		return
	}
	apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
}

// writeRangeError responde parâmetros de período inválidos
func writeRangeError(w http.ResponseWriter, err error) {
	apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
}
