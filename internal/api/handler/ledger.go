package handler

import (
	"net/http"

	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/internal/usecases/ledger"
	"github.com/vfg2006/flow-erp-api/pkg/apiErrors"
)

// ListTransactions filtra por período (start_date/end_date) e ?type=income|expense
func ListTransactions(service ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dateRange, err := parseDateRange(r)
		if err != nil {
			writeRangeError(w, err)
			return
		}

		filter := domain.TransactionFilter{Type: domain.TransactionType(r.URL.Query().Get("type"))}
		if dateRange != nil {
			filter.StartDate, filter.EndDate = dateRange.Start, dateRange.End
		}

		transactions, err := service.ListTransactions(r.Context(), filter)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, transactions)
	}
}

func GetTransaction(service ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transaction, err := service.GetTransaction(r.Context(), pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, transaction)
	}
}

func CreateTransaction(service ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.TransactionRequest
		if details, err := decodeBody(r, &req); err != nil {
			writeDecodeError(w, r, details, err)
			return
		}

		transaction, err := service.CreateTransaction(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, transaction)
	}
}

func UpdateTransaction(service ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.TransactionRequest
		if details, err := decodeBody(r, &req); err != nil {
			writeDecodeError(w, r, details, err)
			return
		}

		transaction, err := service.UpdateTransaction(r.Context(), pathParam(r, "id"), &req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, transaction)
	}
}

func DeleteTransaction(service ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteTransaction(r.Context(), pathParam(r, "id")); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListProjects(service ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := service.ListProjects(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, projects)
	}
}

func CreateProject(service ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.ProjectRequest
		if details, err := decodeBody(r, &req); err != nil {
			writeDecodeError(w, r, details, err)
			return
		}

		project, err := service.CreateProject(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, project)
	}
}

// RegisterProjectPayment soma um pagamento ao projeto legado e gera a entrada no caixa
func RegisterProjectPayment(service ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := pathParam(r, "id")
		if projectID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do projeto não fornecido", nil)
			return
		}

		var req domain.ProjectPaymentRequest
		if details, err := decodeBody(r, &req); err != nil {
			writeDecodeError(w, r, details, err)
			return
		}

		project, err := service.RegisterProjectPayment(r.Context(), projectID, &req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, project)
	}
}
