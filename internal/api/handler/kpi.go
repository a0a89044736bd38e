package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/internal/usecases/reporting"
	"github.com/vfg2006/flow-erp-api/internal/usecases/reporting/export"
	"github.com/vfg2006/flow-erp-api/pkg/apiErrors"
	"github.com/vfg2006/flow-erp-api/pkg/log"
	"github.com/vfg2006/flow-erp-api/pkg/middleware"
)

const defaultSnapshotLimit = 12

// rangeView adapta uma visão que recebe apenas o período
func rangeView[T any](view func(ctx context.Context, r *domain.DateRange) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dateRange, err := parseDateRange(r)
		if err != nil {
			writeRangeError(w, err)
			return
		}

		out, err := view(r.Context(), dateRange)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, out)
	}
}

func GetKPISummary(service reporting.Reporter) http.HandlerFunc {
	return rangeView(service.Summary)
}

func GetDashboardKPIs(service reporting.Reporter) http.HandlerFunc {
	return rangeView(service.Dashboard)
}

func GetDRE(service reporting.Reporter) http.HandlerFunc {
	return rangeView(service.DRE)
}

func GetLegacyMetrics(service reporting.Reporter) http.HandlerFunc {
	return rangeView(service.LegacyMetrics)
}

func GetProductionDashboard(service reporting.Reporter) http.HandlerFunc {
	return rangeView(service.ProductionDashboard)
}

// PostLegacyMetrics calcula a visão legada sobre o estado enviado pelo cliente
func PostLegacyMetrics(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var snapshot domain.LegacySnapshot
		if details, err := decodeBody(r, &snapshot); err != nil {
			writeDecodeError(w, r, details, err)
			return
		}

		out, err := service.LegacyMetricsFromSnapshot(r.Context(), &snapshot)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, out)
	}
}

// GetSellerDashboard mostra o painel do vendedor autenticado
func GetSellerDashboard(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		dateRange, err := parseDateRange(r)
		if err != nil {
			writeRangeError(w, err)
			return
		}

		out, err := service.SellerDashboard(r.Context(), userClaims.UserID, dateRange)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, out)
	}
}

// ListSnapshots lista os fechamentos mensais. ?limit= padrão 12, 0 traz todos.
func ListSnapshots(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshots, err := service.ListSnapshots(r.Context(), queryInt(r, "limit", defaultSnapshotLimit))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, snapshots)
	}
}

func ExportDRE(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dateRange, err := parseDateRange(r)
		if err != nil {
			writeRangeError(w, err)
			return
		}

		report, err := service.DRE(r.Context(), dateRange)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteDRE(&buf, report); err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeCSV(w, r, fmt.Sprintf("dre_%s_%s.csv", report.Period.Start, report.Period.End), buf.Bytes())
	}
}

func ExportSnapshots(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshots, err := service.ListSnapshots(r.Context(), queryInt(r, "limit", 0))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteSnapshots(&buf, snapshots); err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeCSV(w, r, "fechamentos.csv", buf.Bytes())
	}
}

func writeCSV(w http.ResponseWriter, r *http.Request, filename string, payload []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Erro ao escrever exportação")
	}
}
