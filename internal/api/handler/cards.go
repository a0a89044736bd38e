package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/internal/usecases/pipeline"
)

// ListCards aceita ?status=a,b e ?attendant_id=
func ListCards(service pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := domain.CardFilter{
			AttendantID: strings.TrimSpace(r.URL.Query().Get("attendant_id")),
		}
		for _, status := range strings.Split(r.URL.Query().Get("status"), ",") {
			if status = strings.TrimSpace(status); status != "" {
				filter.Statuses = append(filter.Statuses, domain.CardStatus(status))
			}
		}

		cards, err := service.List(r.Context(), filter)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, cards)
	}
}

func GetCard(service pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		card, err := service.Get(r.Context(), pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, card)
	}
}

func CreateCard(service pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateCardRequest
		if details, err := decodeBody(r, &req); err != nil {
			writeDecodeError(w, r, details, err)
			return
		}

		card, err := service.Create(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, card)
	}
}

func UpdateCard(service pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateCardRequest
		if details, err := decodeBody(r, &req); err != nil {
			writeDecodeError(w, r, details, err)
			return
		}

		card, err := service.Update(r.Context(), pathParam(r, "id"), &req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, card)
	}
}

func MoveCard(service pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.MoveCardRequest
		if details, err := decodeBody(r, &req); err != nil {
			writeDecodeError(w, r, details, err)
			return
		}

		card, err := service.Move(r.Context(), pathParam(r, "id"), req.Status)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, card)
	}
}

func ConfirmCardPayment(service pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		card, err := service.ConfirmPayment(r.Context(), pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, card)
	}
}

func DeleteCard(service pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.Delete(r.Context(), pathParam(r, "id")); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
