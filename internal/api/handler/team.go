package handler

import (
	"net/http"

	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/internal/usecases/team"
)

func ListCollaborators(service team.Team) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collaborators, err := service.ListCollaborators(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, collaborators)
	}
}

func CreateCollaborator(service team.Team) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CollaboratorRequest
		if details, err := decodeBody(r, &req); err != nil {
			writeDecodeError(w, r, details, err)
			return
		}

		collaborator, err := service.CreateCollaborator(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, collaborator)
	}
}

func UpdateCollaborator(service team.Team) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CollaboratorRequest
		if details, err := decodeBody(r, &req); err != nil {
			writeDecodeError(w, r, details, err)
			return
		}

		collaborator, err := service.UpdateCollaborator(r.Context(), pathParam(r, "id"), &req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, collaborator)
	}
}

func DeleteCollaborator(service team.Team) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteCollaborator(r.Context(), pathParam(r, "id")); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetSettings(service team.Team) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := service.GetSettings(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, settings)
	}
}

func UpdateSettings(service team.Team) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SettingsRequest
		if details, err := decodeBody(r, &req); err != nil {
			writeDecodeError(w, r, details, err)
			return
		}

		settings, err := service.UpdateSettings(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, settings)
	}
}
