package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vmoreno/padel-showdown/models"
	"github.com/vmoreno/padel-showdown/services"
)

type SnapshotHandler struct {
	snapshotService services.SnapshotService
}

func NewSnapshotHandler(ss services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: ss,
	}
}

// ExportHandler handles GET /tournaments/{tournamentID}/snapshot
func (h *SnapshotHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshotService.Export(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, snap, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ImportHandler handles POST /tournaments/import
func (h *SnapshotHandler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	var snap models.Snapshot
	if err := readJSON(w, r, &snap); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.snapshotService.Import(r.Context(), &snap)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// BackupHandler handles POST /tournaments/{tournamentID}/snapshot/backup
func (h *SnapshotHandler) BackupHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.snapshotService.Backup(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"backup": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
