package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vmoreno/padel-showdown/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

// CreateHandler handles POST /tournaments
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /tournaments
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHandler handles GET /tournaments/{tournamentID}
func (h *TournamentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.FullView(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /tournaments/{tournamentID}
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.Delete(r.Context(), chi.URLParam(r, "tournamentID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegisterCompetitorHandler handles POST /tournaments/{tournamentID}/competitors
func (h *TournamentHandler) RegisterCompetitorHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name    string     `json:"name"`
		Members *[2]string `json:"members"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	competitor, err := h.tournamentService.RegisterCompetitor(r.Context(), chi.URLParam(r, "tournamentID"), input.Name, input.Members)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"competitor": competitor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateRoundHandler handles POST /tournaments/{tournamentID}/rounds
func (h *TournamentHandler) GenerateRoundHandler(w http.ResponseWriter, r *http.Request) {
	matches, err := h.tournamentService.GenerateRound(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MatchesForRoundHandler handles GET /tournaments/{tournamentID}/rounds/{round}
func (h *TournamentHandler) MatchesForRoundHandler(w http.ResponseWriter, r *http.Request) {
	round, err := getIntFromURL(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.tournamentService.MatchesForRound(r.Context(), chi.URLParam(r, "tournamentID"), round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResultHandler handles POST /tournaments/{tournamentID}/matches/{matchID}/result
func (h *TournamentHandler) RecordResultHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIntFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		ScoreA int `json:"score_a"`
		ScoreB int `json:"score_b"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.tournamentService.RecordResult(r.Context(), chi.URLParam(r, "tournamentID"), matchID, input.ScoreA, input.ScoreB)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LeaderboardHandler handles GET /tournaments/{tournamentID}/leaderboard
func (h *TournamentHandler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := h.tournamentService.Leaderboard(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TotalRoundsHandler handles GET /tournaments/{tournamentID}/rounds
func (h *TournamentHandler) TotalRoundsHandler(w http.ResponseWriter, r *http.Request) {
	total, err := h.tournamentService.TotalPossibleRounds(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"total_possible_rounds": total}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// FinalizeHandler handles POST /tournaments/{tournamentID}/finalize
func (h *TournamentHandler) FinalizeHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.Finalize(r.Context(), chi.URLParam(r, "tournamentID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"finalized": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResetHandler handles POST /tournaments/{tournamentID}/reset
func (h *TournamentHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.ResetMatches(r.Context(), chi.URLParam(r, "tournamentID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"reset": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
