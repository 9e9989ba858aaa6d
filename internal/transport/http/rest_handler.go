package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"quiz-scoring-engine/internal/app"
	"quiz-scoring-engine/internal/domain"
)

const (
	warnTimeLimit   = "time limit exceeded"
	warnNotRecorded = "result could not be recorded in the ranking"
)

// RESTHandler exposes the quiz use cases as JSON endpoints.
type RESTHandler struct {
	service *app.QuizService
	logger  *zap.Logger
}

func NewRESTHandler(service *app.QuizService, logger *zap.Logger) *RESTHandler {
	return &RESTHandler{service: service, logger: logger}
}

type startRequest struct {
	Nickname string `json:"nickname"`
}

type submitRequest struct {
	SessionID string            `json:"sessionId"`
	Answers   domain.Submission `json:"answers"`
}

type submitResponse struct {
	domain.ScoreResult
	Warnings []string `json:"warnings,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// Start handles POST /quizzes/{quizID}/start.
func (h *RESTHandler) Start(w http.ResponseWriter, r *http.Request) {
	quizID, err := quizIDParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req startRequest
	// the body is optional; without one the player is anonymous
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "invalid start payload"})
		return
	}

	presentation, err := h.service.Start(r.Context(), quizID, req.Nickname)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presentation)
}

// Submit handles POST /quizzes/{quizID}/submit.
func (h *RESTHandler) Submit(w http.ResponseWriter, r *http.Request) {
	quizID, err := quizIDParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "invalid submit payload"})
		return
	}

	result, err := h.service.Submit(r.Context(), quizID, req.SessionID, req.Answers)
	if err != nil && !errors.Is(err, domain.ErrRankingStore) {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSubmitResponse(result, err))
}

// Ranking handles GET /quizzes/{quizID}/ranking?limit=N.
func (h *RESTHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	quizID, err := quizIDParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeJSON(w, http.StatusBadRequest, errorPayload{Message: "invalid limit"})
			return
		}
	}

	entries, err := h.service.Ranking(r.Context(), quizID, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Results handles GET /quizzes/{quizID}/results.
func (h *RESTHandler) Results(w http.ResponseWriter, r *http.Request) {
	quizID, err := quizIDParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	entries, err := h.service.Results(r.Context(), quizID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Stats handles GET /quizzes/{quizID}/stats.
func (h *RESTHandler) Stats(w http.ResponseWriter, r *http.Request) {
	quizID, err := quizIDParam(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	stats, err := h.service.Stats(r.Context(), quizID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *RESTHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuizID):
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: err.Error()})
	case errors.Is(err, domain.ErrQuizNotFound):
		writeJSON(w, http.StatusNotFound, errorPayload{Message: err.Error()})
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorPayload{Message: "internal error"})
	}
}

func newSubmitResponse(result domain.ScoreResult, err error) submitResponse {
	resp := submitResponse{ScoreResult: result}
	if result.TimeLimitExceeded {
		resp.Warnings = append(resp.Warnings, warnTimeLimit)
	}
	if errors.Is(err, domain.ErrRankingStore) {
		resp.Warnings = append(resp.Warnings, warnNotRecorded)
	}
	return resp
}

func quizIDParam(r *http.Request) (int64, error) {
	return parseQuizID(chi.URLParam(r, "quizID"))
}

func parseQuizID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidQuizID
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
