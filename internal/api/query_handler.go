package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "elelem/backend/internal/errors"
	"elelem/backend/internal/interfaces"
)

// QueryHandler serves the single-shot query flow.
type QueryHandler struct {
	service interfaces.QueryService
}

func NewQueryHandler(svc interfaces.QueryService) *QueryHandler {
	return &QueryHandler{service: svc}
}

// QueryRequest is the DTO for a single-shot question.
type QueryRequest struct {
	QueryText string `json:"query_text" validate:"required,min=1"`
}

// HandleCreateQuery godoc
// @Summary      Ask a single-shot question
// @Tags         Queries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        query  body  QueryRequest  true  "Question"
// @Success      201  {object}  model.Query
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/queries [post]
func (h *QueryHandler) HandleCreateQuery(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthenticated)
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	query, err := h.service.CreateQuery(r.Context(), user.ID, req.QueryText)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, query)
}

// HandleQueryHistory godoc
// @Summary      List the user's past queries, newest first
// @Tags         Queries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.Query
// @Router       /v1/queries/history [get]
func (h *QueryHandler) HandleQueryHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthenticated)
		return
	}

	queries, err := h.service.History(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, queries)
}

// HandleGetQuery godoc
// @Summary      Get one query record
// @Description  Returns 404 for an unknown id and 403 for another user's record.
// @Tags         Queries
// @Produce      json
// @Security     BearerAuth
// @Param        queryID  path  string  true  "Query ID"
// @Success      200  {object}  model.Query
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/queries/{queryID} [get]
func (h *QueryHandler) HandleGetQuery(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthenticated)
		return
	}

	query, err := h.service.GetQuery(r.Context(), user.ID, chi.URLParam(r, "queryID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, query)
}
