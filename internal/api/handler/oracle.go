package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shadowhunt/shadowhunt-go/internal/api/middleware"
	"github.com/shadowhunt/shadowhunt-go/internal/api/request"
	"github.com/shadowhunt/shadowhunt-go/internal/api/response"
	"github.com/shadowhunt/shadowhunt-go/internal/services/oracle"
)

// OracleHandler handles the deduction game endpoints
type OracleHandler struct {
	oracleService *oracle.Service
}

// NewOracleHandler creates a new oracle handler
func NewOracleHandler(oracleService *oracle.Service) *OracleHandler {
	return &OracleHandler{
		oracleService: oracleService,
	}
}

// Status handles GET /api/v1/oracle
func (h *OracleHandler) Status(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	round, err := h.oracleService.Status(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OracleStatusFromModel(round))
}

// Ask handles POST /api/v1/oracle/ask
func (h *OracleHandler) Ask(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.OracleAskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		WriteError(w, NewInvalidRequestError("question is required"))
		return
	}

	outcome, err := h.oracleService.Ask(r.Context(), user.ID, question)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OracleAskFromOutcome(outcome))
}

// Reset handles POST /api/v1/oracle/reset
func (h *OracleHandler) Reset(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	if err := h.oracleService.Reset(r.Context(), user.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
