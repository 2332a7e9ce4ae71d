package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shadowhunt/shadowhunt-go/internal/api/middleware"
	"github.com/shadowhunt/shadowhunt-go/internal/api/request"
	"github.com/shadowhunt/shadowhunt-go/internal/api/response"
	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/services/hunt"
)

// HuntHandler handles the hidden-object hunt endpoints
type HuntHandler struct {
	huntService *hunt.Service
}

// NewHuntHandler creates a new hunt handler
func NewHuntHandler(huntService *hunt.Service) *HuntHandler {
	return &HuntHandler{
		huntService: huntService,
	}
}

// Start handles POST /api/v1/hunt/sessions
func (h *HuntHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.HuntStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.DeviceID == "" {
		WriteError(w, NewInvalidRequestError("deviceId is required"))
		return
	}

	view, err := h.huntService.Start(r.Context(), user.ID, req.DeviceID, req.Room)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.HuntStateFromView(view))
}

// State handles GET /api/v1/hunt/sessions/{session_id}
func (h *HuntHandler) State(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	view, err := h.huntService.State(r.Context(), user.ID, sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HuntStateFromView(view))
}

// Pan handles POST /api/v1/hunt/sessions/{session_id}/pan
func (h *HuntHandler) Pan(w http.ResponseWriter, r *http.Request) {
	var req request.HuntPanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	if err := h.huntService.Pan(r.Context(), user.ID, sessionID(r), req.Lon, req.Lat); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Click handles POST /api/v1/hunt/sessions/{session_id}/click
func (h *HuntHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req request.HuntClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	result, err := h.huntService.Click(r.Context(), user.ID, sessionID(r), hunt.ClickInput{
		DownX:     req.DownX,
		DownY:     req.DownY,
		UpX:       req.UpX,
		UpY:       req.UpY,
		ViewportW: req.ViewportWidth,
		ViewportH: req.ViewportHeight,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HuntClickFromResult(result))
}

// FinishTransition handles POST /api/v1/hunt/sessions/{session_id}/transition
func (h *HuntHandler) FinishTransition(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	view, err := h.huntService.FinishTransition(r.Context(), user.ID, sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HuntStateFromView(view))
}

// Restart handles POST /api/v1/hunt/sessions/{session_id}/restart
func (h *HuntHandler) Restart(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	view, err := h.huntService.Restart(r.Context(), user.ID, sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HuntStateFromView(view))
}

// Progress handles GET /api/v1/hunt/progress/{device_id}
func (h *HuntHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.huntService.Progress(r.Context(), mux.Vars(r)["device_id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HuntProgressResponse{
		DeviceID:      progress.DeviceID,
		RoomsUnlocked: progress.RoomsUnlocked,
	})
}

// Summary handles GET /api/v1/hunt/sessions/{session_id}/summary
func (h *HuntHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	summary, err := h.huntService.Summary(r.Context(), user.ID, sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HuntSummaryFromModel(summary))
}

func sessionID(r *http.Request) model.HuntID {
	return model.HuntID(mux.Vars(r)["session_id"])
}
