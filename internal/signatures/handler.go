package signatures

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Ponnanna-Pranav/SignDoc/internal/documents"
	"github.com/Ponnanna-Pranav/SignDoc/pkg/handlers"
	"github.com/Ponnanna-Pranav/SignDoc/pkg/routes"
)

// Handler provides HTTP endpoints for signing operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a signature handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "signatures"),
	}
}

// Routes returns the signing endpoint route group. It nests under the
// document prefix so signing reads as an operation on a document.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/documents",
		Description: "Document signing and signature audit",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{id}/sign", Handler: h.Sign},
			{Method: "GET", Pattern: "/{id}/signatures", Handler: h.Events},
		},
	}
}

type signRequest struct {
	Payload string   `json:"payload"`
	Page    int      `json:"page"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Origin  Origin   `json:"origin"`
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
}

func (h *Handler) Sign(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	userID, err := documents.UserFromRequest(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req signRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if err := req.Origin.Validate(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd := SignCommand{
		DocumentID: id,
		UserID:     userID,
		Page:       req.Page,
		X:          req.X,
		Y:          req.Y,
		Origin:     req.Origin,
		Payload:    req.Payload,
	}
	if req.Width != nil && req.Height != nil {
		cmd.Size = &SizeHint{Width: *req.Width, Height: *req.Height}
	}

	result, err := h.sys.Sign(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	events, err := h.sys.Events(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, events)
}
