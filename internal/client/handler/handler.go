// Package handler wires the client registry to its HTTP surface.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"crmsimples/internal/client/models"
	"crmsimples/internal/client/service"
	"crmsimples/pkg/httputil"
	"crmsimples/pkg/requestcontext"
)

// Service defines the registry operations the handler depends on.
type Service interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
	ListFiltered(ctx context.Context, status, name string) ([]*models.Client, error)
	Update(ctx context.Context, id uuid.UUID, patch service.UpdateParams) (*models.Client, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Handler exposes client endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a client handler.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts client endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/clients", h.HandleCreate)
	r.Get("/clients", h.HandleList)
	r.Get("/clients/{id}", h.HandleGet)
	r.Put("/clients/{id}", h.HandleUpdate)
	r.Delete("/clients/{id}", h.HandleDelete)
}

// HandleCreate handles POST /clients.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, map[string]string{"body": "JSON malformado"})
		return
	}
	if details := req.Validate(); len(details) > 0 {
		httputil.WriteValidation(w, details)
		return
	}

	created, err := h.service.Create(ctx, req.ToModel())
	if err != nil {
		h.logger.WarnContext(ctx, "client creation rejected",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, created)
}

// HandleList handles GET /clients with optional status and name filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := r.URL.Query().Get("status")
	name := r.URL.Query().Get("name")

	var (
		clients []*models.Client
		err     error
	)
	if status == "" && name == "" {
		clients, err = h.service.List(ctx)
	} else {
		clients, err = h.service.ListFiltered(ctx, status, name)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "client listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, clients)
}

// HandleGet handles GET /clients/{id}. A missing record is a 404, the one
// endpoint where absence maps to not-found instead of a business failure.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	client, err := h.service.GetByID(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, client)
}

// HandleUpdate handles PUT /clients/{id} with partial update semantics.
// Not-found is reported as a business-rule 400, preserving the original API
// contract.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, map[string]string{"body": "JSON malformado"})
		return
	}
	if details := req.Validate(); len(details) > 0 {
		httputil.WriteValidation(w, details)
		return
	}

	updated, err := h.service.Update(ctx, id, req.ToParams())
	if err != nil {
		h.logger.WarnContext(ctx, "client update rejected",
			"request_id", requestcontext.RequestID(ctx),
			"client_id", id,
			"error", err,
		)
		httputil.WriteBusinessError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /clients/{id} (soft delete). Not-found is a
// business-rule 400, matching the original contract.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.SoftDelete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "client deletion rejected",
			"request_id", requestcontext.RequestID(ctx),
			"client_id", id,
			"error", err,
		)
		httputil.WriteBusinessError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, map[string]string{"id": "identificador inválido"})
		return uuid.Nil, false
	}
	return id, true
}
