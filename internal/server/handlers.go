package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytshelf/internal/collections"
	"github.com/desertthunder/ytshelf/internal/models"
	"github.com/desertthunder/ytshelf/internal/shared"
	"github.com/go-chi/chi/v5"
)

// ownerHeader carries the authenticated owner id, resolved by the upstream
// session layer.
const ownerHeader = "X-Owner-ID"

// Handler holds dependencies for the collection API endpoints.
type Handler struct {
	engine *collections.Engine
	logger *log.Logger
}

// NewHandler creates a Handler backed by the given engine.
func NewHandler(engine *collections.Engine, logger *log.Logger) *Handler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Handler{engine: engine, logger: logger}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateCollection handles POST /api/collections.
func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var draft models.CollectionDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	view, err := h.engine.CreateCollection(owner, draft)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, view)
}

// ListCollections handles GET /api/collections.
func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	opts := collections.ListOpts{
		IncludeChildren: boolQuery(r, "include_children"),
		IncludeContent:  boolQuery(r, "include_content"),
		IncludeSettings: boolQuery(r, "include_settings"),
	}
	if parentID := r.URL.Query().Get("parent_id"); parentID != "" {
		opts.ParentID = &parentID
	}

	views, err := h.engine.ListCollections(owner, opts)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, views)
}

// GetCollection handles GET /api/collections/{id}.
func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	view, err := h.engine.GetCollection(chi.URLParam(r, "id"), collections.GetOpts{
		IncludeChildren: boolQuery(r, "include_children"),
		IncludeContent:  boolQuery(r, "include_content"),
		IncludeSettings: boolQuery(r, "include_settings"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	if view.OwnerID != owner && !view.IsPublic {
		h.writeError(w, shared.ErrUnauthorized)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

// UpdateCollection handles PATCH /api/collections/{id}.
func (h *Handler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !h.checkOwnership(w, id, owner) {
		return
	}

	var patch models.CollectionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	view, err := h.engine.UpdateCollection(id, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

// DeleteCollection handles DELETE /api/collections/{id}.
func (h *Handler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !h.checkOwnership(w, id, owner) {
		return
	}

	if err := h.engine.DeleteCollection(id); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// moveRequest is the body of a move call. A null parent detaches the
// collection to the root.
type moveRequest struct {
	ParentID *string `json:"parent_id"`
	Position *int    `json:"position"`
}

// MoveCollection handles PUT /api/collections/{id}/move.
func (h *Handler) MoveCollection(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !h.checkOwnership(w, id, owner) {
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	}

	var (
		view *collections.CollectionView
		err  error
	)
	if req.ParentID == nil {
		view, err = h.engine.DetachToRoot(id, position)
	} else {
		view, err = h.engine.MoveTo(id, *req.ParentID, position)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

// GetContent handles GET /api/collections/{id}/content.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !h.checkOwnership(w, id, owner) {
		return
	}

	content, err := h.engine.GetContent(id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, content)
}

// AddItems handles POST /api/collections/{id}/items.
func (h *Handler) AddItems(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !h.checkOwnership(w, id, owner) {
		return
	}

	var input collections.AddItemsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	result, err := h.engine.AddItems(id, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// RemoveItems handles DELETE /api/collections/{id}/items.
func (h *Handler) RemoveItems(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !h.checkOwnership(w, id, owner) {
		return
	}

	var input collections.RemoveItemsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	result, err := h.engine.RemoveItems(id, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// GetSettings handles GET /api/collections/{id}/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !h.checkOwnership(w, id, owner) {
		return
	}

	settings, err := h.engine.GetSettings(id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/collections/{id}/settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !h.checkOwnership(w, id, owner) {
		return
	}

	var patch models.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	settings, err := h.engine.UpdateSettings(id, patch)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, settings)
}

// SearchCollections handles GET /api/collections/search.
func (h *Handler) SearchCollections(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, fmt.Errorf("%w: q", shared.ErrMissingArgument))
		return
	}

	opts := collections.SearchOpts{IncludeContent: boolQuery(r, "include_content")}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			h.writeError(w, fmt.Errorf("%w: limit", shared.ErrInvalidArgument))
			return
		}
		opts.Limit = n
	}

	views, err := h.engine.SearchCollections(owner, query, opts)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, views)
}

// ExportCollections handles GET /api/collections/export.
func (h *Handler) ExportCollections(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	result, err := h.engine.ExportCollections(owner, collections.ExportOpts{
		Format:         r.URL.Query().Get("format"),
		IncludeContent: boolQuery(r, "include_content"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

// ImportCollections handles POST /api/collections/import.
func (h *Handler) ImportCollections(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	result, err := h.engine.ImportCollections(owner, data, collections.ImportOpts{
		Merge: boolQuery(r, "merge"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// BatchOperations handles POST /api/collections/batch.
func (h *Handler) BatchOperations(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var input collections.BatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	// Ownership of each target is a boundary precondition; ids belonging to
	// other owners are filtered into the error list before the engine runs.
	filtered := make([]string, 0, len(input.CollectionIDs))
	var rejected []collections.BatchError
	for _, id := range input.CollectionIDs {
		view, err := h.engine.GetCollection(id, collections.GetOpts{})
		if err != nil || view.OwnerID == owner {
			filtered = append(filtered, id)
			continue
		}
		rejected = append(rejected, collections.BatchError{CollectionID: id, Reason: shared.ErrUnauthorized.Error()})
	}
	input.CollectionIDs = filtered

	result, err := h.engine.BatchOperation(input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	result.Errors = append(result.Errors, rejected...)

	h.writeJSON(w, http.StatusOK, result)
}

// owner resolves the caller's owner id or fails the request with 401.
func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := r.Header.Get(ownerHeader)
	if owner == "" {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing " + ownerHeader + " header"})
		return "", false
	}
	return owner, true
}

// checkOwnership verifies the collection belongs to the caller, writing the
// appropriate error response otherwise.
func (h *Handler) checkOwnership(w http.ResponseWriter, id, owner string) bool {
	view, err := h.engine.GetCollection(id, collections.GetOpts{})
	if err != nil {
		h.writeError(w, err)
		return false
	}
	if view.OwnerID != owner {
		h.writeError(w, shared.ErrUnauthorized)
		return false
	}
	return true
}

// writeJSON serializes a payload with the given status.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "err", err)
	}
}

// writeError maps engine sentinel errors to HTTP status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, shared.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrDuplicateName):
		status = http.StatusConflict
	case errors.Is(err, shared.ErrCycleDetected), errors.Is(err, shared.ErrSelfParent):
		status = http.StatusConflict
	case errors.Is(err, shared.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, shared.ErrNotImplemented):
		status = http.StatusNotImplemented
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrMissingArgument):
		status = http.StatusBadRequest
	}

	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// boolQuery parses a boolean query parameter, treating "true" and "1" as set.
func boolQuery(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "true" || v == "1"
}
