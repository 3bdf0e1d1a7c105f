package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/composer"
	"github.com/starford/raido/internal/journeydb"
	"github.com/starford/raido/internal/preview"
	"github.com/starford/raido/internal/sse"
)

const maxBodyBytes = 1 << 20 // 1 MB

// Handler holds API route handlers.
type Handler struct {
	registry *composer.Registry
	store    journeydb.Store
	broker   *sse.Broker
}

// NewHandler creates a new Handler. broker may be nil in tests.
func NewHandler(registry *composer.Registry, store journeydb.Store, broker *sse.Broker) *Handler {
	return &Handler{registry: registry, store: store, broker: broker}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) *composer.Composer {
	id := chi.URLParam(r, "id")
	c, err := h.registry.Get(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("draft not found"))
		return nil
	}
	return c
}

func (h *Handler) publishDraft(kind, draftID string) {
	if h.broker != nil {
		h.broker.PublishDraftEvent(kind, draftID)
	}
}

func draftResponse(c *composer.Composer) DraftResponse {
	return DraftResponse{ID: c.ID(), Saved: c.Saved(), Draft: c.Draft()}
}

// CreateDraft handles POST /drafts. It opens a new authoring session
// seeded with the default stage and touchpoint.
func (h *Handler) CreateDraft(w http.ResponseWriter, _ *http.Request) {
	c := h.registry.Create()
	h.publishDraft("created", c.ID())
	writeJSON(w, http.StatusCreated, draftResponse(c))
}

// GetDraft handles GET /drafts/{id}.
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)
	if c == nil {
		return
	}
	writeJSON(w, http.StatusOK, draftResponse(c))
}

// UpdateDraft handles PATCH /drafts/{id}: direct replacement of scalar
// draft fields. Validation is deferred to save time.
func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)
	if c == nil {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req DetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	c.SetDetails(req)
	h.publishDraft("updated", c.ID())
	writeJSON(w, http.StatusOK, draftResponse(c))
}

// AddStage handles POST /drafts/{id}/stages.
func (h *Handler) AddStage(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)
	if c == nil {
		return
	}
	stage := c.AddStage()
	h.publishDraft("updated", c.ID())
	writeJSON(w, http.StatusCreated, stage)
}

// RenameStage handles PATCH /drafts/{id}/stages/{stageID}. An unknown
// stage id is tolerated silently, matching the edit-operation contract.
func (h *Handler) RenameStage(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)
	if c == nil {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req RenameStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	c.RenameStage(chi.URLParam(r, "stageID"), req.Name)
	h.publishDraft("updated", c.ID())
	writeJSON(w, http.StatusOK, draftResponse(c))
}

// OpenEditor handles POST /drafts/{id}/editor.
func (h *Handler) OpenEditor(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)
	if c == nil {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req OpenEditorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.StageID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("stageId is required"))
		return
	}
	if err := c.OpenEditor(req.StageID, req.TouchpointID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
		} else {
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConfirmEditor handles POST /drafts/{id}/editor/confirm. The edited
// touchpoint is merged into its stage and returned.
func (h *Handler) ConfirmEditor(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)
	if c == nil {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var fields TouchpointFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	tp, err := c.ConfirmEditor(fields)
	if err != nil {
		switch {
		case apperr.IsValidation(err):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		case errors.Is(err, apperr.ErrNoEditor):
			writeJSON(w, http.StatusConflict, errorBody("no editor session open"))
		default:
			slog.Error("confirm editor failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.publishDraft("updated", c.ID())
	writeJSON(w, http.StatusOK, tp)
}

// CancelEditor handles DELETE /drafts/{id}/editor. In-progress edits
// are discarded; the stage's touchpoint list is untouched.
func (h *Handler) CancelEditor(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)
	if c == nil {
		return
	}
	c.CancelEditor()
	w.WriteHeader(http.StatusNoContent)
}

// Preview handles GET /drafts/{id}/preview.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)
	if c == nil {
		return
	}
	d := c.Draft()
	out := preview.Render(d.Stages, d.PersonaIDs, d.State, d.CoverImage)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

// SaveDraft handles POST /drafts/{id}/save: finalize and persist.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)
	if c == nil {
		return
	}
	j, err := c.Save(r.Context())
	if err != nil {
		switch {
		case apperr.IsValidation(err):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		case errors.Is(err, apperr.ErrSaveInFlight):
			writeJSON(w, http.StatusConflict, errorBody("save already in progress"))
		default:
			slog.Error("save journey failed", slog.String("draft_id", c.ID()), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("failed to save journey, please retry"))
		}
		return
	}
	if h.broker != nil {
		h.broker.PublishJourneyCreated(j.ID, j.Name)
	}
	writeJSON(w, http.StatusCreated, j)
}

// ListJourneys handles GET /journeys.
func (h *Handler) ListJourneys(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, total, err := h.store.ListJourneys(r.Context(), limit, offset)
	if err != nil {
		slog.Error("list journeys failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, JourneyListResponse{Journeys: items, Total: total})
}

// GetJourney handles GET /journeys/{id}.
func (h *Handler) GetJourney(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	j, err := h.store.GetJourney(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get journey failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, j)
}
