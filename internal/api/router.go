package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/starford/raido/internal/composer"
	"github.com/starford/raido/internal/covers"
	"github.com/starford/raido/internal/journeydb"
	"github.com/starford/raido/internal/sse"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// broker, if non-nil, is mounted at GET /events inside the auth group
// and receives draft/journey events from the handlers.
func NewRouter(registry *composer.Registry, store journeydb.Store, coverStore *covers.FS,
	authEnabled bool, token string, broker *sse.Broker) chi.Router {
	h := NewHandler(registry, store, broker)
	ch := NewCoverHandler(coverStore)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Draft authoring sessions.
	r.Post("/drafts", h.CreateDraft)
	r.Get("/drafts/{id}", h.GetDraft)
	r.Patch("/drafts/{id}", h.UpdateDraft)
	r.Post("/drafts/{id}/stages", h.AddStage)
	r.Patch("/drafts/{id}/stages/{stageID}", h.RenameStage)

	// Touchpoint editor session.
	r.Post("/drafts/{id}/editor", h.OpenEditor)
	r.Post("/drafts/{id}/editor/confirm", h.ConfirmEditor)
	r.Delete("/drafts/{id}/editor", h.CancelEditor)

	// Preview and save.
	r.Get("/drafts/{id}/preview", h.Preview)
	r.Post("/drafts/{id}/save", h.SaveDraft)

	// Persisted journeys.
	r.Get("/journeys", h.ListJourneys)
	r.Get("/journeys/{id}", h.GetJourney)

	// Cover image upload (auth-protected).
	r.Post("/covers", ch.Upload)
	r.Get("/covers/{filename}", ch.ServeFile)

	// SSE endpoint (protected by same auth middleware).
	if broker != nil {
		r.Get("/events", broker.ServeHTTP)
	}

	return r
}
