package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"unitip-client/internal/observability"
)

// Options configures the dev server's HTTP surface.
type Options struct {
	// OpenAPISpecPath enables request validation against the given OpenAPI
	// document when non-empty.
	OpenAPISpecPath string

	// RequestsPerSecond/Burst configure per-IP rate limiting. Zero disables
	// it.
	RequestsPerSecond float64
	Burst             int
}

// Server is the in-memory Unitip backend stand-in.
type Server struct {
	store *Store
	hub   *hub
}

// New creates a dev server around the given store.
func New(store *Store) *Server {
	return &Server{store: store, hub: newHub()}
}

// Routes builds the full HTTP handler: the versioned API plus health and
// metrics endpoints.
func (s *Server) Routes(opts Options) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(metricsMiddleware)

	if opts.RequestsPerSecond > 0 {
		r.Use(rateLimitMiddleware(opts.RequestsPerSecond, opts.Burst))
	}

	if opts.OpenAPISpecPath != "" {
		validator, err := openAPIValidator(opts.OpenAPISpecPath)
		if err != nil {
			return nil, err
		}
		r.Use(validator)
		observability.Info("openapi request validation enabled", "spec", opts.OpenAPISpecPath)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Delete("/auth/logout", s.handleLogout)
			r.Get("/accounts/profile", s.handleGetProfile)
			r.Patch("/accounts/role", s.handleUpdateRole)

			r.Get("/chats/rooms", s.handleGetAllRooms)
			r.Post("/chats/rooms", s.handleCreateRoom)
			r.Get("/chats/rooms/check", s.handleCheckRoom)
			r.Post("/chats/rooms/{roomID}/messages", s.handleSendMessage)
			r.Get("/chats/rooms/{roomID}/messages", s.handleGetAllMessages)
			r.Patch("/chats/rooms/{roomID}/read-checkpoint", s.handleUpdateReadCheckpoint)
			r.Get("/chats/rooms/{roomID}/events", s.handleRoomEvents)

			r.Get("/jobs", s.handleGetAllJobs)
			r.Get("/jobs/{jobID}", s.handleGetJob)

			r.Post("/offers", s.handleCreateOffer)
			r.Get("/offers", s.handleGetAllOffers)
			r.Get("/offers/{offerID}", s.handleGetOffer)
			r.Post("/offers/{offerID}/applications", s.handleApplyOffer)
		})
	})

	return r, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		observability.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
