package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/scenarist"
	"github.com/aretw0/scenarist/pkg/jsonfield"
	"github.com/aretw0/scenarist/pkg/notify"
	"github.com/aretw0/scenarist/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxRequestBody bounds decoded request bodies.
const maxRequestBody = 1 << 20

// Server serves the authoring API consumed by the admin page.
type Server struct {
	Authoring *scenarist.Authoring
	Index     ports.StepIndex
	Board     *notify.Board
	Gatherer  prometheus.Gatherer
	logger    *slog.Logger
}

type Option func(*Server)

// WithStepIndex enables the local step listing and its maintenance endpoints.
func WithStepIndex(index ports.StepIndex) Option {
	return func(s *Server) {
		s.Index = index
	}
}

// WithBoard streams the board's notifications on /events.
func WithBoard(b *notify.Board) Option {
	return func(s *Server) {
		s.Board = b
	}
}

// WithGatherer exposes metrics on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the authoring API.
func NewHandler(auth *scenarist.Authoring, opts ...Option) http.Handler {
	server := &Server{
		Authoring: auth,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)

	r.Get("/templates", server.ListTemplates)
	r.Get("/templates/{type}", server.GetTemplate)
	r.Post("/guard", server.CheckTemplate)
	r.Post("/format", server.FormatDocument)
	r.Post("/validate", server.ValidateDocument)

	r.Get("/orders/next", server.NextOrder)
	r.Post("/forms/step-type", server.SelectStepType)
	r.Post("/forms/scenario", server.ScenarioChanged)
	r.Post("/compose", server.ComposeStep)
	r.Post("/steps/clean", server.CleanStep)

	r.Get("/steps", server.ListSteps)
	r.Put("/scenarios/{scenario_id}/steps/{step_id}", server.RecordStep)
	r.Delete("/scenarios/{scenario_id}/steps/{step_id}", server.RemoveStep)

	r.Get("/events", server.SubscribeEvents)
	if server.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-CSRFToken")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Scenarist API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "scenarist-http",
		"version":     strings.TrimSpace(scenarist.Version),
		"api_version": apiVersion,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// decode reads a JSON request body into dst. On failure the response is written
// and false is returned.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, op string, dst any) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(dst)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn(op+": Invalid request body", "error", err)
		return false
	}
	return true
}

// sanitize cleans author text. On failure the response is written and false is returned.
func (s *Server) sanitize(w http.ResponseWriter, op string, text *string) bool {
	clean, err := jsonfield.Sanitize(*text)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid input: "+err.Error())
		s.logger.Warn(op+": Input rejected", "error", err, "size", len(*text))
		return false
	}
	*text = clean
	return true
}

var errIndexDisabled = errors.New("step index is not configured")
