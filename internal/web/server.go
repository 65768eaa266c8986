package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jaminalder/codex-connect-three/internal/app"
)

// Options tunes the web shell.
type Options struct {
	// Heartbeat is the SSE keep-alive interval. Zero means 15s.
	Heartbeat time.Duration
	// Logger receives request logs. Nil discards them.
	Logger *slog.Logger
}

// NewServer wires routes and returns an http.Handler. It installs the board
// fragment renderer on s so broadcasts carry ready-to-swap HTML.
func NewServer(s *app.Service, opts Options) http.Handler {
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	h := &handlers{svc: s, tpl: loadTemplates(), heartbeat: opts.Heartbeat, log: opts.Logger}
	s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(opts.Logger))

	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/drop", h.drop)
		r.Post("/undo", h.undo)
		r.Post("/switch", h.switchPlayer)
		r.Post("/reset", h.reset)
		r.Get("/events", h.events)
	})
	return r
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
