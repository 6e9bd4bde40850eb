package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vigil-lab/argus/pkg/usecase"
	"github.com/vigil-lab/argus/pkg/utils/logging"
	"github.com/vigil-lab/argus/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api/scopes/{scope}", func(r chi.Router) {
		r.Route("/actions", func(r chi.Router) {
			r.Post("/", s.proposeAction)
			r.Get("/", s.listActions)
			r.Get("/summary", s.actionSummary)

			r.Post("/bulk/approve", s.bulkApprove)
			r.Post("/bulk/reject", s.bulkReject)
			r.Post("/bulk/execute", s.bulkExecute)

			r.Route("/{actionID}", func(r chi.Router) {
				r.Get("/", s.getAction)
				r.Patch("/", s.editAction)
				r.Post("/approve", s.approveAction)
				r.Post("/reject", s.rejectAction)
				r.Post("/execute", s.executeAction)
			})
		})

		r.Route("/decisions", func(r chi.Router) {
			r.Get("/", s.listDecisions)
			r.Route("/{decisionID}", func(r chi.Router) {
				r.Get("/", s.getDecision)
				r.Post("/feedback", s.submitFeedback)
			})
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", s.listPreferences)
			r.Delete("/{preferenceID}", s.forgetPreference)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, []byte(`{"status":"ok"}`))
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
