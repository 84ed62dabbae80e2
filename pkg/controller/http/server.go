package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/watchtower-lab/slackbridge/pkg/usecase"
	"github.com/watchtower-lab/slackbridge/pkg/utils/logging"
	"github.com/watchtower-lab/slackbridge/pkg/utils/safe"
)

type Server struct {
	router   *chi.Mux
	apiToken string
}

type Options func(*Server)

// WithAPIToken guards the API behind a static bearer token
func WithAPIToken(token string) Options {
	return func(s *Server) {
		s.apiToken = token
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		if s.apiToken != "" {
			r.Use(bearerTokenMiddleware(s.apiToken))
		}

		r.Route("/channels", func(r chi.Router) {
			r.Post("/resolve", resolveChannelHandler(uc.Channels))
			r.Get("/resolve/{jobID}", resolutionJobHandler(uc.Channels))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/settings", getSettingHandler(uc.Notifications))
			r.Put("/settings", putSettingHandler(uc.Notifications))
			r.Delete("/settings", deleteSettingHandler(uc.Notifications))
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Post("/incident", incidentAlertHandler(uc.Alerts))
			r.Post("/issue", issueAlertHandler(uc.Alerts))
		})

		r.Post("/releases", recordReleaseHandler(uc.Issues))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
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
