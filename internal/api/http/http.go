package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/kingfoodmart/kfm-insights/internal/apisrv/insights"
	"github.com/kingfoodmart/kfm-insights/internal/observe"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http output boundary: it serves the engine's product
// table, rollups and derived views as JSON to the rendering layer.
type Server struct {
	hs       *http.Server
	c        *Config
	insights *insights.Server
	reg      *observe.Registry
	done     chan struct{}
}

func New(c *Config, ins *insights.Server, reg *observe.Registry) *Server {
	return &Server{
		c:        c,
		insights: ins,
		reg:      reg,
		done:     make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) Start(ctx context.Context) error {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	if len(s.c.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.c.AllowedOrigins,
			AllowedMethods: []string{http.MethodHead, http.MethodGet, http.MethodOptions},
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if s.reg != nil {
		r.Method(http.MethodGet, "/metrics", s.reg.Handler())
	}

	r.Route("/api/insights", func(r chi.Router) {
		r.Get("/products", s.getInsights)
		r.Get("/rollup", s.getRollup)
		r.Get("/summary", s.getSummary)
		r.Get("/daily", s.getDaily)
		r.Get("/dictionary", s.getDictionary)
		r.Get("/dates", s.getDates)
	})

	s.hs = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", s.c.Address, s.c.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		defer close(s.done)
		slog.Default().InfoContext(ctx, "http server listening",
			slog.String("addr", s.hs.Addr),
		)
		if err := s.hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Default().Error("http server exited",
				slog.String("err", err.Error()),
			)
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.hs.Shutdown(shutdownCtx)
}
