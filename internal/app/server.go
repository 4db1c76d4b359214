package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/precast-backend/internal/config"
	"github.com/heartmarshall/precast-backend/internal/transport/dataloader"
	"github.com/heartmarshall/precast-backend/internal/transport/middleware"
	"github.com/heartmarshall/precast-backend/internal/transport/rest"
)

// Server is the HTTP application: services, middleware and routes.
type Server struct {
	Handler http.Handler

	cfg      *config.Config
	log      *slog.Logger
	services *Services
	limiter  *middleware.RateLimiter
}

// NewServer wires the full HTTP stack over pool. Close releases its
// background goroutines.
func NewServer(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) *Server {
	svcs := NewServices(cfg, logger, pool)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	handlers := rest.Handlers{
		Health:     rest.NewHealthHandler(pool, svcs.Sessions, BuildVersion()),
		Auth:       rest.NewAuthHandler(svcs.Auth, logger),
		Catalog:    rest.NewCatalogHandler(svcs.Catalog, logger),
		Production: rest.NewProductionHandler(svcs.Production, logger),
		Attendance: rest.NewAttendanceHandler(svcs.Attendance, logger),
	}

	router := rest.NewRouter(handlers,
		limiter.Limit(cfg.RateLimit.LoginPerMinute),
		middleware.Chain(
			middleware.RequireAuth,
			dataloader.Middleware(svcs.loaderRepos),
		),
	)

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		middleware.Auth(svcs.Auth),
		middleware.Logger(logger),
	)(router)

	return &Server{
		Handler:  handler,
		cfg:      cfg,
		log:      logger,
		services: svcs,
		limiter:  limiter,
	}
}

// Close stops the rate limiter cleanup and the session janitor.
func (s *Server) Close() {
	s.limiter.Stop()
	s.services.Close()
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
// within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port)),
		Handler:      s.Handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
