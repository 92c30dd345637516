package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/acme-storefront/internal/auth"
	"github.com/rogerio-castellano/acme-storefront/internal/config"
	"github.com/rogerio-castellano/acme-storefront/internal/http/handlers"
	rl "github.com/rogerio-castellano/acme-storefront/internal/http/rate_limiter"
	"github.com/rogerio-castellano/acme-storefront/internal/http/router"
	"github.com/rogerio-castellano/acme-storefront/internal/logging"
	"github.com/rogerio-castellano/acme-storefront/internal/redissvc"
	"github.com/rogerio-castellano/acme-storefront/internal/repo"
	"github.com/rogerio-castellano/acme-storefront/internal/session"
	"github.com/rogerio-castellano/acme-storefront/internal/views"
)

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			logging.Setup(cfg.LogLevel, !cfg.IsProduction())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

// wire installs the handler dependencies and starts the background loops,
// which stop with ctx. The returned func releases external connections.
func wire(ctx context.Context, cfg config.Config) (func(), error) {
	tmpl, err := views.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	cleanup := func() {}
	var store session.Store
	switch cfg.Session.Store {
	case config.StoreRedis:
		rs, err := redissvc.Connect(ctx, redissvc.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		cleanup = func() {
			if err := rs.Close(); err != nil {
				log.Warn().Err(err).Msg("close redis")
			}
		}
		store = redissvc.NewSessionStore(rs, cfg.Session.TTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions stored in redis")
	default:
		mem := session.NewMemoryStore(cfg.Session.TTL)
		go mem.StartCleanupLoop(ctx, time.Minute)
		store = mem
	}

	tokens := auth.NewSessionTokens(cfg.Session.Secret, cfg.Session.TTL)
	handlers.SetSessionManager(session.NewManager(store, tokens, session.Options{
		TTL:          cfg.Session.TTL,
		SecureCookie: cfg.IsProduction(),
	}))
	handlers.SetProductRepo(repo.NewSeededProductRepository())
	handlers.SetTemplates(tmpl)
	handlers.SetCarouselInterval(cfg.Carousel.Interval)

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.StartVisitorCleanupLoop(ctx)
	router.SetRateLimiter(limiter)

	return cleanup, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	cleanup, err := wire(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Request contexts end when shutdown starts, which closes carousel streams.
	baseCtx, cancelRequests := context.WithCancel(context.Background())
	defer cancelRequests()
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelRequests)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.AppEnv).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
