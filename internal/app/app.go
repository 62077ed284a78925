// Package app wires the configured store, the click recorder, the link use
// case and the HTTP server together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/trimmer/internal/analytics"
	"github.com/vadimbarashkov/trimmer/internal/config"
	"github.com/vadimbarashkov/trimmer/internal/shortcode"
	"github.com/vadimbarashkov/trimmer/internal/usecase"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/trimmer/internal/adapter/delivery/http"
)

// NewLogger returns the request logger used by the server. Production
// output is JSON, everything else is human readable.
func NewLogger(cfg *config.Config) *httplog.Logger {
	opts := httplog.Options{
		LogLevel: slog.LevelDebug,
		Concise:  true,
	}

	if cfg.Env == config.EnvProd {
		opts.LogLevel = slog.LevelInfo
		opts.JSON = true
		opts.Concise = false
	}

	return httplog.NewLogger("trimmer", opts)
}

// Services holds the long-lived components built from a config.
type Services struct {
	Store    Store
	Recorder *analytics.Recorder
	Links    *usecase.LinkUseCase

	closeStore func() error
}

// Build opens the store and assembles the components on top of it. The
// recorder is returned idle; callers that resolve links must run it.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	const op = "app.Build"

	codes, err := shortcode.NewGenerator(cfg.ShortCode.Length)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reserved := append(append([]string{}, shortcode.DefaultReserved...), cfg.Alias.Reserved...)
	aliases := shortcode.NewAliasValidator(cfg.Alias.MinLength, cfg.Alias.MaxLength, reserved...)

	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recorder := analytics.New(store, analytics.Options{
		BufferSize:    cfg.Analytics.BufferSize,
		Workers:       cfg.Analytics.Workers,
		WriteTimeout:  cfg.Analytics.WriteTimeout,
		MaxRetries:    cfg.Analytics.MaxRetries,
		RetryInterval: cfg.Analytics.RetryInterval,
		DrainTimeout:  cfg.Analytics.DrainTimeout,
		FlushInterval: cfg.Analytics.FlushInterval,
		Logger:        logger,
	})

	links := usecase.New(store, recorder, codes, aliases,
		usecase.WithMaxAttempts(cfg.ShortCode.MaxAttempts),
		usecase.WithRecentEvents(cfg.Analytics.RecentEvents),
		usecase.WithLogger(logger),
	)

	return &Services{
		Store:      store,
		Recorder:   recorder,
		Links:      links,
		closeStore: closeStore,
	}, nil
}

// Close releases the store.
func (s *Services) Close() error {
	return s.closeStore()
}

// Run serves the API until ctx is cancelled, then stops accepting
// requests, flushes pending clicks and closes the store.
func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	logger := NewLogger(cfg)

	svc, err := Build(ctx, cfg, logger.Logger)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer svc.Close()

	router := delivery.NewRouter(logger, svc.Links,
		delivery.WithBaseURL(cfg.BaseURL),
		delivery.WithAllowedOrigins(cfg.HTTPServer.AllowedOrigins...),
		delivery.WithRecorderStats(svc.Recorder.Stats),
	)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	// The recorder outlives the server so clicks from in-flight redirects
	// are still accepted while it drains.
	recorderCtx, stopRecorder := context.WithCancel(context.Background())
	defer stopRecorder()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := svc.Recorder.Run(recorderCtx); err != nil {
			return fmt.Errorf("%s: click recorder failed: %w", op, err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("server started", slog.String("addr", server.Addr), slog.String("env", cfg.Env), slog.String("storage", cfg.Storage.Driver))

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		defer stopRecorder()

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		logger.Info("server stopped")

		return nil
	})

	return g.Wait()
}
