package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"reel/internal/config"
	"reel/internal/logging"
	"reel/internal/server"
	"reel/internal/subtitles"
	"reel/internal/trackcache"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var (
		bind    string
		library string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the library's subtitles as WebVTT over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if value := strings.TrimSpace(bind); value != "" {
				cfg.Server.Bind = value
			}
			if value := strings.TrimSpace(library); value != "" {
				expanded, err := config.ExpandPath(value)
				if err != nil {
					return fmt.Errorf("resolve library dir: %w", err)
				}
				cfg.Paths.LibraryDir = expanded
			}
			if noCache {
				cfg.Cache.Enabled = false
			}

			logger, err := logging.NewServerLogger(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runServer(signalCtx, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides server.bind)")
	cmd.Flags().StringVar(&library, "library", "", "Library directory (overrides paths.library_dir)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the converted track cache")
	return cmd
}

// runServer holds the instance lock and serves until ctx is cancelled.
func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another reel server is already running")
	}
	defer func() { _ = lock.Unlock() }()

	var store *trackcache.Store
	if cfg.Cache.Enabled {
		store, err = trackcache.Open(cfg)
		if err != nil {
			logging.WarnWithContext(logger, "track cache unavailable", "cache_open_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "tracks will be converted on every request"),
			)
			store = nil
		} else {
			defer store.Close()
		}
	}

	inner := subtitles.NewConverter(subtitles.Options{
		Encodings:   cfg.Subtitles.CandidateEncodings,
		CueDuration: cfg.CueDuration(),
	}, logger)
	srv := server.New(server.OptionsFromConfig(cfg), trackcache.NewConverter(inner, store, logger), logger)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("reel server shutting down")
	srv.Stop()
	return nil
}
