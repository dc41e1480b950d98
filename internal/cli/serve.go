package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/phishcheck/internal/config"
	"github.com/example/phishcheck/internal/events"
	"github.com/example/phishcheck/internal/server"
)

func newServeCmd(loader *config.Loader) *cobra.Command {
	flags := &runtimeFlagSet{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the phishing-check HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := flags.toOverrides(cmd)
			cfg, err := loader.Load(overrides)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), nil))

			eng, verdictCache := buildEngine(cfg)

			var emitter *events.Emitter
			if cfg.EventsLog != "" {
				f, err := openEventsLog(cfg.EventsLog)
				if err != nil {
					return err
				}
				defer f.Close()
				emitter = events.NewEmitter(f)
			}

			srv := server.New(eng, verdictCache, logger, emitter)
			httpServer := &http.Server{
				Addr:              cfg.ListenAddr,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- httpServer.ListenAndServe()
			}()
			logger.Info("listening", "addr", cfg.ListenAddr)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case sig := <-sigCh:
				logger.Info("shutting down", "signal", sig.String())
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	bindRuntimeFlags(cmd, flags)

	return cmd
}
