package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/vigil-lab/argus/pkg/cli/config"
	httpctrl "github.com/vigil-lab/argus/pkg/controller/http"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"github.com/vigil-lab/argus/pkg/service/handler"
	"github.com/vigil-lab/argus/pkg/service/worker"
	"github.com/vigil-lab/argus/pkg/usecase"
	"github.com/vigil-lab/argus/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var execTimeout time.Duration
	var repoCfg config.Repository
	var slackCfg config.Slack
	var learnerCfg config.Learner

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ARGUS_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "exec-timeout",
			Usage:       "Timeout for a single action handler invocation",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("ARGUS_EXEC_TIMEOUT"),
			Destination: &execTimeout,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, learnerCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// Load learner tuning
			learnerParams, decayCfg, err := learnerCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load learner configuration")
			}

			// Initialize Slack service if configured
			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack service")
			}

			// Execution handlers. The alert handler is the only built-in;
			// all other action types need deployment-specific handlers.
			registry := handler.NewRegistry()
			if slackSvc != nil {
				registry.Register(types.ActionTypeAlert, handler.NewAlertHandler(slackSvc))
				logging.Default().Info("Slack service enabled", "slack", &slackCfg)
			} else {
				logging.Default().Info("Slack not configured, notifications and alert execution disabled")
			}

			ucOpts := []usecase.Option{
				usecase.WithExecTimeout(execTimeout),
				usecase.WithLearnerParams(learnerParams),
			}
			if slackSvc != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(slackSvc))
			}

			uc := usecase.New(repo, registry, ucOpts...)

			// Start preference decay worker if scopes are configured
			var decayWorker *worker.PreferenceDecayWorker
			if decayCfg.Enabled() {
				decayWorker = worker.NewPreferenceDecayWorker(uc.Preference,
					decayCfg.Scopes, decayCfg.Interval, decayCfg.StaleAfter, decayCfg.Factor)
				if err := decayWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start preference decay worker")
				}
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if decayWorker != nil {
					decayWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
