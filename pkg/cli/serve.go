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

	"github.com/watchtower-lab/slackbridge/pkg/cli/config"
	httpctrl "github.com/watchtower-lab/slackbridge/pkg/controller/http"
	slacksvc "github.com/watchtower-lab/slackbridge/pkg/service/slack"
	"github.com/watchtower-lab/slackbridge/pkg/service/worker"
	"github.com/watchtower-lab/slackbridge/pkg/usecase"
	"github.com/watchtower-lab/slackbridge/pkg/utils/logging"
	"github.com/watchtower-lab/slackbridge/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var apiToken string
	var workerInterval time.Duration
	var repoCfg config.Repository
	var slackCfg config.Slack
	var sentryCfg config.Sentry
	var colorsCfg config.Colors

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("SLACKBRIDGE_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "api-token",
			Usage:       "Static bearer token guarding the API (open when empty)",
			Sources:     cli.EnvVars("SLACKBRIDGE_API_TOKEN"),
			Destination: &apiToken,
		},
		&cli.DurationFlag{
			Name:        "worker-interval",
			Usage:       "Interval between deferred-resolution drain cycles",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("SLACKBRIDGE_WORKER_INTERVAL"),
			Destination: &workerInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, colorsCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := sentryCfg.Configure(); err != nil {
				return goerr.Wrap(err, "failed to configure error reporting")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			client, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack client")
			}

			colors, err := colorsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load color palette")
			}

			scheduler := slacksvc.NewScheduler(slacksvc.NewResolver(client))
			uc := usecase.New(repo, scheduler, client, usecase.WithColors(colors))

			resolutionWorker := worker.NewResolutionWorker(repo, scheduler, workerInterval)
			if err := resolutionWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start resolution worker")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpctrl.WithAPIToken(apiToken)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				resolutionWorker.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Stop draining before the server goes away
				resolutionWorker.Stop()

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
