package worker

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/watchtower-lab/slackbridge/pkg/domain/interfaces"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/service/slack"
	"github.com/watchtower-lab/slackbridge/pkg/utils/errutil"
	"github.com/watchtower-lab/slackbridge/pkg/utils/logging"
)

const (
	// drainLimit bounds how many pending jobs one cycle picks up
	drainLimit = 10
	// drainConcurrency bounds parallel lookups inside one cycle
	drainConcurrency = 4
)

// ResolutionWorker drains deferred channel-resolution jobs in the
// background. Each job gets the long lookup budget that the request
// path could not afford.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type ResolutionWorker struct {
	repo      interfaces.Repository
	scheduler *slack.Scheduler
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewResolutionWorker creates a worker over the given scheduler
func NewResolutionWorker(repo interfaces.Repository, scheduler *slack.Scheduler, interval time.Duration) *ResolutionWorker {
	return &ResolutionWorker{
		repo:      repo,
		scheduler: scheduler,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background drain loop. It does not block.
func (w *ResolutionWorker) Start(ctx context.Context) error {
	logging.Default().Info("resolution worker starting", "interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ResolutionWorker) Stop() {
	logging.Default().Info("resolution worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("resolution worker stopped")
}

func (w *ResolutionWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.drain(ctx); err != nil {
		_ = errutil.Handle(ctx, err, "resolution drain failed (will retry next interval)")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Report the failure and keep the worker alive
			if err := w.drain(ctx); err != nil {
				_ = errutil.Handle(ctx, err, "resolution drain failed (will retry next interval)")
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("resolution worker context cancelled")
			return
		}
	}
}

// drain runs one cycle: pick up pending jobs and resolve each
func (w *ResolutionWorker) drain(ctx context.Context) error {
	jobs, err := w.repo.ResolutionJobs().ListPending(ctx, drainLimit)
	if err != nil {
		return goerr.Wrap(err, "failed to list pending resolution jobs")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(drainConcurrency)
	for _, job := range jobs {
		g.Go(func() error {
			w.process(ctx, job)
			return nil
		})
	}

	return g.Wait()
}

// process resolves one job and stores the outcome. A job never stays
// pending after a cycle touched it.
func (w *ResolutionWorker) process(ctx context.Context, job *model.ResolutionJob) {
	logger := logging.Default().With("job_id", job.ID, "name", job.Name)

	res, err := w.scheduler.ResolveChannelID(ctx, job.Name, true)
	switch {
	case errors.Is(err, slack.ErrDuplicateDisplayName):
		job.Status = model.ResolutionAmbiguous
		job.Error = err.Error()
	case err != nil:
		job.Status = model.ResolutionFailed
		job.Error = err.Error()
	case res.TimedOut:
		job.Status = model.ResolutionTimedOut
		job.Prefix = res.Prefix
	case res.Found():
		job.Status = model.ResolutionResolved
		job.Prefix = res.Prefix
		job.ChannelID = res.ChannelID
	default:
		job.Status = model.ResolutionNotFound
		job.Prefix = res.Prefix
	}

	if err := w.repo.ResolutionJobs().Put(ctx, job); err != nil {
		logger.Error("failed to store resolution outcome", "error", err.Error())
		return
	}

	logger.Info("resolution job finished", "status", job.Status, "channel_id", job.ChannelID)
}
