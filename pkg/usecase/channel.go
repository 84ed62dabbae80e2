package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/interfaces"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/repository/firestore"
	"github.com/watchtower-lab/slackbridge/pkg/repository/memory"
	"github.com/watchtower-lab/slackbridge/pkg/service/slack"
	"github.com/watchtower-lab/slackbridge/pkg/utils/logging"
)

// ChannelUseCase handles channel-name resolution requests
type ChannelUseCase struct {
	repo      interfaces.Repository
	scheduler *slack.Scheduler
}

func NewChannelUseCase(repo interfaces.Repository, scheduler *slack.Scheduler) *ChannelUseCase {
	return &ChannelUseCase{
		repo:      repo,
		scheduler: scheduler,
	}
}

// ResolveResult couples a lookup outcome with the deferred job that
// retries it when the synchronous time budget ran out.
type ResolveResult struct {
	Resolution *slack.Resolution
	JobID      model.ResolutionJobID
}

// Deferred reports whether the lookup was handed off to a job
func (x *ResolveResult) Deferred() bool {
	return x.JobID != ""
}

// Resolve looks up a channel or user by display name on the request
// path. When the short budget runs out mid-pagination a pending job is
// enqueued and its ID returned so the caller can poll for the outcome.
func (x *ChannelUseCase) Resolve(ctx context.Context, name string) (*ResolveResult, error) {
	res, err := x.scheduler.ResolveChannelID(ctx, name, false)
	if err != nil {
		return nil, err
	}

	result := &ResolveResult{Resolution: res}
	if res.TimedOut {
		job := model.NewResolutionJob(name)
		if err := x.repo.ResolutionJobs().Put(ctx, job); err != nil {
			return nil, goerr.Wrap(err, "failed to enqueue resolution job", goerr.V("name", name))
		}
		logging.From(ctx).Info("channel lookup deferred", "name", name, "job_id", job.ID)
		result.JobID = job.ID
	}

	return result, nil
}

// GetJob reads the state of a deferred resolution
func (x *ChannelUseCase) GetJob(ctx context.Context, id model.ResolutionJobID) (*model.ResolutionJob, error) {
	job, err := x.repo.ResolutionJobs().Get(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound) {
			return nil, goerr.Wrap(ErrJobNotFound, "unknown resolution job", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get resolution job", goerr.V("id", id))
	}
	return job, nil
}
