package interfaces

import (
	"context"

	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
)

// ResolutionJobRepository persists deferred channel-resolution jobs
type ResolutionJobRepository interface {
	// Put saves a job (upsert)
	Put(ctx context.Context, job *model.ResolutionJob) error

	// Get retrieves a job by ID. Returns the backend's not-found
	// sentinel when the job does not exist.
	Get(ctx context.Context, id model.ResolutionJobID) (*model.ResolutionJob, error)

	// ListPending retrieves up to limit pending jobs, oldest first
	ListPending(ctx context.Context, limit int) ([]*model.ResolutionJob, error)
}
