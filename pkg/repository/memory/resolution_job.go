package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
)

type resolutionJobRepository struct {
	mu   sync.RWMutex
	jobs map[model.ResolutionJobID]*model.ResolutionJob
}

func newResolutionJobRepository() *resolutionJobRepository {
	return &resolutionJobRepository{
		jobs: make(map[model.ResolutionJobID]*model.ResolutionJob),
	}
}

func (r *resolutionJobRepository) Put(ctx context.Context, job *model.ResolutionJob) error {
	if job == nil {
		return goerr.New("job is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *job
	stored.UpdatedAt = time.Now().UTC()
	r.jobs[job.ID] = &stored
	return nil
}

func (r *resolutionJobRepository) Get(ctx context.Context, id model.ResolutionJobID) (*model.ResolutionJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, exists := r.jobs[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "resolution job not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	copied := *job
	return &copied, nil
}

func (r *resolutionJobRepository) ListPending(ctx context.Context, limit int) ([]*model.ResolutionJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var pending []*model.ResolutionJob
	for _, job := range r.jobs {
		if job.Status != model.ResolutionPending {
			continue
		}
		copied := *job
		pending = append(pending, &copied)
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})

	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}
