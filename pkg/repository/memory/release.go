package memory

import (
	"context"
	"sync"

	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
)

type releaseRepository struct {
	mu       sync.RWMutex
	releases map[types.ProjectID]map[string]struct{}
}

func newReleaseRepository() *releaseRepository {
	return &releaseRepository{
		releases: make(map[types.ProjectID]map[string]struct{}),
	}
}

func (r *releaseRepository) HasReleases(ctx context.Context, projectID types.ProjectID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.releases[projectID]) > 0, nil
}

func (r *releaseRepository) AddRelease(ctx context.Context, projectID types.ProjectID, version string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.releases[projectID] == nil {
		r.releases[projectID] = make(map[string]struct{})
	}
	r.releases[projectID][version] = struct{}{}
	return nil
}
