package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/interfaces"
	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
)

const (
	// hasReleasesTTL caches a positive release lookup
	hasReleasesTTL = time.Hour
	// noReleasesTTL caches a negative lookup; projects gain their
	// first release at any moment, so the answer goes stale fast.
	noReleasesTTL = time.Minute
)

type releaseCacheEntry struct {
	has       bool
	expiresAt time.Time
}

// IssueUseCase answers issue-related questions needed when building
// interactive messages.
type IssueUseCase struct {
	repo interfaces.Repository

	mu           sync.Mutex
	releaseCache map[types.ProjectID]releaseCacheEntry
	now          func() time.Time
}

func NewIssueUseCase(repo interfaces.Repository) *IssueUseCase {
	return &IssueUseCase{
		repo:         repo,
		releaseCache: make(map[types.ProjectID]releaseCacheEntry),
		now:          time.Now,
	}
}

// HasReleases reports whether the project tracks releases. The answer
// decides whether a resolve button opens a release-picker dialog, so
// it sits on the message-build path and is cached.
func (x *IssueUseCase) HasReleases(ctx context.Context, projectID types.ProjectID) (bool, error) {
	x.mu.Lock()
	if entry, ok := x.releaseCache[projectID]; ok && x.now().Before(entry.expiresAt) {
		x.mu.Unlock()
		return entry.has, nil
	}
	x.mu.Unlock()

	has, err := x.repo.Releases().HasReleases(ctx, projectID)
	if err != nil {
		return false, goerr.Wrap(err, "failed to check releases", goerr.V("projectID", projectID))
	}

	ttl := noReleasesTTL
	if has {
		ttl = hasReleasesTTL
	}

	x.mu.Lock()
	x.releaseCache[projectID] = releaseCacheEntry{has: has, expiresAt: x.now().Add(ttl)}
	x.mu.Unlock()

	return has, nil
}

// RecordRelease stores a release version and drops the stale cache
// entry so the next lookup sees it.
func (x *IssueUseCase) RecordRelease(ctx context.Context, projectID types.ProjectID, version string) error {
	if err := x.repo.Releases().AddRelease(ctx, projectID, version); err != nil {
		return goerr.Wrap(err, "failed to record release",
			goerr.V("projectID", projectID), goerr.V("version", version))
	}

	x.mu.Lock()
	delete(x.releaseCache, projectID)
	x.mu.Unlock()

	return nil
}
