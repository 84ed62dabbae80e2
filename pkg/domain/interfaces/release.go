package interfaces

import (
	"context"

	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
)

// ReleaseRepository answers release-existence queries used when
// building interactive issue messages.
type ReleaseRepository interface {
	// HasReleases reports whether the project has at least one release
	HasReleases(ctx context.Context, projectID types.ProjectID) (bool, error)

	// AddRelease records a release version for a project (upsert)
	AddRelease(ctx context.Context, projectID types.ProjectID, version string) error
}
