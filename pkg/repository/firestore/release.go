package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type releaseDoc struct {
	ProjectID string    `firestore:"project_id"`
	Version   string    `firestore:"version"`
	CreatedAt time.Time `firestore:"created_at"`
}

type releaseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newReleaseRepository(client *firestore.Client) *releaseRepository {
	return &releaseRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *releaseRepository) releasesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_releases"
	}
	return "releases"
}

func (r *releaseRepository) HasReleases(ctx context.Context, projectID types.ProjectID) (bool, error) {
	iter := r.client.Collection(r.releasesCollection()).
		Where("project_id", "==", projectID.String()).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, goerr.Wrap(err, "failed to query releases", goerr.V("projectID", projectID))
	}
	return true, nil
}

func (r *releaseRepository) AddRelease(ctx context.Context, projectID types.ProjectID, version string) error {
	docRef := r.client.Collection(r.releasesCollection()).
		Doc(fmt.Sprintf("%s:%s", projectID, version))

	if _, err := docRef.Set(ctx, &releaseDoc{
		ProjectID: projectID.String(),
		Version:   version,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return goerr.Wrap(err, "failed to add release",
			goerr.V("projectID", projectID), goerr.V("version", version))
	}
	return nil
}
