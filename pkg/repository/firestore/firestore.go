package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/interfaces"
)

type Firestore struct {
	client        *firestore.Client
	notifications *notificationSettingRepository
	releases      *releaseRepository
	jobs          *resolutionJobRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.notifications.collectionPrefix = prefix
		f.releases.collectionPrefix = prefix
		f.jobs.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:        client,
		notifications: newNotificationSettingRepository(client),
		releases:      newReleaseRepository(client),
		jobs:          newResolutionJobRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) NotificationSettings() interfaces.NotificationSettingRepository {
	return f.notifications
}

func (f *Firestore) Releases() interfaces.ReleaseRepository {
	return f.releases
}

func (f *Firestore) ResolutionJobs() interfaces.ResolutionJobRepository {
	return f.jobs
}

func (f *Firestore) Close() error {
	if err := f.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close firestore client")
	}
	return nil
}
