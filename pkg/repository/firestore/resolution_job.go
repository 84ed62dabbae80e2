package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type resolutionJobDoc struct {
	ID        string    `firestore:"id"`
	Name      string    `firestore:"name"`
	Status    string    `firestore:"status"`
	Prefix    string    `firestore:"prefix"`
	ChannelID string    `firestore:"channel_id"`
	Error     string    `firestore:"error"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toResolutionJobDoc(job *model.ResolutionJob) *resolutionJobDoc {
	return &resolutionJobDoc{
		ID:        job.ID.String(),
		Name:      job.Name,
		Status:    string(job.Status),
		Prefix:    job.Prefix,
		ChannelID: job.ChannelID,
		Error:     job.Error,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
}

func fromResolutionJobDoc(d *resolutionJobDoc) *model.ResolutionJob {
	return &model.ResolutionJob{
		ID:        model.ResolutionJobID(d.ID),
		Name:      d.Name,
		Status:    model.ResolutionJobStatus(d.Status),
		Prefix:    d.Prefix,
		ChannelID: d.ChannelID,
		Error:     d.Error,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type resolutionJobRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newResolutionJobRepository(client *firestore.Client) *resolutionJobRepository {
	return &resolutionJobRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *resolutionJobRepository) jobsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_resolution_jobs"
	}
	return "resolution_jobs"
}

func (r *resolutionJobRepository) Put(ctx context.Context, job *model.ResolutionJob) error {
	if job == nil {
		return goerr.New("job is nil")
	}

	doc := toResolutionJobDoc(job)
	doc.UpdatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.jobsCollection()).Doc(job.ID.String())
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put resolution job", goerr.V("id", job.ID))
	}
	return nil
}

func (r *resolutionJobRepository) Get(ctx context.Context, id model.ResolutionJobID) (*model.ResolutionJob, error) {
	docRef := r.client.Collection(r.jobsCollection()).Doc(id.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "resolution job not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get resolution job", goerr.V("id", id))
	}

	var data resolutionJobDoc
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to decode resolution job", goerr.V("id", id))
	}

	return fromResolutionJobDoc(&data), nil
}

func (r *resolutionJobRepository) ListPending(ctx context.Context, limit int) ([]*model.ResolutionJob, error) {
	query := r.client.Collection(r.jobsCollection()).
		Where("status", "==", string(model.ResolutionPending)).
		OrderBy("created_at", firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var jobs []*model.ResolutionJob
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list pending resolution jobs")
		}

		var data resolutionJobDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to decode resolution job")
		}
		jobs = append(jobs, fromResolutionJobDoc(&data))
	}

	return jobs, nil
}
