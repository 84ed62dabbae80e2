package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/watchtower-lab/slackbridge/pkg/domain/interfaces"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/repository/memory"
)

func runResolutionJobTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("put then get returns the job", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		job := model.NewResolutionJob("#general")
		if err := repo.ResolutionJobs().Put(ctx, job); err != nil {
			t.Fatalf("failed to put job: %v", err)
		}

		got, err := repo.ResolutionJobs().Get(ctx, job.ID)
		if err != nil {
			t.Fatalf("failed to get job: %v", err)
		}
		if got.Name != "#general" {
			t.Errorf("expected name #general, got %s", got.Name)
		}
		if got.Status != model.ResolutionPending {
			t.Errorf("expected pending status, got %s", got.Status)
		}
		if got.UpdatedAt.IsZero() {
			t.Error("expected non-zero UpdatedAt")
		}
	})

	t.Run("get of a missing job returns not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.ResolutionJobs().Get(ctx, model.NewResolutionJobID())
		if err == nil {
			t.Fatal("expected error for missing job")
		}
	})

	t.Run("put updates an existing job", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		job := model.NewResolutionJob("#general")
		if err := repo.ResolutionJobs().Put(ctx, job); err != nil {
			t.Fatalf("failed to put job: %v", err)
		}

		job.Status = model.ResolutionResolved
		job.Prefix = "#"
		job.ChannelID = "C123"
		if err := repo.ResolutionJobs().Put(ctx, job); err != nil {
			t.Fatalf("failed to update job: %v", err)
		}

		got, err := repo.ResolutionJobs().Get(ctx, job.ID)
		if err != nil {
			t.Fatalf("failed to get job: %v", err)
		}
		if got.Status != model.ResolutionResolved {
			t.Errorf("expected resolved status, got %s", got.Status)
		}
		if got.ChannelID != "C123" {
			t.Errorf("expected channel C123, got %s", got.ChannelID)
		}
	})

	t.Run("ListPending returns oldest pending jobs first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := model.NewResolutionJob("#alpha")
		first.CreatedAt = time.Unix(1000, 0).UTC()
		second := model.NewResolutionJob("#beta")
		second.CreatedAt = time.Unix(2000, 0).UTC()
		done := model.NewResolutionJob("#done")
		done.CreatedAt = time.Unix(500, 0).UTC()
		done.Status = model.ResolutionResolved

		for _, job := range []*model.ResolutionJob{second, done, first} {
			if err := repo.ResolutionJobs().Put(ctx, job); err != nil {
				t.Fatalf("failed to put job: %v", err)
			}
		}

		jobs, err := repo.ResolutionJobs().ListPending(ctx, 10)
		if err != nil {
			t.Fatalf("failed to list pending jobs: %v", err)
		}
		if len(jobs) != 2 {
			t.Fatalf("expected 2 pending jobs, got %d", len(jobs))
		}
		if jobs[0].Name != "#alpha" || jobs[1].Name != "#beta" {
			t.Errorf("expected [#alpha #beta], got [%s %s]", jobs[0].Name, jobs[1].Name)
		}

		limited, err := repo.ResolutionJobs().ListPending(ctx, 1)
		if err != nil {
			t.Fatalf("failed to list pending jobs: %v", err)
		}
		if len(limited) != 1 || limited[0].Name != "#alpha" {
			t.Errorf("expected only #alpha, got %v", limited)
		}
	})
}

func TestResolutionJobMemory(t *testing.T) {
	runResolutionJobTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestResolutionJobFirestore(t *testing.T) {
	runResolutionJobTest(t, newFirestoreRepo)
}

func TestResolutionJobNotFoundSentinel(t *testing.T) {
	repo := memory.New()

	_, err := repo.ResolutionJobs().Get(context.Background(), model.NewResolutionJobID())
	if !errors.Is(err, memory.ErrNotFound) {
		t.Errorf("expected memory.ErrNotFound, got %v", err)
	}
}
