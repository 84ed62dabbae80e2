package model

import (
	"time"

	"github.com/google/uuid"
)

// ResolutionJobID identifies a deferred channel-resolution job
type ResolutionJobID string

func NewResolutionJobID() ResolutionJobID {
	return ResolutionJobID(uuid.New().String())
}

func (x ResolutionJobID) String() string {
	return string(x)
}

// ResolutionJobStatus is the lifecycle state of a deferred resolution
type ResolutionJobStatus string

const (
	ResolutionPending   ResolutionJobStatus = "pending"
	ResolutionResolved  ResolutionJobStatus = "resolved"
	ResolutionNotFound  ResolutionJobStatus = "not_found"
	ResolutionAmbiguous ResolutionJobStatus = "ambiguous"
	ResolutionTimedOut  ResolutionJobStatus = "timed_out"
	ResolutionFailed    ResolutionJobStatus = "failed"
)

// ResolutionJob is a deferred channel-name resolution, enqueued when a
// synchronous lookup runs out of its time budget.
type ResolutionJob struct {
	ID        ResolutionJobID
	Name      string
	Status    ResolutionJobStatus
	Prefix    string
	ChannelID string
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewResolutionJob creates a pending job for the given raw name
func NewResolutionJob(name string) *ResolutionJob {
	now := time.Now().UTC()
	return &ResolutionJob{
		ID:        NewResolutionJobID(),
		Name:      name,
		Status:    ResolutionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
