package memory

import (
	"github.com/watchtower-lab/slackbridge/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	notifications *notificationSettingRepository
	releases      *releaseRepository
	jobs          *resolutionJobRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		notifications: newNotificationSettingRepository(),
		releases:      newReleaseRepository(),
		jobs:          newResolutionJobRepository(),
	}
}

func (m *Memory) NotificationSettings() interfaces.NotificationSettingRepository {
	return m.notifications
}

func (m *Memory) Releases() interfaces.ReleaseRepository {
	return m.releases
}

func (m *Memory) ResolutionJobs() interfaces.ResolutionJobRepository {
	return m.jobs
}

func (m *Memory) Close() error {
	return nil
}
