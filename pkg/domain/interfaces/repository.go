package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	NotificationSettings() NotificationSettingRepository
	Releases() ReleaseRepository
	ResolutionJobs() ResolutionJobRepository

	Close() error
}
