package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrJobNotFound         = errors.New("resolution job not found")
	ErrInvalidSettingValue = errors.New("value is not valid for this notification type")
)
