package usecase

import "time"

// SetNow is exported for testing
func (x *IssueUseCase) SetNow(now func() time.Time) {
	x.now = now
}

// LegacyOptionFor is exported for testing
var LegacyOptionFor = legacyOptionFor

// LegacyKeyFor is exported for testing
var LegacyKeyFor = legacyKeyFor
