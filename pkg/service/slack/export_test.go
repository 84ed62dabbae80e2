package slack

import "time"

// SetNow overrides the resolver clock for testing
func (x *Resolver) SetNow(now func() time.Time) {
	x.now = now
}

// SetNow overrides the scheduler clock for testing
func (x *Scheduler) SetNow(now func() time.Time) {
	x.now = now
}

// ToSlackAttachment is exported for testing wire conversion
var ToSlackAttachment = toSlackAttachment
