package model

import (
	"time"

	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
)

// IssueStatus is the triage state of an issue group
type IssueStatus string

const (
	IssueUnresolved IssueStatus = "unresolved"
	IssueResolved   IssueStatus = "resolved"
	IssueIgnored    IssueStatus = "ignored"
)

// EventType classifies what kind of event produced an issue
type EventType string

const (
	EventTypeError   EventType = "error"
	EventTypeCSP     EventType = "csp"
	EventTypeDefault EventType = "default"
)

// Tag is a single key/value annotation on an event
type Tag struct {
	Key   string
	Value string
}

// Event is one occurrence of an issue
type Event struct {
	ID        string
	Title     string
	Type      EventType
	Level     string
	Metadata  map[string]string
	Tags      []Tag
	Timestamp time.Time
}

// TagValue returns the value of the named tag, or empty string
func (x *Event) TagValue(key string) string {
	for _, t := range x.Tags {
		if t.Key == key {
			return t.Value
		}
	}
	return ""
}

// Issue is an aggregated error group on the tracking platform
type Issue struct {
	ID               string
	ProjectID        types.ProjectID
	ProjectSlug      string
	OrganizationSlug string
	Title            string
	QualifiedShortID string
	Status           IssueStatus
	Type             EventType
	Metadata         map[string]string
	Permalink        string
	LastSeen         time.Time
	LatestEvent      *Event
	Assignee         *ActorOption
}

// ActorOption is a selectable assignee (user or team) in an
// interactive message.
type ActorOption struct {
	Text  string
	Value string
}

// Rule is the alert rule that triggered a notification
type Rule struct {
	ID    string
	Label string
	URL   string
}
