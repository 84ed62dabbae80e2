package model

import (
	"time"

	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
)

// IncidentStatus is the severity state of a metric-alert incident
type IncidentStatus string

const (
	IncidentResolved IncidentStatus = "Resolved"
	IncidentWarning  IncidentStatus = "Warning"
	IncidentCritical IncidentStatus = "Critical"
)

// Incident is a metric-alert incident
type Incident struct {
	ID             string
	OrganizationID types.OrganizationID
	Title          string
	Text           string
	TitleLink      string
	LogoURL        string
	Status         IncidentStatus
	StartedAt      time.Time
}

// AlertRuleAction is the configured delivery target of an alert rule
type AlertRuleAction struct {
	IntegrationID    string
	TargetIdentifier types.ChannelID
}
