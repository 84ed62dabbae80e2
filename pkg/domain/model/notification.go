package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
)

// ErrInvalidTarget is returned when a notification-setting call does
// not identify exactly one actor to read or write for.
var ErrInvalidTarget = goerr.New("target must be exactly one of user or team")

// TargetType identifies the kind of actor a setting belongs to
type TargetType string

const (
	TargetUser TargetType = "user"
	TargetTeam TargetType = "team"
)

// Target is the resolved actor of a notification setting
type Target struct {
	Type       TargetType
	Identifier string
}

// TargetSelector names the entities a notification-setting call is
// scoped to. Exactly one of User or Team must be set; Project and
// Organization optionally narrow the scope.
type TargetSelector struct {
	User         types.UserID
	Team         types.TeamID
	Project      types.ProjectID
	Organization types.OrganizationID
}

// Resolve validates the selector and maps it to a (target, scope)
// pair. Scope precedence is project > organization > user.
func (x TargetSelector) Resolve() (Target, types.Scope, error) {
	var target Target
	switch {
	case x.User != "" && x.Team != "":
		return Target{}, types.Scope{}, goerr.Wrap(ErrInvalidTarget, "both user and team given",
			goerr.V("user", x.User), goerr.V("team", x.Team))
	case x.User != "":
		target = Target{Type: TargetUser, Identifier: x.User.String()}
	case x.Team != "":
		target = Target{Type: TargetTeam, Identifier: x.Team.String()}
	default:
		return Target{}, types.Scope{}, goerr.Wrap(ErrInvalidTarget, "no target given")
	}

	switch {
	case x.Project != "":
		return target, types.Scope{Type: types.ScopeProject, Identifier: x.Project.String()}, nil
	case x.Organization != "":
		return target, types.Scope{Type: types.ScopeOrganization, Identifier: x.Organization.String()}, nil
	case x.User != "":
		return target, types.Scope{Type: types.ScopeUser, Identifier: x.User.String()}, nil
	}

	// A bare team has no scope source
	return Target{}, types.Scope{}, goerr.Wrap(ErrInvalidTarget, "team target requires a project or organization scope",
		goerr.V("team", x.Team))
}

// NotificationSetting is one stored notification preference row
type NotificationSetting struct {
	Provider  types.Provider
	Type      types.SettingType
	Scope     types.Scope
	Target    Target
	Value     types.SettingValue
	UpdatedAt time.Time
}

// LegacyOption is the mirrored legacy key/value row that must stay in
// lockstep with the settings row.
type LegacyOption struct {
	User         types.UserID
	Project      types.ProjectID
	Organization types.OrganizationID
	Key          string
	Value        int
}
