package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// OrganizationID identifies an organization on the error-tracking platform
type OrganizationID string

func (x OrganizationID) Validate() error {
	if x == "" {
		return goerr.New("organization ID cannot be empty")
	}
	return nil
}

func (x OrganizationID) String() string {
	return string(x)
}

// ProjectID identifies a project within an organization
type ProjectID string

func (x ProjectID) Validate() error {
	if x == "" {
		return goerr.New("project ID cannot be empty")
	}
	return nil
}

func (x ProjectID) String() string {
	return string(x)
}

// TeamID identifies a team within an organization
type TeamID string

func (x TeamID) Validate() error {
	if x == "" {
		return goerr.New("team ID cannot be empty")
	}
	return nil
}

func (x TeamID) String() string {
	return string(x)
}

// UserID identifies a platform user
type UserID string

func (x UserID) Validate() error {
	if x == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

func (x UserID) String() string {
	return string(x)
}

// ChannelID is the chat service's opaque identifier for a channel or
// direct-message target. It carries no semantic weight; the display
// prefix ("#" or "@") is a separate convention.
type ChannelID string

func (x ChannelID) String() string {
	return string(x)
}
