package types

import "github.com/m-mizutani/goerr/v2"

// ScopeType identifies whose notification preference is being
// read or written.
type ScopeType string

const (
	ScopeUser         ScopeType = "user"
	ScopeOrganization ScopeType = "organization"
	ScopeProject      ScopeType = "project"
)

func (x ScopeType) Validate() error {
	switch x {
	case ScopeUser, ScopeOrganization, ScopeProject:
		return nil
	default:
		return goerr.New("invalid scope type", goerr.V("scope", x))
	}
}

func (x ScopeType) String() string {
	return string(x)
}

// Scope is a resolved (type, identifier) pair
type Scope struct {
	Type       ScopeType
	Identifier string
}
