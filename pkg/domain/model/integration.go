package model

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
)

// Integration holds the credentials of an installed chat-service
// integration for one organization.
type Integration struct {
	ID             string
	OrganizationID types.OrganizationID
	TeamName       string
	AccessToken    string
}

func (x *Integration) Validate() error {
	if x.ID == "" {
		return goerr.New("integration ID cannot be empty")
	}
	if x.AccessToken == "" {
		return goerr.New("integration access token cannot be empty", goerr.V("integration_id", x.ID))
	}
	return nil
}

// LogValue never exposes the access token
func (x Integration) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", x.ID),
		slog.String("organization_id", x.OrganizationID.String()),
		slog.String("team_name", x.TeamName),
		slog.Int("access_token.len", len(x.AccessToken)),
	)
}
