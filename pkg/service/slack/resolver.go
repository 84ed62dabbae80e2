package slack

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/utils/logging"
)

// Query is the immutable input of one resolution call. Name must
// already be stripped of display prefixes.
type Query struct {
	Name     string
	Deadline time.Time
}

// Resolver locates the chat service's internal identifier for a
// human-typed channel or user name by paginating through the list
// endpoints in a fixed order.
type Resolver struct {
	client ListClient
	now    func() time.Time
}

// NewResolver creates a resolver over the given list client
func NewResolver(client ListClient) *Resolver {
	return &Resolver{
		client: client,
		now:    time.Now,
	}
}

// Resolve scans conversations, then users, for the queried name.
//
// An exact name match (case-insensitive, the name field is unique per
// list type) wins immediately. Among users, display-name matches are
// collected as candidates; a unique candidate is returned after the
// users list is exhausted, while repeats fail with
// ErrDuplicateDisplayName. The deadline is soft: it is checked only at
// page boundaries, so a slow page fetch may overrun it.
//
// When nothing matches anywhere the prefix falls through from the last
// list type tried, so a plain not-found reads "@". Existing callers
// key off the prefix for display only.
func (x *Resolver) Resolve(ctx context.Context, query Query) (*Resolution, error) {
	logger := logging.From(ctx)

	var candidate *Resolution
	foundDuplicate := false

	for _, scan := range listTypes {
		pager := x.client.Pages(scan.listType)
		for {
			page, err := pager.Next(ctx)
			if err != nil {
				// Fail open: a transport failure reads as not-found for this
				// lookup rather than aborting the caller's flow.
				logger.Info("channel list request failed",
					"list_type", scan.listType,
					"error", err.Error(),
				)
				return &Resolution{Prefix: scan.prefix}, nil
			}
			if page == nil {
				break
			}

			for _, entry := range page.Entries {
				// Slack stores unique names lowercased
				if strings.EqualFold(entry.Name, query.Name) {
					return &Resolution{Prefix: scan.prefix, ChannelID: entry.ID}, nil
				}
				if scan.listType == ListTypeUsers && entry.DisplayName != "" && entry.DisplayName == query.Name {
					if candidate != nil {
						foundDuplicate = true
					} else {
						candidate = &Resolution{Prefix: scan.prefix, ChannelID: entry.ID}
					}
				}
			}

			if x.now().After(query.Deadline) {
				return &Resolution{Prefix: scan.prefix, TimedOut: true}, nil
			}
		}

		if foundDuplicate {
			return nil, goerr.Wrap(ErrDuplicateDisplayName, "cannot resolve display name",
				goerr.V("name", query.Name))
		}
		if candidate != nil {
			return candidate, nil
		}
	}

	return &Resolution{Prefix: MemberPrefix}, nil
}
