package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
)

const (
	// MemberPrefix is the display prefix for direct-message targets
	MemberPrefix = "@"
	// ChannelPrefix is the display prefix for channels
	ChannelPrefix = "#"

	// pageSize is the platform-imposed maximum for list endpoints
	pageSize = 1000
)

// ErrDuplicateDisplayName is returned when two or more users share the
// queried display name and none matches by exact name. The caller must
// surface this to the end user ("use the exact channel/user name").
var ErrDuplicateDisplayName = goerr.New("multiple users share this display name")

// ListType is one category of nameable entity in the chat service
type ListType string

const (
	ListTypeConversations ListType = "conversations"
	ListTypeUsers         ListType = "users"
)

// listTypeSpec couples a list type with its result key and display
// prefix. The set is closed and ordered; it is represented as a slice,
// not an interface hierarchy.
type listTypeSpec struct {
	listType  ListType
	resultKey string
	prefix    string
}

// listTypes is the fixed search order: conversations are always
// scanned before users.
var listTypes = []listTypeSpec{
	{ListTypeConversations, "channels", ChannelPrefix},
	{ListTypeUsers, "members", MemberPrefix},
}

// Entry is one item record of a list page
type Entry struct {
	ID          string
	Name        string
	DisplayName string
}

// Page is one fetch result from a list endpoint
type Page struct {
	Entries []Entry
}

// Pager yields the pages of one list type, one remote call per Next.
// A nil page signals the list is exhausted.
type Pager interface {
	Next(ctx context.Context) (*Page, error)
}

// ListClient abstracts the chat service's paginated list endpoints
type ListClient interface {
	Pages(listType ListType) Pager
}

// Poster abstracts message delivery
type Poster interface {
	PostAttachment(ctx context.Context, channelID string, attachment model.Attachment) error
}

// Resolution is the outcome of a channel-name lookup. An empty
// ChannelID means the name was not found; TimedOut reports that the
// self-imposed time budget ran out mid-pagination so the caller can
// schedule a longer asynchronous retry.
type Resolution struct {
	Prefix    string
	ChannelID string
	TimedOut  bool
}

// Found reports whether the lookup produced an identifier
func (x *Resolution) Found() bool {
	return x.ChannelID != ""
}
