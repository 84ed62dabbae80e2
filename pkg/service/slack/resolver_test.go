package slack_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/watchtower-lab/slackbridge/pkg/service/slack"
)

// fakeListClient serves canned pages and counts fetches per list type
type fakeListClient struct {
	conversations [][]slack.Entry
	users         [][]slack.Entry

	conversationsErr error
	usersErr         error

	conversationsFetches int
	usersFetches         int
}

func (x *fakeListClient) Pages(listType slack.ListType) slack.Pager {
	if listType == slack.ListTypeUsers {
		return &fakePager{pages: x.users, err: x.usersErr, fetches: &x.usersFetches}
	}
	return &fakePager{pages: x.conversations, err: x.conversationsErr, fetches: &x.conversationsFetches}
}

type fakePager struct {
	pages   [][]slack.Entry
	idx     int
	err     error
	fetches *int
}

func (x *fakePager) Next(ctx context.Context) (*slack.Page, error) {
	if x.err != nil {
		return nil, x.err
	}
	if x.idx >= len(x.pages) {
		return nil, nil
	}
	*x.fetches++
	page := &slack.Page{Entries: x.pages[x.idx]}
	x.idx++
	return page, nil
}

func farDeadline() time.Time {
	return time.Now().Add(time.Hour)
}

func TestResolver_ExactConversationMatch(t *testing.T) {
	client := &fakeListClient{
		conversations: [][]slack.Entry{
			{{ID: "C123", Name: "general"}},
			{{ID: "C999", Name: "general-2"}},
		},
	}
	r := slack.NewResolver(client)

	res, err := r.Resolve(context.Background(), slack.Query{Name: "general", Deadline: farDeadline()})
	gt.NoError(t, err).Required()
	gt.Value(t, res.Prefix).Equal("#")
	gt.Value(t, res.ChannelID).Equal("C123")
	gt.Bool(t, res.TimedOut).False()

	// Short-circuits on the first page
	gt.Number(t, client.conversationsFetches).Equal(1)
	gt.Number(t, client.usersFetches).Equal(0)
}

func TestResolver_ExactMatchIsCaseInsensitive(t *testing.T) {
	client := &fakeListClient{
		conversations: [][]slack.Entry{},
		users: [][]slack.Entry{
			{{ID: "U1", Name: "jane.doe"}},
		},
	}
	r := slack.NewResolver(client)

	res, err := r.Resolve(context.Background(), slack.Query{Name: "Jane.Doe", Deadline: farDeadline()})
	gt.NoError(t, err).Required()
	gt.Value(t, res.Prefix).Equal("@")
	gt.Value(t, res.ChannelID).Equal("U1")
}

func TestResolver_NotFoundFallsThroughToMemberPrefix(t *testing.T) {
	client := &fakeListClient{
		conversations: [][]slack.Entry{{{ID: "C1", Name: "ops"}}},
		users:         [][]slack.Entry{{{ID: "U1", Name: "alice"}}},
	}
	r := slack.NewResolver(client)

	res, err := r.Resolve(context.Background(), slack.Query{Name: "nosuch", Deadline: farDeadline()})
	gt.NoError(t, err).Required()
	gt.Value(t, res.Prefix).Equal("@")
	gt.Value(t, res.ChannelID).Equal("")
	gt.Bool(t, res.TimedOut).False()
}

func TestResolver_UniqueDisplayNameCandidate(t *testing.T) {
	client := &fakeListClient{
		conversations: [][]slack.Entry{{{ID: "C1", Name: "ops"}}},
		users: [][]slack.Entry{
			{
				{ID: "U1", Name: "jdoe", DisplayName: "Jane Doe"},
				{ID: "U2", Name: "asmith", DisplayName: "Alice Smith"},
			},
		},
	}
	r := slack.NewResolver(client)

	res, err := r.Resolve(context.Background(), slack.Query{Name: "Jane Doe", Deadline: farDeadline()})
	gt.NoError(t, err).Required()
	gt.Value(t, res.Prefix).Equal("@")
	gt.Value(t, res.ChannelID).Equal("U1")
}

func TestResolver_DisplayNameComparisonIsExact(t *testing.T) {
	client := &fakeListClient{
		users: [][]slack.Entry{
			{{ID: "U1", Name: "jdoe", DisplayName: "Jane Doe"}},
		},
	}
	r := slack.NewResolver(client)

	// Display names do not get the case-insensitive treatment
	res, err := r.Resolve(context.Background(), slack.Query{Name: "jane doe", Deadline: farDeadline()})
	gt.NoError(t, err).Required()
	gt.Value(t, res.ChannelID).Equal("")
}

func TestResolver_DuplicateDisplayName(t *testing.T) {
	client := &fakeListClient{
		conversations: [][]slack.Entry{{{ID: "C1", Name: "ops"}}},
		users: [][]slack.Entry{
			{{ID: "U1", Name: "jdoe", DisplayName: "Jane Doe"}},
			{{ID: "U2", Name: "jdoe2", DisplayName: "Jane Doe"}},
		},
	}
	r := slack.NewResolver(client)

	_, err := r.Resolve(context.Background(), slack.Query{Name: "Jane Doe", Deadline: farDeadline()})
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, slack.ErrDuplicateDisplayName)).True()

	// Scanning continued to the end of the users list before failing
	gt.Number(t, client.usersFetches).Equal(2)
}

func TestResolver_ExactNameBeatsDisplayNameCandidate(t *testing.T) {
	client := &fakeListClient{
		users: [][]slack.Entry{
			{
				{ID: "U1", Name: "someone", DisplayName: "jane"},
				{ID: "U2", Name: "jane", DisplayName: "Jane The Second"},
			},
		},
	}
	r := slack.NewResolver(client)

	res, err := r.Resolve(context.Background(), slack.Query{Name: "jane", Deadline: farDeadline()})
	gt.NoError(t, err).Required()
	gt.Value(t, res.ChannelID).Equal("U2")
}

func TestResolver_ExpiredDeadlineStillFetchesFirstPage(t *testing.T) {
	client := &fakeListClient{
		conversations: [][]slack.Entry{
			{{ID: "C1", Name: "ops"}},
			{{ID: "C2", Name: "dev"}},
		},
	}
	r := slack.NewResolver(client)
	r.SetNow(func() time.Time { return time.Unix(2000, 0) })

	res, err := r.Resolve(context.Background(), slack.Query{
		Name:     "nosuch",
		Deadline: time.Unix(1000, 0),
	})
	gt.NoError(t, err).Required()
	gt.Bool(t, res.TimedOut).True()
	gt.Value(t, res.Prefix).Equal("#")

	// The first page is always fetched before the deadline check
	gt.Number(t, client.conversationsFetches).Equal(1)
	gt.Number(t, client.usersFetches).Equal(0)
}

func TestResolver_ExactMatchWinsEvenAfterDeadline(t *testing.T) {
	client := &fakeListClient{
		conversations: [][]slack.Entry{
			{{ID: "C123", Name: "general"}},
		},
	}
	r := slack.NewResolver(client)
	r.SetNow(func() time.Time { return time.Unix(2000, 0) })

	// The per-item match check runs before the page-boundary time check
	res, err := r.Resolve(context.Background(), slack.Query{
		Name:     "general",
		Deadline: time.Unix(1000, 0),
	})
	gt.NoError(t, err).Required()
	gt.Bool(t, res.TimedOut).False()
	gt.Value(t, res.ChannelID).Equal("C123")
}

func TestResolver_TransportErrorReadsAsNotFound(t *testing.T) {
	client := &fakeListClient{
		conversationsErr: goerr.New("rate limited"),
		users:            [][]slack.Entry{{{ID: "U1", Name: "jane"}}},
	}
	r := slack.NewResolver(client)

	// Fails open with the current list type's prefix; it does NOT fall
	// through to the users list.
	res, err := r.Resolve(context.Background(), slack.Query{Name: "jane", Deadline: farDeadline()})
	gt.NoError(t, err).Required()
	gt.Value(t, res.Prefix).Equal("#")
	gt.Value(t, res.ChannelID).Equal("")
	gt.Bool(t, res.TimedOut).False()
	gt.Number(t, client.usersFetches).Equal(0)
}
