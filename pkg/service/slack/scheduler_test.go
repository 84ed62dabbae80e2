package slack_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/watchtower-lab/slackbridge/pkg/service/slack"
)

func TestStripChannelName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"channel prefix", "#general", "general"},
		{"member prefix", "@jane", "jane"},
		{"no prefix", "general", "general"},
		{"stacked prefixes", "#@general", "general"},
		{"inner prefix kept", "gen#eral", "gen#eral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, slack.StripChannelName(tt.in)).Equal(tt.want)
		})
	}
}

func TestDefaultTimeouts(t *testing.T) {
	timeouts := slack.DefaultTimeouts()
	gt.Value(t, timeouts.Sync).Equal(10 * time.Second)
	gt.Value(t, timeouts.Async).Equal(3 * time.Minute)
	gt.Value(t, timeouts.Post).Equal(5 * time.Second)
}

func TestScheduler_BudgetSelection(t *testing.T) {
	base := time.Unix(1000, 0)

	newScheduler := func(client *fakeListClient) *slack.Scheduler {
		resolver := slack.NewResolver(client)
		// The clock jumps 11s between scheduling and the first page
		// boundary: past the sync budget, well within the async one.
		resolver.SetNow(func() time.Time { return base.Add(11 * time.Second) })
		s := slack.NewScheduler(resolver)
		s.SetNow(func() time.Time { return base })
		return s
	}

	pages := func() *fakeListClient {
		return &fakeListClient{
			conversations: [][]slack.Entry{{{ID: "C1", Name: "ops"}}},
			users:         [][]slack.Entry{{{ID: "U1", Name: "alice"}}},
		}
	}

	t.Run("sync lookup times out", func(t *testing.T) {
		res, err := newScheduler(pages()).ResolveChannelID(context.Background(), "#nosuch", false)
		gt.NoError(t, err).Required()
		gt.Bool(t, res.TimedOut).True()
	})

	t.Run("async lookup gets the longer budget", func(t *testing.T) {
		res, err := newScheduler(pages()).ResolveChannelID(context.Background(), "#nosuch", true)
		gt.NoError(t, err).Required()
		gt.Bool(t, res.TimedOut).False()
		gt.Value(t, res.ChannelID).Equal("")
	})
}

func TestScheduler_StripsPrefixBeforeResolving(t *testing.T) {
	client := &fakeListClient{
		conversations: [][]slack.Entry{{{ID: "C123", Name: "general"}}},
	}
	s := slack.NewScheduler(slack.NewResolver(client))

	res, err := s.ResolveChannelID(context.Background(), "#general", false)
	gt.NoError(t, err).Required()
	gt.Value(t, res.ChannelID).Equal("C123")
	gt.Value(t, res.Prefix).Equal("#")
}
