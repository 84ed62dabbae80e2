package slack_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/watchtower-lab/slackbridge/pkg/service/slack"
)

func TestScrubLink(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"issue url",
			"https://trace.example.com/organizations/acme/issues/42/",
			"organizations/{organization}/issues/{issue_id}/",
		},
		{
			"event url with project param",
			"https://trace.example.com/organizations/acme/issues/42/events/ev99/?project=7",
			"organizations/{organization}/issues/{issue_id}/events/{event_id}/project=%7Bproject%7D",
		},
		{
			"other query params survive",
			"https://trace.example.com/organizations/acme/issues/42/?referrer=slack",
			"organizations/{organization}/issues/{issue_id}/referrer=slack",
		},
		{
			"unrelated path untouched",
			"https://trace.example.com/settings/account/",
			"settings/account/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, slack.ScrubLink(tt.in)).Equal(tt.want)
		})
	}
}
