package slack_test

import (
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/service/slack"
)

func testIssue() *model.Issue {
	return &model.Issue{
		ID:               "42",
		ProjectSlug:      "backend",
		OrganizationSlug: "acme",
		Title:            "ZeroDivisionError: division by zero",
		QualifiedShortID: "BACKEND-1A",
		Status:           model.IssueUnresolved,
		Type:             model.EventTypeError,
		Metadata: map[string]string{
			"type":  "ZeroDivisionError",
			"value": "division by zero",
		},
		Permalink: "https://trace.example.com/organizations/acme/issues/42/",
		LastSeen:  time.Unix(1700000000, 0),
	}
}

func TestBuildIssueAttachment(t *testing.T) {
	colors := slack.DefaultColors()

	t.Run("error issue renders exception type and value", func(t *testing.T) {
		att := slack.BuildIssueAttachment(colors, slack.IssueAttachmentInput{Issue: testIssue()})
		gt.Value(t, att.Title).Equal("ZeroDivisionError")
		gt.Value(t, att.Text).Equal("division by zero")
		gt.Value(t, att.Fallback).Equal("[backend] ZeroDivisionError: division by zero")
		gt.Value(t, att.TitleLink).Equal("https://trace.example.com/organizations/acme/issues/42/?referrer=slack")
		gt.Value(t, att.Footer).Equal("BACKEND-1A")
		gt.Value(t, att.Timestamp).Equal(int64(1700000000))
		gt.Array(t, att.MarkdownIn).Equal([]string{"text"})
	})

	t.Run("csp issue renders directive and uri", func(t *testing.T) {
		issue := testIssue()
		issue.Type = model.EventTypeCSP
		issue.Metadata = map[string]string{"directive": "script-src", "uri": "evil.example.com"}
		att := slack.BuildIssueAttachment(colors, slack.IssueAttachmentInput{Issue: issue})
		gt.Value(t, att.Title).Equal("script-src - evil.example.com")
		gt.Value(t, att.Text).Equal("")
	})

	t.Run("level tag drives color with error fallback", func(t *testing.T) {
		issue := testIssue()
		issue.LatestEvent = &model.Event{
			Type: model.EventTypeError,
			Tags: []model.Tag{{Key: "level", Value: "warning"}},
		}
		att := slack.BuildIssueAttachment(colors, slack.IssueAttachmentInput{Issue: issue})
		gt.Value(t, att.Color).Equal("#FFC227")

		att = slack.BuildIssueAttachment(colors, slack.IssueAttachmentInput{Issue: testIssue()})
		gt.Value(t, att.Color).Equal("#E03E2F")
	})

	t.Run("requested tags become short fields", func(t *testing.T) {
		event := &model.Event{
			Type: model.EventTypeError,
			Tags: []model.Tag{
				{Key: "browser", Value: "Firefox"},
				{Key: "level", Value: "error"},
				{Key: "url", Value: "https://app.example.com"},
			},
			Timestamp: time.Unix(1700000100, 0),
		}
		att := slack.BuildIssueAttachment(colors, slack.IssueAttachmentInput{
			Issue: testIssue(),
			Event: event,
			Tags:  []string{"browser", "url"},
		})
		gt.Array(t, att.Fields).Length(2)
		gt.Value(t, att.Fields[0]).Equal(model.AttachmentField{Title: "browser", Value: "Firefox", Short: true})
		// Newer event timestamp wins over last seen
		gt.Value(t, att.Timestamp).Equal(int64(1700000100))
	})

	t.Run("action log collapses to actioned form", func(t *testing.T) {
		att := slack.BuildIssueAttachment(colors, slack.IssueAttachmentInput{
			Issue:     testIssue(),
			ActionLog: []string{"*Issue resolved by <@U1>*"},
		})
		gt.Value(t, att.Color).Equal("#EDEEEF")
		gt.Array(t, att.Actions).Length(0)
		gt.Bool(t, strings.Contains(att.Text, "*Issue resolved by <@U1>*")).True()
	})

	t.Run("resolve action depends on releases and status", func(t *testing.T) {
		att := slack.BuildIssueAttachment(colors, slack.IssueAttachmentInput{
			Issue:       testIssue(),
			HasReleases: true,
		})
		gt.Array(t, att.Actions).Length(3)
		gt.Value(t, att.Actions[0].Name).Equal("resolve_dialog")

		att = slack.BuildIssueAttachment(colors, slack.IssueAttachmentInput{Issue: testIssue()})
		gt.Value(t, att.Actions[0]).Equal(model.AttachmentAction{
			Name: "status", Text: "Resolve", Type: "button", Value: "resolved",
		})

		resolved := testIssue()
		resolved.Status = model.IssueResolved
		att = slack.BuildIssueAttachment(colors, slack.IssueAttachmentInput{Issue: resolved, HasReleases: true})
		gt.Value(t, att.Actions[0].Text).Equal("Unresolve")

		ignored := testIssue()
		ignored.Status = model.IssueIgnored
		att = slack.BuildIssueAttachment(colors, slack.IssueAttachmentInput{Issue: ignored})
		gt.Value(t, att.Actions[1].Text).Equal("Stop Ignoring")
	})

	t.Run("rules decorate the footer", func(t *testing.T) {
		att := slack.BuildIssueAttachment(colors, slack.IssueAttachmentInput{
			Issue: testIssue(),
			Rules: []model.Rule{
				{ID: "7", Label: "High volume", URL: "https://trace.example.com/rules/7/"},
				{ID: "8", Label: "Other", URL: "https://trace.example.com/rules/8/"},
			},
		})
		gt.Value(t, att.Footer).Equal("BACKEND-1A via <https://trace.example.com/rules/7/|High volume> (+1 other)")
	})

	t.Run("link to event rewrites the title link", func(t *testing.T) {
		att := slack.BuildIssueAttachment(colors, slack.IssueAttachmentInput{
			Issue:       testIssue(),
			Event:       &model.Event{ID: "ev99", Type: model.EventTypeError},
			LinkToEvent: true,
		})
		gt.Value(t, att.TitleLink).Equal("https://trace.example.com/organizations/acme/issues/42/events/ev99/?referrer=slack")
	})
}

func TestBuildIncidentAttachment(t *testing.T) {
	colors := slack.DefaultColors()
	incident := &model.Incident{
		ID:        "15",
		Title:     "High error rate",
		Text:      "Errors per minute",
		TitleLink: "https://trace.example.com/organizations/acme/incidents/15/",
		StartedAt: time.Unix(1700000000, 0),
		Status:    model.IncidentCritical,
	}

	t.Run("status maps to color", func(t *testing.T) {
		att := slack.BuildIncidentAttachment(colors, incident, "187")
		gt.Value(t, att.Color).Equal("#FA4747")
		gt.Value(t, att.Text).Equal("Errors per minute: 187")

		warn := *incident
		warn.Status = model.IncidentWarning
		gt.Value(t, slack.BuildIncidentAttachment(colors, &warn, "").Color).Equal("#FFC227")

		done := *incident
		done.Status = model.IncidentResolved
		gt.Value(t, slack.BuildIncidentAttachment(colors, &done, "").Color).Equal("#4dc771")
	})

	t.Run("footer carries the start timestamp", func(t *testing.T) {
		att := slack.BuildIncidentAttachment(colors, incident, "")
		gt.Bool(t, strings.Contains(att.Footer, "1700000000")).True()
		gt.Array(t, att.Actions).Length(0)
	})
}
