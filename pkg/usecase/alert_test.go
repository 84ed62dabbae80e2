package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/repository/memory"
	"github.com/watchtower-lab/slackbridge/pkg/service/slack"
	"github.com/watchtower-lab/slackbridge/pkg/usecase"
)

type postedMessage struct {
	channelID  string
	attachment model.Attachment
}

type fakePoster struct {
	posted chan postedMessage
}

func newFakePoster() *fakePoster {
	return &fakePoster{posted: make(chan postedMessage, 8)}
}

func (x *fakePoster) PostAttachment(ctx context.Context, channelID string, attachment model.Attachment) error {
	x.posted <- postedMessage{channelID: channelID, attachment: attachment}
	return nil
}

func newUseCases(repo *memory.Memory, poster slack.Poster) *usecase.UseCases {
	scheduler := slack.NewScheduler(slack.NewResolver(&fakeListClient{}))
	return usecase.New(repo, scheduler, poster)
}

func TestAlertUseCase_SendIncidentAlert(t *testing.T) {
	repo := memory.New()
	poster := newFakePoster()
	uc := newUseCases(repo, poster)

	incident := &model.Incident{
		ID:        "15",
		Title:     "High error rate",
		Status:    model.IncidentCritical,
		StartedAt: time.Unix(1700000000, 0),
	}
	action := &model.AlertRuleAction{TargetIdentifier: "C123"}

	uc.Alerts.SendIncidentAlert(context.Background(), action, incident, "187")

	select {
	case msg := <-poster.posted:
		if msg.channelID != "C123" {
			t.Errorf("expected channel C123, got %s", msg.channelID)
		}
		if msg.attachment.Color != "#FA4747" {
			t.Errorf("expected critical color, got %s", msg.attachment.Color)
		}
	case <-time.After(time.Second):
		t.Fatal("expected an incident alert to be posted")
	}
}

func TestAlertUseCase_SendIssueAlert(t *testing.T) {
	ctx := context.Background()

	issue := &model.Issue{
		ID:               "42",
		ProjectID:        "7",
		ProjectSlug:      "backend",
		OrganizationSlug: "acme",
		Title:            "boom",
		QualifiedShortID: "BACKEND-1A",
		Status:           model.IssueUnresolved,
		Type:             model.EventTypeError,
		Permalink:        "https://trace.example.com/organizations/acme/issues/42/",
		LastSeen:         time.Unix(1700000000, 0),
	}

	t.Run("posts to the given channel", func(t *testing.T) {
		repo := memory.New()
		poster := newFakePoster()
		uc := newUseCases(repo, poster)

		if err := uc.Alerts.SendIssueAlert(ctx, "C777", slack.IssueAttachmentInput{Issue: issue}); err != nil {
			t.Fatalf("failed to send issue alert: %v", err)
		}

		msg := <-poster.posted
		if msg.channelID != "C777" {
			t.Errorf("expected channel C777, got %s", msg.channelID)
		}
		if msg.attachment.Footer != "BACKEND-1A" {
			t.Errorf("expected short ID footer, got %s", msg.attachment.Footer)
		}
	})

	t.Run("release check feeds the resolve action", func(t *testing.T) {
		repo := memory.New()
		poster := newFakePoster()
		uc := newUseCases(repo, poster)

		if err := uc.Issues.RecordRelease(ctx, "7", "1.0.0"); err != nil {
			t.Fatalf("failed to record release: %v", err)
		}
		if err := uc.Alerts.SendIssueAlert(ctx, "C777", slack.IssueAttachmentInput{Issue: issue}); err != nil {
			t.Fatalf("failed to send issue alert: %v", err)
		}

		msg := <-poster.posted
		if len(msg.attachment.Actions) == 0 || msg.attachment.Actions[0].Name != "resolve_dialog" {
			t.Errorf("expected a resolve dialog action, got %+v", msg.attachment.Actions)
		}
	})
}
