package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
	"github.com/watchtower-lab/slackbridge/pkg/service/slack"
	"github.com/watchtower-lab/slackbridge/pkg/utils/async"
)

// AlertUseCase delivers alert messages to chat channels
type AlertUseCase struct {
	scheduler *slack.Scheduler
	poster    slack.Poster
	colors    slack.Colors
	issues    *IssueUseCase
}

func NewAlertUseCase(scheduler *slack.Scheduler, poster slack.Poster,
	colors slack.Colors, issues *IssueUseCase) *AlertUseCase {
	return &AlertUseCase{
		scheduler: scheduler,
		poster:    poster,
		colors:    colors,
		issues:    issues,
	}
}

// SendIncidentAlert delivers a metric-alert message without blocking
// the caller. Delivery runs in the background under a short timeout;
// a failure is logged, never surfaced to the triggering workflow.
func (x *AlertUseCase) SendIncidentAlert(ctx context.Context,
	action *model.AlertRuleAction, incident *model.Incident, metricValue string) {
	attachment := slack.BuildIncidentAttachment(x.colors, incident, metricValue)
	channelID := action.TargetIdentifier.String()
	timeout := x.scheduler.Timeouts().Post

	async.Dispatch(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := x.poster.PostAttachment(ctx, channelID, attachment); err != nil {
			return goerr.Wrap(err, "failed to post incident alert",
				goerr.V("channelID", channelID), goerr.V("incidentID", incident.ID))
		}
		return nil
	})
}

// SendIssueAlert posts an interactive issue message to a channel. The
// release check runs here so callers pass only what they know.
func (x *AlertUseCase) SendIssueAlert(ctx context.Context, channelID types.ChannelID,
	in slack.IssueAttachmentInput) error {
	if in.Issue == nil {
		return goerr.New("issue is nil")
	}

	hasReleases, err := x.issues.HasReleases(ctx, in.Issue.ProjectID)
	if err != nil {
		return err
	}
	in.HasReleases = hasReleases

	attachment := slack.BuildIssueAttachment(x.colors, in)
	if err := x.poster.PostAttachment(ctx, channelID.String(), attachment); err != nil {
		return goerr.Wrap(err, "failed to post issue alert",
			goerr.V("channelID", channelID), goerr.V("issueID", in.Issue.ID))
	}
	return nil
}
