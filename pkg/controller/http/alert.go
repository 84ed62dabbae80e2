package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
	"github.com/watchtower-lab/slackbridge/pkg/usecase"
	"github.com/watchtower-lab/slackbridge/pkg/utils/errutil"

	slacksvc "github.com/watchtower-lab/slackbridge/pkg/service/slack"
)

type incidentPayload struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	TitleLink string `json:"title_link"`
	LogoURL   string `json:"logo_url"`
	Status    string `json:"status"`
	StartedAt int64  `json:"started_at"`
}

func (x incidentPayload) toModel() *model.Incident {
	return &model.Incident{
		ID:        x.ID,
		Title:     x.Title,
		Text:      x.Text,
		TitleLink: x.TitleLink,
		LogoURL:   x.LogoURL,
		Status:    model.IncidentStatus(x.Status),
		StartedAt: time.Unix(x.StartedAt, 0).UTC(),
	}
}

// incidentAlertHandler accepts a metric-alert firing and hands
// delivery to the background. It answers before the message is sent.
func incidentAlertHandler(uc *usecase.AlertUseCase) http.HandlerFunc {
	type request struct {
		ChannelID   string          `json:"channel_id"`
		Incident    incidentPayload `json:"incident"`
		MetricValue string          `json:"metric_value"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode incident alert"), http.StatusBadRequest)
			return
		}
		if req.ChannelID == "" || req.Incident.ID == "" {
			errutil.HandleHTTP(ctx, w, goerr.New("channel_id and incident.id are required"), http.StatusBadRequest)
			return
		}

		action := &model.AlertRuleAction{TargetIdentifier: types.ChannelID(req.ChannelID)}
		uc.SendIncidentAlert(ctx, action, req.Incident.toModel(), req.MetricValue)

		w.WriteHeader(http.StatusAccepted)
	}
}

type eventPayload struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Type      string            `json:"type"`
	Level     string            `json:"level"`
	Metadata  map[string]string `json:"metadata"`
	Tags      []model.Tag       `json:"tags"`
	Timestamp int64             `json:"timestamp"`
}

func (x *eventPayload) toModel() *model.Event {
	if x == nil {
		return nil
	}
	return &model.Event{
		ID:        x.ID,
		Title:     x.Title,
		Type:      model.EventType(x.Type),
		Level:     x.Level,
		Metadata:  x.Metadata,
		Tags:      x.Tags,
		Timestamp: time.Unix(x.Timestamp, 0).UTC(),
	}
}

type issuePayload struct {
	ID               string            `json:"id"`
	ProjectID        string            `json:"project_id"`
	ProjectSlug      string            `json:"project_slug"`
	OrganizationSlug string            `json:"organization_slug"`
	Title            string            `json:"title"`
	QualifiedShortID string            `json:"qualified_short_id"`
	Status           string            `json:"status"`
	Type             string            `json:"type"`
	Metadata         map[string]string `json:"metadata"`
	Permalink        string            `json:"permalink"`
	LastSeen         int64             `json:"last_seen"`
	LatestEvent      *eventPayload     `json:"latest_event,omitempty"`
}

func (x issuePayload) toModel() *model.Issue {
	return &model.Issue{
		ID:               x.ID,
		ProjectID:        types.ProjectID(x.ProjectID),
		ProjectSlug:      x.ProjectSlug,
		OrganizationSlug: x.OrganizationSlug,
		Title:            x.Title,
		QualifiedShortID: x.QualifiedShortID,
		Status:           model.IssueStatus(x.Status),
		Type:             model.EventType(x.Type),
		Metadata:         x.Metadata,
		Permalink:        x.Permalink,
		LastSeen:         time.Unix(x.LastSeen, 0).UTC(),
		LatestEvent:      x.LatestEvent.toModel(),
	}
}

// issueAlertHandler posts an interactive issue message synchronously
func issueAlertHandler(uc *usecase.AlertUseCase) http.HandlerFunc {
	type request struct {
		ChannelID   string        `json:"channel_id"`
		Issue       issuePayload  `json:"issue"`
		Event       *eventPayload `json:"event,omitempty"`
		Tags        []string      `json:"tags,omitempty"`
		Rules       []model.Rule  `json:"rules,omitempty"`
		LinkToEvent bool          `json:"link_to_event,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode issue alert"), http.StatusBadRequest)
			return
		}
		if req.ChannelID == "" || req.Issue.ID == "" {
			errutil.HandleHTTP(ctx, w, goerr.New("channel_id and issue.id are required"), http.StatusBadRequest)
			return
		}

		err := uc.SendIssueAlert(ctx, types.ChannelID(req.ChannelID), slacksvc.IssueAttachmentInput{
			Issue:       req.Issue.toModel(),
			Event:       req.Event.toModel(),
			Tags:        req.Tags,
			Rules:       req.Rules,
			LinkToEvent: req.LinkToEvent,
		})
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// recordReleaseHandler stores a release version for a project
func recordReleaseHandler(uc *usecase.IssueUseCase) http.HandlerFunc {
	type request struct {
		ProjectID string `json:"project_id"`
		Version   string `json:"version"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode release"), http.StatusBadRequest)
			return
		}
		if req.ProjectID == "" || req.Version == "" {
			errutil.HandleHTTP(ctx, w, goerr.New("project_id and version are required"), http.StatusBadRequest)
			return
		}

		if err := uc.RecordRelease(ctx, types.ProjectID(req.ProjectID), req.Version); err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
	}
}
