package slack

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
)

// Colors is the static attachment color table. It is passed into the
// builders explicitly instead of living as package globals so deploys
// can restyle messages from configuration.
type Colors struct {
	Levels   map[string]string `toml:"levels"`
	Actioned string            `toml:"actioned"`
	Resolved string            `toml:"resolved"`
}

// DefaultColors returns the stock palette
func DefaultColors() Colors {
	return Colors{
		Levels: map[string]string{
			"debug":   "#fbe14f",
			"info":    "#2788ce",
			"warning": "#FFC227",
			"error":   "#E03E2F",
			"fatal":   "#FA4747",
		},
		Actioned: "#EDEEEF",
		Resolved: "#4dc771",
	}
}

func (x Colors) level(level string) string {
	if c, ok := x.Levels[level]; ok {
		return c
	}
	return x.Levels["error"]
}

// IssueAttachmentInput collects everything an issue attachment is
// rendered from. The builder itself performs no I/O.
type IssueAttachmentInput struct {
	Issue *model.Issue
	Event *model.Event

	// Tags selects which event tag keys become display fields
	Tags []string

	// ActionLog holds rendered texts of actions already taken on the
	// issue; a non-empty log switches the attachment to its actioned
	// form (neutral color, no interactive actions).
	ActionLog []string

	Rules       []model.Rule
	HasReleases bool
	Members     []model.ActorOption
	Teams       []model.ActorOption
	LinkToEvent bool
}

// BuildIssueAttachment renders the message attachment for an issue
// alert.
func BuildIssueAttachment(colors Colors, in IssueAttachmentInput) model.Attachment {
	issue := in.Issue

	title, titleSubject := attachmentTitle(issue, in.Event)
	text := attachmentText(issue, in.Event)

	// Use the tags of the latest event when no event is given
	eventForTags := in.Event
	if eventForTags == nil {
		eventForTags = issue.LatestEvent
	}

	color := colors.level("error")
	if eventForTags != nil {
		color = colors.level(eventForTags.TagValue("level"))
	}

	var fields []model.AttachmentField
	if len(in.Tags) > 0 && eventForTags != nil {
		wanted := make(map[string]bool, len(in.Tags))
		for _, key := range in.Tags {
			wanted[key] = true
		}
		for _, tag := range eventForTags.Tags {
			if !wanted[tag.Key] {
				continue
			}
			fields = append(fields, model.AttachmentField{
				Title: tag.Key,
				Value: tag.Value,
				Short: true,
			})
		}
	}

	actions := issueActions(issue, in.HasReleases, in.Members, in.Teams)

	if len(in.ActionLog) > 0 {
		text += "\n" + strings.Join(in.ActionLog, "\n")
		color = colors.Actioned
		actions = nil
	}

	ts := issue.LastSeen
	if in.Event != nil && in.Event.Timestamp.After(ts) {
		ts = in.Event.Timestamp
	}

	footer := issue.QualifiedShortID
	if len(in.Rules) > 0 {
		footer += fmt.Sprintf(" via <%s|%s>", in.Rules[0].URL, in.Rules[0].Label)
		if len(in.Rules) > 1 {
			footer += fmt.Sprintf(" (+%d other)", len(in.Rules)-1)
		}
	}

	titleLink := issue.Permalink + "?referrer=slack"
	if in.LinkToEvent && in.Event != nil {
		titleLink = issue.Permalink + "events/" + in.Event.ID + "/?referrer=slack"
	}

	callbackID, _ := json.Marshal(map[string]string{"issue": issue.ID})

	return model.Attachment{
		Fallback:   fmt.Sprintf("[%s] %s", issue.ProjectSlug, titleSubject),
		Title:      title,
		TitleLink:  titleLink,
		Text:       text,
		Color:      color,
		CallbackID: string(callbackID),
		Footer:     footer,
		Timestamp:  ts.Unix(),
		MarkdownIn: []string{"text"},
		Fields:     fields,
		Actions:    actions,
	}
}

// attachmentTitle picks the headline of the attachment and the subject
// used in the fallback text.
func attachmentTitle(issue *model.Issue, event *model.Event) (title, subject string) {
	evType := issue.Type
	metadata := issue.Metadata
	subject = issue.Title
	if event != nil {
		evType = event.Type
		metadata = event.Metadata
		subject = event.Title
	}

	switch {
	case evType == model.EventTypeError && metadata["type"] != "":
		return metadata["type"], subject
	case evType == model.EventTypeCSP:
		return fmt.Sprintf("%s - %s", metadata["directive"], metadata["uri"]), subject
	default:
		return subject, subject
	}
}

func attachmentText(issue *model.Issue, event *model.Event) string {
	evType := issue.Type
	metadata := issue.Metadata
	if event != nil {
		evType = event.Type
		metadata = event.Metadata
	}

	if evType != model.EventTypeError {
		return ""
	}
	if v := metadata["value"]; v != "" {
		return v
	}
	return metadata["function"]
}

func issueActions(issue *model.Issue, hasReleases bool, members, teams []model.ActorOption) []model.AttachmentAction {
	resolve := model.AttachmentAction{
		Name:  "resolve_dialog",
		Text:  "Resolve...",
		Type:  "button",
		Value: "resolve_dialog",
	}
	// Without releases there is nothing to resolve "in the next
	// release", so the dialog collapses to a plain button.
	if !hasReleases {
		resolve = model.AttachmentAction{Name: "status", Text: "Resolve", Type: "button", Value: "resolved"}
	}
	if issue.Status == model.IssueResolved {
		resolve = model.AttachmentAction{Name: "status", Text: "Unresolve", Type: "button", Value: "unresolved"}
	}

	ignore := model.AttachmentAction{Name: "status", Text: "Ignore", Type: "button", Value: "ignored"}
	if issue.Status == model.IssueIgnored {
		ignore = model.AttachmentAction{Name: "status", Text: "Stop Ignoring", Type: "button", Value: "unresolved"}
	}

	var groups []model.ActionOptionGroup
	if len(teams) > 0 {
		groups = append(groups, model.ActionOptionGroup{Text: "Teams", Options: teams})
	}
	if len(members) > 0 {
		groups = append(groups, model.ActionOptionGroup{Text: "People", Options: members})
	}

	assign := model.AttachmentAction{
		Name:         "assign",
		Text:         "Select Assignee...",
		Type:         "select",
		OptionGroups: groups,
	}
	if issue.Assignee != nil {
		assign.SelectedOptions = []model.ActorOption{*issue.Assignee}
	}

	return []model.AttachmentAction{resolve, ignore, assign}
}

// BuildIncidentAttachment renders the message attachment for a
// metric-alert incident. metricValue is the value that fired the
// alert, already formatted by the caller.
func BuildIncidentAttachment(colors Colors, incident *model.Incident, metricValue string) model.Attachment {
	statusColors := map[model.IncidentStatus]string{
		model.IncidentResolved: colors.Resolved,
		model.IncidentWarning:  colors.level("warning"),
		model.IncidentCritical: colors.level("fatal"),
	}

	text := incident.Text
	if metricValue != "" {
		text = fmt.Sprintf("%s: %s", incident.Text, metricValue)
	}

	footer := fmt.Sprintf("<!date^%d^Incident - Started {date_pretty} at {time} | Incident>",
		incident.StartedAt.Unix())

	return model.Attachment{
		Fallback:   incident.Title,
		Title:      incident.Title,
		TitleLink:  incident.TitleLink,
		Text:       text,
		Color:      statusColors[incident.Status],
		Footer:     footer,
		FooterIcon: incident.LogoURL,
		MarkdownIn: []string{"text"},
	}
}
