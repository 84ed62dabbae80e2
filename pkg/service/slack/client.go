package slack

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"golang.org/x/time/rate"
)

// Client talks to the Slack Web API. It implements ListClient and
// Poster. All remote calls go through a shared rate limiter sized for
// the Tier-2 method budget; the limiter never retries, it only spaces
// requests out.
type Client struct {
	api     *slack.Client
	limiter *rate.Limiter
}

var (
	_ ListClient = &Client{}
	_ Poster     = &Client{}
)

// Option is a functional option for Client configuration
type Option func(*Client)

// WithRateLimit overrides the request rate limit
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// New creates a Slack client with the provided bot token
func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	c := &Client{
		api:     slack.New(token),
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Pages returns a pager over the given list type
func (c *Client) Pages(listType ListType) Pager {
	switch listType {
	case ListTypeUsers:
		return &usersPager{
			client: c,
			page:   c.api.GetUsersPaginated(slack.GetUsersOptionLimit(pageSize)),
		}
	default:
		return &conversationsPager{client: c}
	}
}

// conversationsPager walks conversations.list with an explicit cursor
type conversationsPager struct {
	client *Client
	cursor string
	done   bool
}

func (x *conversationsPager) Next(ctx context.Context) (*Page, error) {
	if x.done {
		return nil, nil
	}

	if err := x.client.limiter.Wait(ctx); err != nil {
		return nil, goerr.Wrap(err, "rate limiter interrupted")
	}

	params := &slack.GetConversationsParameters{
		Types:           []string{"public_channel", "private_channel"},
		ExcludeArchived: false,
		Limit:           pageSize,
		Cursor:          x.cursor,
	}

	convs, nextCursor, err := x.client.api.GetConversationsContext(ctx, params)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list conversations")
	}

	entries := make([]Entry, 0, len(convs))
	for _, conv := range convs {
		entries = append(entries, Entry{ID: conv.ID, Name: conv.Name})
	}

	if nextCursor == "" {
		x.done = true
	} else {
		x.cursor = nextCursor
	}

	return &Page{Entries: entries}, nil
}

// usersPager steps the users.list pagination one page per Next
type usersPager struct {
	client *Client
	page   slack.UserPagination
}

func (x *usersPager) Next(ctx context.Context) (*Page, error) {
	if err := x.client.limiter.Wait(ctx); err != nil {
		return nil, goerr.Wrap(err, "rate limiter interrupted")
	}

	next, err := x.page.Next(ctx)
	if next.Done(err) {
		return nil, nil
	}
	if failure := next.Failure(err); failure != nil {
		return nil, goerr.Wrap(failure, "failed to list users")
	}
	x.page = next

	entries := make([]Entry, 0, len(next.Users))
	for _, u := range next.Users {
		entries = append(entries, Entry{
			ID:          u.ID,
			Name:        u.Name,
			DisplayName: u.Profile.DisplayName,
		})
	}

	return &Page{Entries: entries}, nil
}

// PostAttachment posts a legacy attachment message to a channel
func (c *Client) PostAttachment(ctx context.Context, channelID string, attachment model.Attachment) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return goerr.Wrap(err, "rate limiter interrupted")
	}

	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(attachment.Fallback, false),
		slack.MsgOptionAttachments(toSlackAttachment(attachment)),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post message", goerr.V("channel_id", channelID))
	}

	return nil
}

func toSlackAttachment(a model.Attachment) slack.Attachment {
	out := slack.Attachment{
		Fallback:   a.Fallback,
		Title:      a.Title,
		TitleLink:  a.TitleLink,
		Text:       a.Text,
		Color:      a.Color,
		CallbackID: a.CallbackID,
		Footer:     a.Footer,
		FooterIcon: a.FooterIcon,
		MarkdownIn: a.MarkdownIn,
	}

	if a.Timestamp != 0 {
		out.Ts = json.Number(strconv.FormatInt(a.Timestamp, 10))
	}

	for _, f := range a.Fields {
		out.Fields = append(out.Fields, slack.AttachmentField{
			Title: f.Title,
			Value: f.Value,
			Short: f.Short,
		})
	}

	for _, act := range a.Actions {
		sa := slack.AttachmentAction{
			Name:  act.Name,
			Text:  act.Text,
			Value: act.Value,
		}
		if act.Type == "select" {
			sa.Type = "select"
		} else {
			sa.Type = "button"
		}
		for _, opt := range act.SelectedOptions {
			sa.SelectedOptions = append(sa.SelectedOptions, slack.AttachmentActionOption{
				Text:  opt.Text,
				Value: opt.Value,
			})
		}
		for _, grp := range act.OptionGroups {
			group := slack.AttachmentActionOptionGroup{Text: grp.Text}
			for _, opt := range grp.Options {
				group.Options = append(group.Options, slack.AttachmentActionOption{
					Text:  opt.Text,
					Value: opt.Value,
				})
			}
			sa.OptionGroups = append(sa.OptionGroups, group)
		}
		out.Actions = append(out.Actions, sa)
	}

	return out
}
