package usecase

import (
	"github.com/watchtower-lab/slackbridge/pkg/domain/interfaces"
	"github.com/watchtower-lab/slackbridge/pkg/service/slack"
)

type UseCases struct {
	repo   interfaces.Repository
	colors slack.Colors

	Channels      *ChannelUseCase
	Notifications *NotificationUseCase
	Issues        *IssueUseCase
	Alerts        *AlertUseCase
}

type Option func(*UseCases)

func WithColors(colors slack.Colors) Option {
	return func(uc *UseCases) {
		uc.colors = colors
	}
}

func New(repo interfaces.Repository, scheduler *slack.Scheduler, poster slack.Poster, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		colors: slack.DefaultColors(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Channels = NewChannelUseCase(repo, scheduler)
	uc.Notifications = NewNotificationUseCase(repo)
	uc.Issues = NewIssueUseCase(repo)
	uc.Alerts = NewAlertUseCase(scheduler, poster, uc.colors, uc.Issues)

	return uc
}
