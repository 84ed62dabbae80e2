package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/interfaces"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
)

// subscribeByDefaultKey is the historical key that issue-alert
// settings outside a project scope are mirrored to.
const subscribeByDefaultKey = "subscribe_by_default"

// NotificationUseCase manages stored notification preferences
type NotificationUseCase struct {
	repo interfaces.Repository
}

func NewNotificationUseCase(repo interfaces.Repository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// Get reads a preference. A preference that was never written reads
// back as the default value.
func (x *NotificationUseCase) Get(ctx context.Context, provider types.Provider,
	settingType types.SettingType, selector model.TargetSelector) (types.SettingValue, error) {
	if err := provider.Validate(); err != nil {
		return "", err
	}
	if err := settingType.Validate(); err != nil {
		return "", err
	}

	target, scope, err := selector.Resolve()
	if err != nil {
		return "", err
	}

	value, err := x.repo.NotificationSettings().Get(ctx, provider, settingType, scope, target)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read notification setting",
			goerr.V("provider", provider), goerr.V("type", settingType))
	}
	return value, nil
}

// Update stores a preference together with its legacy mirror. Writing
// the default value removes the stored row instead; default is the
// absence of an override, not a value of its own.
func (x *NotificationUseCase) Update(ctx context.Context, provider types.Provider,
	settingType types.SettingType, selector model.TargetSelector, value types.SettingValue) error {
	if err := provider.Validate(); err != nil {
		return err
	}
	if err := settingType.Validate(); err != nil {
		return err
	}

	if value == types.SettingValueDefault {
		return x.Remove(ctx, provider, settingType, selector)
	}
	if !settingType.ValidValue(value) {
		return goerr.Wrap(ErrInvalidSettingValue, "unsupported value",
			goerr.V("type", settingType), goerr.V("value", value))
	}

	target, scope, err := selector.Resolve()
	if err != nil {
		return err
	}

	setting := &model.NotificationSetting{
		Provider: provider,
		Type:     settingType,
		Scope:    scope,
		Target:   target,
		Value:    value,
	}

	legacy, err := legacyOptionFor(settingType, scope, target, value)
	if err != nil {
		return err
	}

	if err := x.repo.NotificationSettings().Put(ctx, setting, legacy); err != nil {
		return goerr.Wrap(err, "failed to store notification setting",
			goerr.V("provider", provider), goerr.V("type", settingType))
	}
	return nil
}

// Remove deletes a stored preference and its legacy mirror. Removing
// a preference that does not exist is not an error.
func (x *NotificationUseCase) Remove(ctx context.Context, provider types.Provider,
	settingType types.SettingType, selector model.TargetSelector) error {
	if err := provider.Validate(); err != nil {
		return err
	}
	if err := settingType.Validate(); err != nil {
		return err
	}

	target, scope, err := selector.Resolve()
	if err != nil {
		return err
	}

	if err := x.repo.NotificationSettings().Delete(ctx, provider, settingType, scope, target,
		legacyKeyFor(settingType, scope)); err != nil {
		return goerr.Wrap(err, "failed to remove notification setting",
			goerr.V("provider", provider), goerr.V("type", settingType))
	}
	return nil
}

func legacyKeyFor(settingType types.SettingType, scope types.Scope) string {
	if settingType == types.SettingIssueAlerts && scope.Type != types.ScopeProject {
		return subscribeByDefaultKey
	}
	return settingType.LegacyKey()
}

// legacyOptionFor builds the mirrored legacy row. Only user targets
// carry a mirror; team settings return nil.
func legacyOptionFor(settingType types.SettingType, scope types.Scope,
	target model.Target, value types.SettingValue) (*model.LegacyOption, error) {
	if target.Type != model.TargetUser {
		return nil, nil
	}

	legacyValue, ok := settingType.LegacyValue(value)
	if !ok {
		return nil, goerr.Wrap(ErrInvalidSettingValue, "value has no legacy mapping",
			goerr.V("type", settingType), goerr.V("value", value))
	}

	opt := &model.LegacyOption{
		User:  types.UserID(target.Identifier),
		Key:   legacyKeyFor(settingType, scope),
		Value: legacyValue,
	}
	switch scope.Type {
	case types.ScopeProject:
		opt.Project = types.ProjectID(scope.Identifier)
	case types.ScopeOrganization:
		opt.Organization = types.OrganizationID(scope.Identifier)
	}
	return opt, nil
}
