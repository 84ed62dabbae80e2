package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
)

type settingKey struct {
	provider   types.Provider
	setting    types.SettingType
	scopeType  types.ScopeType
	scopeID    string
	targetType model.TargetType
	targetID   string
}

type legacyKey struct {
	user    types.UserID
	project types.ProjectID
	org     types.OrganizationID
	key     string
}

func newSettingKey(provider types.Provider, settingType types.SettingType,
	scope types.Scope, target model.Target) settingKey {
	return settingKey{
		provider:   provider,
		setting:    settingType,
		scopeType:  scope.Type,
		scopeID:    scope.Identifier,
		targetType: target.Type,
		targetID:   target.Identifier,
	}
}

// notificationSettingRepository holds the settings rows and their
// mirrored legacy rows under one mutex, so each write lands in both
// maps or neither.
type notificationSettingRepository struct {
	mu       sync.RWMutex
	settings map[settingKey]*model.NotificationSetting
	legacy   map[legacyKey]*model.LegacyOption
}

func newNotificationSettingRepository() *notificationSettingRepository {
	return &notificationSettingRepository{
		settings: make(map[settingKey]*model.NotificationSetting),
		legacy:   make(map[legacyKey]*model.LegacyOption),
	}
}

func (r *notificationSettingRepository) Get(ctx context.Context, provider types.Provider,
	settingType types.SettingType, scope types.Scope, target model.Target) (types.SettingValue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	setting, exists := r.settings[newSettingKey(provider, settingType, scope, target)]
	if !exists {
		return types.SettingValueDefault, nil
	}
	return setting.Value, nil
}

func (r *notificationSettingRepository) Put(ctx context.Context,
	setting *model.NotificationSetting, legacy *model.LegacyOption) error {
	if setting == nil {
		return goerr.New("setting is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *setting
	stored.UpdatedAt = time.Now().UTC()
	r.settings[newSettingKey(setting.Provider, setting.Type, setting.Scope, setting.Target)] = &stored

	if legacy != nil {
		mirrored := *legacy
		r.legacy[legacyKey{
			user:    legacy.User,
			project: legacy.Project,
			org:     legacy.Organization,
			key:     legacy.Key,
		}] = &mirrored
	}

	return nil
}

func (r *notificationSettingRepository) Delete(ctx context.Context, provider types.Provider,
	settingType types.SettingType, scope types.Scope, target model.Target, legacyKeyName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := newSettingKey(provider, settingType, scope, target)
	setting, exists := r.settings[key]
	delete(r.settings, key)
	if !exists {
		return nil
	}

	for lk := range r.legacy {
		if lk.key == legacyKeyName && lk.scopeMatches(setting.Scope, setting.Target) {
			delete(r.legacy, lk)
		}
	}
	return nil
}

// scopeMatches reports whether a legacy row belongs to the scope and
// target of the settings row being deleted.
func (k legacyKey) scopeMatches(scope types.Scope, target model.Target) bool {
	switch scope.Type {
	case types.ScopeProject:
		return k.project.String() == scope.Identifier && k.user.String() == target.Identifier
	case types.ScopeOrganization:
		return k.org.String() == scope.Identifier && k.user.String() == target.Identifier
	default:
		return k.user.String() == scope.Identifier && k.project == "" && k.org == ""
	}
}

// LegacyOption reads a mirrored legacy row. Tests use this to check
// that the two maps stay in lockstep.
func (m *Memory) LegacyOption(user types.UserID, project types.ProjectID,
	org types.OrganizationID, key string) (*model.LegacyOption, error) {
	r := m.notifications
	r.mu.RLock()
	defer r.mu.RUnlock()

	opt, exists := r.legacy[legacyKey{user: user, project: project, org: org, key: key}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "legacy option not found", goerr.V("key", key))
	}
	copied := *opt
	return &copied, nil
}
