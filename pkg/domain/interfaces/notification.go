package interfaces

import (
	"context"

	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
)

// NotificationSettingRepository persists notification preferences.
//
// Every write keeps two rows in lockstep: the settings row and the
// mirrored legacy key/value row. Implementations must apply both
// inside a single transactional unit; a failure of either rolls back
// the other.
type NotificationSettingRepository interface {
	// Get reads a setting. A missing row reads back as
	// types.SettingValueDefault, not an error.
	Get(ctx context.Context, provider types.Provider, settingType types.SettingType,
		scope types.Scope, target model.Target) (types.SettingValue, error)

	// Put upserts the settings row and the mirrored legacy row. A nil
	// legacy means the setting has no legacy mirror (team targets).
	Put(ctx context.Context, setting *model.NotificationSetting, legacy *model.LegacyOption) error

	// Delete removes the settings row and the mirrored legacy row.
	// Deleting a missing setting is not an error.
	Delete(ctx context.Context, provider types.Provider, settingType types.SettingType,
		scope types.Scope, target model.Target, legacyKey string) error
}
