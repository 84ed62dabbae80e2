package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type notificationSettingDoc struct {
	Provider   string    `firestore:"provider"`
	Type       string    `firestore:"type"`
	ScopeType  string    `firestore:"scope_type"`
	ScopeID    string    `firestore:"scope_id"`
	TargetType string    `firestore:"target_type"`
	TargetID   string    `firestore:"target_id"`
	Value      string    `firestore:"value"`
	UpdatedAt  time.Time `firestore:"updated_at"`
}

type legacyOptionDoc struct {
	User         string `firestore:"user"`
	Project      string `firestore:"project"`
	Organization string `firestore:"organization"`
	Key          string `firestore:"key"`
	Value        int    `firestore:"value"`
}

type notificationSettingRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newNotificationSettingRepository(client *firestore.Client) *notificationSettingRepository {
	return &notificationSettingRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *notificationSettingRepository) settingsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_notification_settings"
	}
	return "notification_settings"
}

func (r *notificationSettingRepository) legacyCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_legacy_options"
	}
	return "legacy_options"
}

func settingDocID(provider types.Provider, settingType types.SettingType,
	scope types.Scope, target model.Target) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s:%s",
		provider, settingType, scope.Type, scope.Identifier, target.Type, target.Identifier)
}

func legacyDocID(user types.UserID, project types.ProjectID,
	org types.OrganizationID, key string) string {
	return fmt.Sprintf("%s:%s:%s:%s", user, project, org, key)
}

// legacyDocIDForSetting rebuilds the mirrored row's ID from the
// settings row coordinates. Team targets have no legacy mirror.
func legacyDocIDForSetting(scope types.Scope, target model.Target, key string) (string, bool) {
	if target.Type != model.TargetUser {
		return "", false
	}

	user := types.UserID(target.Identifier)
	switch scope.Type {
	case types.ScopeProject:
		return legacyDocID(user, types.ProjectID(scope.Identifier), "", key), true
	case types.ScopeOrganization:
		return legacyDocID(user, "", types.OrganizationID(scope.Identifier), key), true
	default:
		return legacyDocID(user, "", "", key), true
	}
}

func (r *notificationSettingRepository) Get(ctx context.Context, provider types.Provider,
	settingType types.SettingType, scope types.Scope, target model.Target) (types.SettingValue, error) {
	docRef := r.client.Collection(r.settingsCollection()).
		Doc(settingDocID(provider, settingType, scope, target))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.SettingValueDefault, nil
		}
		return "", goerr.Wrap(err, "failed to get notification setting",
			goerr.V("provider", provider), goerr.V("type", settingType))
	}

	var data notificationSettingDoc
	if err := doc.DataTo(&data); err != nil {
		return "", goerr.Wrap(err, "failed to decode notification setting")
	}

	return types.SettingValue(data.Value), nil
}

// Put writes the settings row and the mirrored legacy row in one
// transaction so a failure of either leaves both untouched.
func (r *notificationSettingRepository) Put(ctx context.Context,
	setting *model.NotificationSetting, legacy *model.LegacyOption) error {
	if setting == nil {
		return goerr.New("setting is nil")
	}

	settingRef := r.client.Collection(r.settingsCollection()).
		Doc(settingDocID(setting.Provider, setting.Type, setting.Scope, setting.Target))
	var legacyRef *firestore.DocumentRef
	if legacy != nil {
		legacyRef = r.client.Collection(r.legacyCollection()).
			Doc(legacyDocID(legacy.User, legacy.Project, legacy.Organization, legacy.Key))
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(settingRef, &notificationSettingDoc{
			Provider:   setting.Provider.String(),
			Type:       setting.Type.String(),
			ScopeType:  string(setting.Scope.Type),
			ScopeID:    setting.Scope.Identifier,
			TargetType: string(setting.Target.Type),
			TargetID:   setting.Target.Identifier,
			Value:      setting.Value.String(),
			UpdatedAt:  time.Now().UTC(),
		}); err != nil {
			return goerr.Wrap(err, "failed to set notification setting")
		}

		if legacyRef != nil {
			if err := tx.Set(legacyRef, &legacyOptionDoc{
				User:         legacy.User.String(),
				Project:      legacy.Project.String(),
				Organization: legacy.Organization.String(),
				Key:          legacy.Key,
				Value:        legacy.Value,
			}); err != nil {
				return goerr.Wrap(err, "failed to set legacy option")
			}
		}

		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put notification setting",
			goerr.V("provider", setting.Provider), goerr.V("type", setting.Type))
	}

	return nil
}

// Delete removes both rows in one transaction. Deleting documents
// that do not exist is not an error.
func (r *notificationSettingRepository) Delete(ctx context.Context, provider types.Provider,
	settingType types.SettingType, scope types.Scope, target model.Target, legacyKey string) error {
	settingRef := r.client.Collection(r.settingsCollection()).
		Doc(settingDocID(provider, settingType, scope, target))

	var legacyRef *firestore.DocumentRef
	if id, ok := legacyDocIDForSetting(scope, target, legacyKey); ok {
		legacyRef = r.client.Collection(r.legacyCollection()).Doc(id)
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Delete(settingRef); err != nil {
			return goerr.Wrap(err, "failed to delete notification setting")
		}
		if legacyRef != nil {
			if err := tx.Delete(legacyRef); err != nil {
				return goerr.Wrap(err, "failed to delete legacy option")
			}
		}
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to delete notification setting",
			goerr.V("provider", provider), goerr.V("type", settingType))
	}

	return nil
}
