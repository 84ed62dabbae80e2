package types

import "github.com/m-mizutani/goerr/v2"

// SettingType is a category of notification preference
type SettingType string

const (
	SettingIssueAlerts SettingType = "issue_alerts"
	SettingWorkflow    SettingType = "workflow"
	SettingDeploy      SettingType = "deploy"
)

// ErrInvalidSettingType is returned for types outside the known set
var ErrInvalidSettingType = goerr.New("invalid setting type")

func (x SettingType) Validate() error {
	switch x {
	case SettingIssueAlerts, SettingWorkflow, SettingDeploy:
		return nil
	default:
		return goerr.Wrap(ErrInvalidSettingType, "unknown setting type", goerr.V("type", x))
	}
}

func (x SettingType) String() string {
	return string(x)
}

// LegacyKey returns the key of the mirrored legacy user-option row for
// this setting type.
func (x SettingType) LegacyKey() string {
	switch x {
	case SettingIssueAlerts:
		return "mail:alert"
	case SettingWorkflow:
		return "workflow:notifications"
	case SettingDeploy:
		return "deploy-emails"
	default:
		return ""
	}
}

// SettingValue is the stored value of a notification preference.
// Default means "no explicit preference": it is never persisted and a
// missing row reads back as Default.
type SettingValue string

const (
	SettingValueDefault       SettingValue = "default"
	SettingValueNever         SettingValue = "never"
	SettingValueAlways        SettingValue = "always"
	SettingValueSubscribeOnly SettingValue = "subscribe_only" // workflow only
	SettingValueCommittedOnly SettingValue = "committed_only" // deploy only
)

func (x SettingValue) String() string {
	return string(x)
}

// legacyValues mirrors the integer encodings of the legacy user-option
// rows, per setting type.
var legacyValues = map[SettingType]map[SettingValue]int{
	SettingIssueAlerts: {
		SettingValueAlways: 1,
		SettingValueNever:  0,
	},
	SettingWorkflow: {
		SettingValueAlways:        0,
		SettingValueSubscribeOnly: 1,
		SettingValueNever:         2,
	},
	SettingDeploy: {
		SettingValueAlways:        2,
		SettingValueCommittedOnly: 3,
		SettingValueNever:         4,
	},
}

// LegacyValue returns the legacy integer encoding of value for the
// given setting type. ok is false when the value is not valid for the
// type.
func (x SettingType) LegacyValue(value SettingValue) (int, bool) {
	values, ok := legacyValues[x]
	if !ok {
		return 0, false
	}
	v, ok := values[value]
	return v, ok
}

// ValidValue reports whether value can be persisted for this setting
// type. Default is excluded: writing Default is a delete.
func (x SettingType) ValidValue(value SettingValue) bool {
	_, ok := x.LegacyValue(value)
	return ok
}
