package types_test

import (
	"testing"

	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
)

func TestSettingType_Validate(t *testing.T) {
	tests := []struct {
		name    string
		st      types.SettingType
		wantErr bool
	}{
		{"issue alerts", types.SettingIssueAlerts, false},
		{"workflow", types.SettingWorkflow, false},
		{"deploy", types.SettingDeploy, false},
		{"empty", "", true},
		{"unknown", "quota", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.st.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("SettingType.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettingType_LegacyValue(t *testing.T) {
	tests := []struct {
		name  string
		st    types.SettingType
		value types.SettingValue
		want  int
		ok    bool
	}{
		{"issue alerts always", types.SettingIssueAlerts, types.SettingValueAlways, 1, true},
		{"issue alerts never", types.SettingIssueAlerts, types.SettingValueNever, 0, true},
		{"workflow subscribe only", types.SettingWorkflow, types.SettingValueSubscribeOnly, 1, true},
		{"deploy committed only", types.SettingDeploy, types.SettingValueCommittedOnly, 3, true},
		{"deploy never", types.SettingDeploy, types.SettingValueNever, 4, true},
		{"default never persisted", types.SettingIssueAlerts, types.SettingValueDefault, 0, false},
		{"committed only invalid for workflow", types.SettingWorkflow, types.SettingValueCommittedOnly, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.st.LegacyValue(tt.value)
			if ok != tt.ok {
				t.Fatalf("LegacyValue() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("LegacyValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSettingType_LegacyKey(t *testing.T) {
	tests := []struct {
		st   types.SettingType
		want string
	}{
		{types.SettingIssueAlerts, "mail:alert"},
		{types.SettingWorkflow, "workflow:notifications"},
		{types.SettingDeploy, "deploy-emails"},
	}

	for _, tt := range tests {
		t.Run(tt.st.String(), func(t *testing.T) {
			if got := tt.st.LegacyKey(); got != tt.want {
				t.Errorf("LegacyKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProvider_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       types.Provider
		wantErr bool
	}{
		{"slack", types.ProviderSlack, false},
		{"email", types.ProviderEmail, false},
		{"empty", "", true},
		{"unknown", "msteams", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Provider.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScopeType_Validate(t *testing.T) {
	tests := []struct {
		name    string
		s       types.ScopeType
		wantErr bool
	}{
		{"user", types.ScopeUser, false},
		{"organization", types.ScopeOrganization, false},
		{"project", types.ScopeProject, false},
		{"team is not a scope", "team", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("ScopeType.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
