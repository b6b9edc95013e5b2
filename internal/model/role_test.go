package model

import (
	"testing"

	"github.com/incidentline/authcore/internal/constants"
)

func TestEffectiveSystemRole(t *testing.T) {
	tests := []struct {
		name       string
		legacyRole string
		systemRole string
		want       string
	}{
		{"explicit admin wins", "member", "global_admin", constants.SystemRoleGlobalAdmin},
		{"explicit standard wins over legacy admin", "global_admin", "standard", constants.SystemRoleStandard},
		{"legacy admin fallback", "global_admin", "", constants.SystemRoleGlobalAdmin},
		{"legacy non-admin falls to standard", "member", "", constants.SystemRoleStandard},
		{"both empty", "", "", constants.SystemRoleStandard},
		{"unknown system role coerced to standard", "", "auditor", constants.SystemRoleStandard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveSystemRole(tt.legacyRole, tt.systemRole); got != tt.want {
				t.Errorf("EffectiveSystemRole(%q, %q) = %q, want %q", tt.legacyRole, tt.systemRole, got, tt.want)
			}
		})
	}
}

func TestUserEffectiveRole(t *testing.T) {
	u := &User{Role: "global_admin"}
	if got := u.EffectiveRole(); got != constants.SystemRoleGlobalAdmin {
		t.Errorf("EffectiveRole() = %q, want global_admin", got)
	}
}
