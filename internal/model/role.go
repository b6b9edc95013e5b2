package model

import "github.com/incidentline/authcore/internal/constants"

// EffectiveSystemRole computes a user's system role from the stored columns.
// The rule: system_role wins when set; otherwise a legacy role of
// "global_admin" still grants global admin; everything else is standard.
// Every call site (login, token read, authorization resolver) must use this
// function rather than re-deriving the fallback.
func EffectiveSystemRole(legacyRole, systemRole string) string {
	if systemRole == constants.SystemRoleGlobalAdmin || systemRole == constants.SystemRoleStandard {
		return systemRole
	}
	if legacyRole == constants.SystemRoleGlobalAdmin {
		return constants.SystemRoleGlobalAdmin
	}
	return constants.SystemRoleStandard
}

// EffectiveRole is a convenience wrapper over the stored user columns.
func (u *User) EffectiveRole() string {
	return EffectiveSystemRole(u.Role, u.SystemRole)
}
