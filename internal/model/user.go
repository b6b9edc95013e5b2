package model

import (
	"gorm.io/gorm"
)

// User carries identity plus two authority layers: the legacy free-form Role
// string and the newer SystemRole. Every role check goes through
// EffectiveSystemRole so the fallback between the two is computed in exactly
// one place.
type User struct {
	gorm.Model
	Name         string `gorm:"column:name;not null"`
	Email        string `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash"` // empty means the account cannot log in
	Role         string `gorm:"column:role"`          // legacy role string, retained for compatibility
	SystemRole   string `gorm:"column:system_role"`
	Avatar       string `gorm:"column:avatar"`
}

// ClientRoleAssignment scopes a user's authority to one client organization.
// At most one assignment exists per (user, client) pair; re-assigning
// replaces the previous company role.
type ClientRoleAssignment struct {
	gorm.Model
	UserID       uint   `gorm:"column:user_id;not null;uniqueIndex:idx_client_roles_user_client"`
	ClientID     uint   `gorm:"column:client_id;not null;uniqueIndex:idx_client_roles_user_client"`
	CompanyRole  string `gorm:"column:company_role;not null"`
	AssignedByID *uint  `gorm:"column:assigned_by_id"`
}

func (ClientRoleAssignment) TableName() string {
	return "client_role_assignments"
}
