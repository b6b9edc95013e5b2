package model

import (
	"time"

	"github.com/incidentline/authcore/internal/constants"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AccessToken is the single capability-token table shared by secure form
// links and temporary admin access tokens, distinguished by FormType. Only
// the SHA-256 hash of the raw token is ever stored; the raw value leaves the
// server exactly once, in the creation response.
//
// Temporary admin access tokens (FormType == temporary_admin_access) are
// single use: redemption revokes them atomically. Secure form links stay
// valid until they expire or are explicitly revoked.
type AccessToken struct {
	gorm.Model
	TokenHash         string         `gorm:"column:token_hash;size:64;uniqueIndex;not null"`
	FormType          string         `gorm:"column:form_type;not null;index"`
	IncidentID        *uint          `gorm:"column:incident_id;index"`
	FormRecordID      *uint          `gorm:"column:form_record_id"`
	RecipientName     string         `gorm:"column:recipient_name"`
	RecipientContact  string         `gorm:"column:recipient_contact"`
	DeliveryMethod    string         `gorm:"column:delivery_method"`
	RequireAccessCode bool           `gorm:"column:require_access_code;not null;default:false"`
	AccessCodeHash    string         `gorm:"column:access_code_hash"`
	Payload           datatypes.JSON `gorm:"column:payload"`
	ExpiresAt         time.Time      `gorm:"column:expires_at;not null;index"`
	RevokedAt         *time.Time     `gorm:"column:revoked_at"`
	CreatedByID       *uint          `gorm:"column:created_by_id"`
}

func (AccessToken) TableName() string {
	return "access_tokens"
}

// IsTemporaryAccess reports whether this token is the reserved mobile-to-web
// admin handoff variant.
func (t *AccessToken) IsTemporaryAccess() bool {
	return t.FormType == constants.FormTypeTemporaryAdminAccess
}

// Expired evaluates expiry against the supplied clock; callers compute it
// fresh on every check rather than caching the result.
func (t *AccessToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// Revoked reports whether the token has been invalidated by action.
func (t *AccessToken) Revoked() bool {
	return t.RevokedAt != nil
}
