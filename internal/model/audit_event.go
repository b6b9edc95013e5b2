package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEvent records security-relevant actions. Audit writes are best
// effort: a failed insert is logged and swallowed, never surfacing into the
// outcome of the operation being audited.
type AuditEvent struct {
	gorm.Model
	UserID   *uint          `gorm:"column:user_id;index"`
	Action   string         `gorm:"column:action;not null;index"`
	ClientIP string         `gorm:"column:client_ip"`
	Detail   datatypes.JSON `gorm:"column:detail"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
