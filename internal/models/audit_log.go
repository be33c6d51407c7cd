package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditAction names a privileged operation worth recording.
type AuditAction string

const (
	ActionAdminRoleAssigned       AuditAction = "admin_role_assigned"
	ActionAdminRoleRevoked        AuditAction = "admin_role_revoked"
	ActionOrganizationUpdated     AuditAction = "organization_updated"
	ActionOrganizationSuspended   AuditAction = "organization_suspended"
	ActionOrganizationReactivated AuditAction = "organization_reactivated"
	ActionComplianceApproved      AuditAction = "compliance_approved"
	ActionUserSuspended           AuditAction = "user_suspended"
	ActionSettingsChanged         AuditAction = "settings_changed"
	ActionBroadcastSent           AuditAction = "broadcast_sent"
)

// CriticalAuditActions is the allow-list of actions surfaced on the critical
// activity view: role changes, suspensions, and settings changes.
func CriticalAuditActions() []AuditAction {
	return []AuditAction{
		ActionAdminRoleAssigned,
		ActionAdminRoleRevoked,
		ActionOrganizationSuspended,
		ActionUserSuspended,
		ActionSettingsChanged,
	}
}

// AuditLog records one privileged admin action. Entries are create-only:
// nothing in the codebase updates or deletes them, and CreatedAt is assigned
// by the store at insert time, never taken from the caller.
type AuditLog struct {
	ID       string      `json:"id" gorm:"primaryKey"`
	UserID   string      `json:"user_id" gorm:"index"`
	UserName string      `json:"user_name"`
	UserRole string      `json:"user_role"`
	Action   AuditAction `json:"action" gorm:"index"`

	TargetID   string `json:"target_id,omitempty" gorm:"index"`
	TargetType string `json:"target_type,omitempty"`
	TargetName string `json:"target_name,omitempty"`
	Metadata   string `json:"metadata,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
