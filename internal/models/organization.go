package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/access"
)

type OrganizationStatus string

const (
	OrganizationStatusActive    OrganizationStatus = "active"
	OrganizationStatusSuspended OrganizationStatus = "suspended"
)

// Organization is a member org of the network. Each organization belongs to
// exactly one region and country, which is what scope containment relies on.
type Organization struct {
	ID      string             `json:"id" gorm:"primaryKey"`
	Name    string             `json:"name"`
	Country string             `json:"country" gorm:"index"`
	Region  string             `json:"region" gorm:"index"`
	Status  OrganizationStatus `json:"status" gorm:"default:'active'"`

	ContactEmail string `json:"contact_email,omitempty"`
	MemberCount  int    `json:"member_count"`

	ComplianceApproved   bool       `json:"compliance_approved"`
	ComplianceApprovedBy string     `json:"compliance_approved_by,omitempty"`
	ComplianceApprovedAt *time.Time `json:"compliance_approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

// Ref returns the minimal shape used by containment checks.
func (o Organization) Ref() access.OrganizationRef {
	return access.OrganizationRef{ID: o.ID, Country: o.Country, Region: o.Region}
}
