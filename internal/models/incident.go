package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/access"
)

type IncidentSeverity string

const (
	IncidentSeverityLow      IncidentSeverity = "low"
	IncidentSeverityMedium   IncidentSeverity = "medium"
	IncidentSeverityHigh     IncidentSeverity = "high"
	IncidentSeverityCritical IncidentSeverity = "critical"
)

type IncidentStatus string

const (
	IncidentStatusOpen     IncidentStatus = "open"
	IncidentStatusResolved IncidentStatus = "resolved"
)

// Incident is a safeguarding or operational report raised against an
// organization. Country and Region are denormalized from the organization at
// creation time so scope checks need no join.
type Incident struct {
	ID             string           `json:"id" gorm:"primaryKey"`
	OrganizationID string           `json:"organization_id" gorm:"index"`
	Country        string           `json:"country" gorm:"index"`
	Region         string           `json:"region" gorm:"index"`
	Title          string           `json:"title"`
	Description    string           `json:"description" gorm:"type:text"`
	Severity       IncidentSeverity `json:"severity" gorm:"default:'medium'"`
	Status         IncidentStatus   `json:"status" gorm:"default:'open'"`
	ReportedBy     string           `json:"reported_by"`

	Notes []IncidentNote `json:"notes,omitempty" gorm:"foreignKey:IncidentID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Incident) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}

// Ref returns the shape used by incident visibility checks.
func (i Incident) Ref() access.IncidentRef {
	return access.IncidentRef{OrganizationID: i.OrganizationID, Country: i.Country, Region: i.Region}
}

// IncidentNote is a follow-up note on an incident. Notes are rows of their
// own rather than a list embedded in the incident record, so appending one is
// a single insert and concurrent appends cannot overwrite each other.
type IncidentNote struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	IncidentID string    `json:"incident_id" gorm:"index"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (n *IncidentNote) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}
