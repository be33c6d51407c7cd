package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/access"
)

// Audience is the targeting rule on a broadcast message.
type Audience string

const (
	AudienceNetworkWide  Audience = "network_wide"
	AudienceCountry      Audience = "country"
	AudienceRegion       Audience = "region"
	AudienceOrganization Audience = "organization"
	AudienceRoleSpecific Audience = "role_specific"
)

// AdminMessage is a broadcast communication from a network admin. A message
// moves draft -> (optionally scheduled) -> sent -> partially read; SentAt,
// once set, is never cleared.
type AdminMessage struct {
	ID       string   `json:"id" gorm:"primaryKey"`
	Title    string   `json:"title"`
	Content  string   `json:"content" gorm:"type:text"`
	Audience Audience `json:"audience" gorm:"index"`

	TargetCountries     []string `json:"target_countries,omitempty" gorm:"serializer:json"`
	TargetRegions       []string `json:"target_regions,omitempty" gorm:"serializer:json"`
	TargetOrganizations []string `json:"target_organizations,omitempty" gorm:"serializer:json"`
	TargetRoles         []string `json:"target_roles,omitempty" gorm:"serializer:json"`

	DeliveryChannels []string `json:"delivery_channels,omitempty" gorm:"serializer:json"`

	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`

	CreatedAt    time.Time  `json:"created_at"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty" gorm:"index"`
	SentAt       *time.Time `json:"sent_at,omitempty" gorm:"index"`
}

func (m *AdminMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// Recipient is the attribute set a message is matched against.
type Recipient struct {
	UserID         string
	Role           access.Role
	Country        string
	Region         string
	OrganizationID string
}

// Matches reports whether the message's audience rule selects the recipient.
// A recipient missing the relevant attribute never matches; an organization
// broadcast cannot reach a user with no organization.
func (m AdminMessage) Matches(r Recipient) bool {
	switch m.Audience {
	case AudienceNetworkWide:
		return true
	case AudienceCountry:
		return r.Country != "" && containsString(m.TargetCountries, r.Country)
	case AudienceRegion:
		return r.Region != "" && containsString(m.TargetRegions, r.Region)
	case AudienceOrganization:
		return r.OrganizationID != "" && containsString(m.TargetOrganizations, r.OrganizationID)
	case AudienceRoleSpecific:
		return r.Role != "" && containsString(m.TargetRoles, string(r.Role))
	default:
		return false
	}
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// MessageReadReceipt marks a message as read by one user. The composite key
// makes the read set append-only and idempotent: re-reading is a no-op.
type MessageReadReceipt struct {
	MessageID string    `json:"message_id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"primaryKey"`
	ReadAt    time.Time `json:"read_at"`
}
