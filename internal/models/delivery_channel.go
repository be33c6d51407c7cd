package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryChannel is an outbound destination for sent broadcasts (email
// gateway, chat webhook, SMS bridge). URL is a shoutrrr-style service URL.
type DeliveryChannel struct {
	ID      string `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"uniqueIndex"`
	Type    string `json:"type"` // e.g. "smtp", "discord", "webhook"
	URL     string `json:"url"`
	Enabled bool   `json:"enabled" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *DeliveryChannel) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return
}
