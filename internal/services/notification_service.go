package services

import (
	"errors"
	"fmt"

	"github.com/containrrr/shoutrrr"
	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/logger"
	"github.com/umojahub/umoja/backend/internal/models"
)

// NotificationService fans a sent broadcast out to its delivery channels.
// Delivery is fire-and-forget: failures are logged and never retried here.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// ListChannels returns all configured delivery channels.
func (s *NotificationService) ListChannels() ([]models.DeliveryChannel, error) {
	var channels []models.DeliveryChannel
	if err := s.DB.Order("name").Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

// SaveChannel creates or updates a delivery channel by name.
func (s *NotificationService) SaveChannel(ch *models.DeliveryChannel) error {
	var existing models.DeliveryChannel
	err := s.DB.Where("name = ?", ch.Name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.DB.Create(ch).Error
	}
	if err != nil {
		return err
	}
	existing.Type = ch.Type
	existing.URL = ch.URL
	existing.Enabled = ch.Enabled
	return s.DB.Save(&existing).Error
}

// DeleteChannel removes a delivery channel.
func (s *NotificationService) DeleteChannel(id string) error {
	return s.DB.Delete(&models.DeliveryChannel{}, "id = ?", id).Error
}

// Deliver sends the message through each named, enabled channel. Channel
// names the message references but that are missing or disabled are skipped.
func (s *NotificationService) Deliver(msg models.AdminMessage) {
	if len(msg.DeliveryChannels) == 0 {
		return
	}

	var channels []models.DeliveryChannel
	if err := s.DB.Where("enabled = ? AND name IN ?", true, msg.DeliveryChannels).Find(&channels).Error; err != nil {
		logger.Log().WithField("message_id", msg.ID).Errorf("fetch delivery channels: %v", err)
		return
	}

	body := fmt.Sprintf("%s\n\n%s", msg.Title, msg.Content)
	for _, ch := range channels {
		go func(ch models.DeliveryChannel) {
			if err := shoutrrr.Send(ch.URL, body); err != nil {
				logger.WithFields(map[string]interface{}{
					"message_id": msg.ID,
					"channel":    ch.Name,
				}).Errorf("deliver broadcast: %v", err)
			}
		}(ch)
	}
}
