package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/logger"
	"github.com/umojahub/umoja/backend/internal/metrics"
	"github.com/umojahub/umoja/backend/internal/models"
	"github.com/umojahub/umoja/backend/internal/query"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrUnknownAudience = errors.New("unknown audience")
)

type MessageService struct {
	db       *gorm.DB
	notifier *NotificationService
	audit    *AuditService
}

func NewMessageService(db *gorm.DB, notifier *NotificationService, audit *AuditService) *MessageService {
	return &MessageService{db: db, notifier: notifier, audit: audit}
}

// Send stores the message and either dispatches it immediately or leaves it
// for the scheduler when ScheduledFor is in the future. The caller is
// expected to have gated the audience with the permission evaluator.
func (s *MessageService) Send(msg *models.AdminMessage, sender access.AdminContext) error {
	switch msg.Audience {
	case models.AudienceNetworkWide, models.AudienceCountry, models.AudienceRegion,
		models.AudienceOrganization, models.AudienceRoleSpecific:
	default:
		return ErrUnknownAudience
	}

	msg.SenderID = sender.UserID
	msg.SenderName = sender.UserName

	now := time.Now()
	scheduled := msg.ScheduledFor != nil && msg.ScheduledFor.After(now)
	if !scheduled {
		msg.SentAt = &now
	}

	if err := s.db.Create(msg).Error; err != nil {
		return err
	}

	if !scheduled {
		s.notifier.Deliver(*msg)
		metrics.IncBroadcastDispatched()
		if err := s.audit.LogContextAction(sender, models.ActionBroadcastSent, &AuditTarget{
			ID: msg.ID, Type: "admin_message", Name: msg.Title,
		}); err != nil {
			logger.Log().WithField("message_id", msg.ID).Errorf("audit broadcast: %v", err)
		}
	}
	return nil
}

// MessagesForRecipient returns the sent messages whose audience rule selects
// the recipient, newest first.
func (s *MessageService) MessagesForRecipient(r models.Recipient) ([]models.AdminMessage, error) {
	var sent []models.AdminMessage
	if err := s.db.Where("sent_at IS NOT NULL").Order("sent_at desc").Find(&sent).Error; err != nil {
		return nil, err
	}

	matched := make([]models.AdminMessage, 0, len(sent))
	for _, msg := range sent {
		if msg.Matches(r) {
			matched = append(matched, msg)
		}
	}
	return matched, nil
}

// UnreadMessagesForRecipient returns matched messages the recipient has not
// yet read.
func (s *MessageService) UnreadMessagesForRecipient(r models.Recipient) ([]models.AdminMessage, error) {
	matched, err := s.MessagesForRecipient(r)
	if err != nil {
		return nil, err
	}

	var receipts []models.MessageReadReceipt
	if err := s.db.Where("user_id = ?", r.UserID).Find(&receipts).Error; err != nil {
		return nil, err
	}
	read := make(map[string]bool, len(receipts))
	for _, rc := range receipts {
		read[rc.MessageID] = true
	}

	unread := make([]models.AdminMessage, 0, len(matched))
	for _, msg := range matched {
		if !read[msg.ID] {
			unread = append(unread, msg)
		}
	}
	return unread, nil
}

// MarkAsRead records that the user read the message. The receipt set only
// grows and the operation is idempotent: marking twice leaves one receipt.
func (s *MessageService) MarkAsRead(messageID, userID string) error {
	var count int64
	if err := s.db.Model(&models.AdminMessage{}).Where("id = ?", messageID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrMessageNotFound
	}

	// Insert-or-ignore on the composite key: concurrent marks race to a
	// single receipt and the loser succeeds without touching ReadAt.
	receipt := models.MessageReadReceipt{MessageID: messageID, UserID: userID, ReadAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&receipt).Error
}

// ReadBy returns the IDs of users who have read the message.
func (s *MessageService) ReadBy(messageID string) ([]string, error) {
	var receipts []models.MessageReadReceipt
	if err := s.db.Where("message_id = ?", messageID).Order("read_at").Find(&receipts).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(receipts))
	for _, rc := range receipts {
		ids = append(ids, rc.UserID)
	}
	return ids, nil
}

// PendingScheduled returns unsent messages due at or before now, ordered by
// scheduled time ascending.
func (s *MessageService) PendingScheduled(now time.Time) ([]models.AdminMessage, error) {
	var pending []models.AdminMessage
	err := s.db.Where("sent_at IS NULL AND scheduled_for IS NOT NULL AND scheduled_for <= ?", now).
		Order("scheduled_for asc").
		Find(&pending).Error
	if err != nil {
		return nil, err
	}
	return pending, nil
}

// DispatchDue sends every due scheduled message. SentAt is set exactly once;
// a message already sent by a concurrent dispatcher is skipped.
func (s *MessageService) DispatchDue(now time.Time) (int, error) {
	pending, err := s.PendingScheduled(now)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, msg := range pending {
		res := s.db.Model(&models.AdminMessage{}).
			Where("id = ? AND sent_at IS NULL", msg.ID).
			Update("sent_at", now)
		if res.Error != nil {
			return dispatched, res.Error
		}
		if res.RowsAffected == 0 {
			continue
		}
		msg.SentAt = &now
		s.notifier.Deliver(msg)
		metrics.IncBroadcastDispatched()
		dispatched++
	}
	return dispatched, nil
}

// ListTargetingOrganization returns organization-audience messages that
// target the given organization.
func (s *MessageService) ListTargetingOrganization(orgID string) ([]models.AdminMessage, error) {
	tx := query.Apply(s.db.Model(&models.AdminMessage{}),
		query.Equals("audience", string(models.AudienceOrganization)),
		query.Contains("target_organizations", orgID),
	)
	var messages []models.AdminMessage
	if err := tx.Order("created_at desc").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
