package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/metrics"
	"github.com/umojahub/umoja/backend/internal/models"
	"github.com/umojahub/umoja/backend/internal/query"
)

type AuditService struct {
	db *gorm.DB
}

// NewAuditService returns an AuditService using the provided DB
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// AuditTarget carries the optional target fields of an audit entry.
type AuditTarget struct {
	ID       string
	Type     string
	Name     string
	Metadata string
}

// LogAction appends one immutable audit entry. The entry timestamp is
// assigned by the store at write time; callers cannot supply one.
func (s *AuditService) LogAction(userID, userName string, role access.Role, action models.AuditAction, target *AuditTarget) error {
	entry := models.AuditLog{
		UserID:   userID,
		UserName: userName,
		UserRole: string(role),
		Action:   action,
	}
	if target != nil {
		entry.TargetID = target.ID
		entry.TargetType = target.Type
		entry.TargetName = target.Name
		entry.Metadata = target.Metadata
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return err
	}
	metrics.IncAuditEntry()
	return nil
}

// LogContextAction is LogAction with the identity fields taken from a context.
func (s *AuditService) LogContextAction(ctx access.AdminContext, action models.AuditAction, target *AuditTarget) error {
	return s.LogAction(ctx.UserID, ctx.UserName, ctx.Role, action, target)
}

// AuditQuery combines equality filters and a timestamp range with AND
// semantics. Zero-valued fields are not applied.
type AuditQuery struct {
	UserID     string
	Action     models.AuditAction
	TargetID   string
	TargetType string
	From       *time.Time
	To         *time.Time
	Limit      int
}

// List returns matching audit entries, newest first.
func (s *AuditService) List(q AuditQuery) ([]models.AuditLog, error) {
	var filters []query.Filter
	if q.UserID != "" {
		filters = append(filters, query.Equals("user_id", q.UserID))
	}
	if q.Action != "" {
		filters = append(filters, query.Equals("action", string(q.Action)))
	}
	if q.TargetID != "" {
		filters = append(filters, query.Equals("target_id", q.TargetID))
	}
	if q.TargetType != "" {
		filters = append(filters, query.Equals("target_type", q.TargetType))
	}
	if q.From != nil || q.To != nil {
		var min, max interface{}
		if q.From != nil {
			min = *q.From
		}
		if q.To != nil {
			max = *q.To
		}
		filters = append(filters, query.Range("created_at", min, max))
	}

	tx := query.Apply(s.db.Model(&models.AuditLog{}), filters...).Order("created_at desc")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var entries []models.AuditLog
	if err := tx.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CriticalLogs returns recent entries restricted to the critical-action
// allow-list, newest first.
func (s *AuditService) CriticalLogs(limit int) ([]models.AuditLog, error) {
	tx := s.db.Where("action IN ?", models.CriticalAuditActions()).Order("created_at desc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var entries []models.AuditLog
	if err := tx.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
