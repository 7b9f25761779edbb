package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hugh/staffhub/internal/database/models"
	"gorm.io/gorm"
)

// Meta is the free-form structured payload attached to an audit record.
// Its shape depends on the action; deletions carry a full snapshot.
type Meta map[string]any

// Logger appends immutable audit records. Recording is best-effort: a
// failed insert must never fail or roll back the mutation it describes,
// so failures are logged and swallowed.
type Logger struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewLogger(db *gorm.DB, log *slog.Logger) *Logger {
	return &Logger{db: db, log: log}
}

// Record appends one log row. orgID and userID may be nil for
// system-level events.
func (l *Logger) Record(ctx context.Context, orgID, userID *uuid.UUID, action models.LogAction, meta Meta) {
	entry := models.Log{
		OrganisationID: orgID,
		UserID:         userID,
		Action:         action,
		Meta:           meta,
	}

	if err := l.db.WithContext(ctx).Create(&entry).Error; err != nil {
		l.log.Warn("audit record failed",
			"action", string(action),
			"error", err,
		)
	}
}

// List returns the newest limit records for an organisation.
func (l *Logger) List(ctx context.Context, orgID uuid.UUID, limit int) ([]models.Log, error) {
	if limit <= 0 {
		limit = 100
	}

	var logs []models.Log
	err := l.db.WithContext(ctx).
		Where("organisation_id = ?", orgID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
