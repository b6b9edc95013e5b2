package repository

import (
	"context"

	"github.com/incidentline/authcore/internal/model"
	ctxutil "github.com/incidentline/authcore/pkg/context"
	"github.com/incidentline/authcore/pkg/logger"
	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert writes one audit event row.
func (r *AuditRepository) Insert(ctx context.Context, event *model.AuditEvent) error {
	ctx = ctxutil.WithScope(ctx, "repository", "Insert")

	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to insert audit event").
			String("action", event.Action).
			Err(err).
			Log()
		return err
	}

	return nil
}
