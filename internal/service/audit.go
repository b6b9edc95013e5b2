package service

import (
	"context"
	"encoding/json"

	"github.com/incidentline/authcore/internal/model"
	"github.com/incidentline/authcore/internal/repository"
	ctxutil "github.com/incidentline/authcore/pkg/context"
	"github.com/incidentline/authcore/pkg/logger"
	"gorm.io/datatypes"
)

// AuditService records security-relevant events. Recording is best effort:
// a failed audit write is logged but never fails the operation it describes.
type AuditService struct {
	audits *repository.AuditRepository
}

func NewAuditService(audits *repository.AuditRepository) *AuditService {
	return &AuditService{audits: audits}
}

func (s *AuditService) Record(ctx context.Context, action string, userID *uint, detail map[string]interface{}) {
	ctx = ctxutil.WithScope(ctx, "service", "Record")

	event := &model.AuditEvent{
		UserID:   userID,
		Action:   action,
		ClientIP: ctxutil.GetClientIP(ctx),
	}

	if len(detail) > 0 {
		raw, err := json.Marshal(detail)
		if err != nil {
			logger.WarnWithContext(ctx, "Failed to marshal audit detail").
				String("action", action).
				Err(err).
				Log()
		} else {
			event.Detail = datatypes.JSON(raw)
		}
	}

	if err := s.audits.Insert(ctx, event); err != nil {
		logger.WarnWithContext(ctx, "Audit write failed, continuing").
			String("action", action).
			Err(err).
			Log()
	}
}
