package service

import (
	"context"
	"time"

	"github.com/incidentline/authcore/internal/constants"
	"github.com/incidentline/authcore/internal/dto"
	apperrors "github.com/incidentline/authcore/internal/errors"
	"github.com/incidentline/authcore/internal/model"
	"github.com/incidentline/authcore/internal/repository"
	ctxutil "github.com/incidentline/authcore/pkg/context"
	"github.com/incidentline/authcore/pkg/logger"
)

// TemporaryAccessService mints short-lived single-use handoff tokens that
// let an already-authenticated admin open a full session on another device.
type TemporaryAccessService struct {
	tokens  *repository.AccessTokenRepository
	audit   *AuditService
	baseURL string
	ttl     time.Duration
}

func NewTemporaryAccessService(tokens *repository.AccessTokenRepository, audit *AuditService, baseURL string, ttl time.Duration) *TemporaryAccessService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TemporaryAccessService{
		tokens:  tokens,
		audit:   audit,
		baseURL: baseURL,
		ttl:     ttl,
	}
}

// Issue mints a token bound to the calling user's email. Only the SHA-256
// hash is stored; the raw token appears in the response and nowhere else.
func (s *TemporaryAccessService) Issue(ctx context.Context, userID uint, email string) (*dto.TemporaryAccessResponse, error) {
	ctx = ctxutil.WithScope(ctx, "service", "IssueTemporaryAccess")

	raw, err := generateToken()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	expiresAt := time.Now().UTC().Add(s.ttl)
	record := &model.AccessToken{
		TokenHash:        hashToken(raw),
		FormType:         constants.FormTypeTemporaryAdminAccess,
		RecipientContact: email,
		DeliveryMethod:   "mobile_handoff",
		ExpiresAt:        expiresAt,
		CreatedByID:      &userID,
	}

	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Temporary access token issued").
		Uint("user_id", userID).
		Uint("token_id", record.ID).
		Time("expires_at", expiresAt).
		Log()
	s.audit.Record(ctx, constants.AuditTemporaryIssued, &userID, map[string]interface{}{"token_id": record.ID})

	return &dto.TemporaryAccessResponse{
		Token:     raw,
		ExpiresAt: expiresAt,
		AccessURL: s.baseURL + "/admin/mobile-access?token=" + raw,
	}, nil
}
