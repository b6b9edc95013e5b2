package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/incidentline/authcore/internal/constants"
	"github.com/incidentline/authcore/internal/dto"
	apperrors "github.com/incidentline/authcore/internal/errors"
	"github.com/incidentline/authcore/internal/model"
	"github.com/incidentline/authcore/internal/repository"
	ctxutil "github.com/incidentline/authcore/pkg/context"
	"github.com/incidentline/authcore/pkg/logger"
	"gorm.io/gorm"
)

// SecureLinkService manages recipient-facing form links. Links are reusable
// until expiry or revocation; an optional 6-digit access code gates the full
// projection behind a verification step.
type SecureLinkService struct {
	tokens   *repository.AccessTokenRepository
	audit    *AuditService
	baseURL  string
	maxHours int
}

func NewSecureLinkService(tokens *repository.AccessTokenRepository, audit *AuditService, baseURL string, maxHours int) *SecureLinkService {
	if maxHours <= 0 {
		maxHours = 720
	}
	return &SecureLinkService{
		tokens:   tokens,
		audit:    audit,
		baseURL:  baseURL,
		maxHours: maxHours,
	}
}

// resolveExpirationHours maps an expiration tag to hours. Known tags are
// 24h, 48h and 7d; any other non-empty value is read as a raw hour count.
// Empty means the 24 hour default.
func (s *SecureLinkService) resolveExpirationHours(expiration string) (int, error) {
	switch strings.TrimSpace(expiration) {
	case "", "24h":
		return 24, nil
	case "48h":
		return 48, nil
	case "7d":
		return 168, nil
	}

	hours, err := strconv.Atoi(strings.TrimSpace(expiration))
	if err != nil {
		return 0, apperrors.ErrInvalidExpiration
	}
	if hours <= 0 || hours > s.maxHours {
		return 0, apperrors.ErrInvalidExpiration
	}
	return hours, nil
}

// Issue creates a link. The raw token and (if requested) access code appear
// in the creation response only; both are stored hashed.
func (s *SecureLinkService) Issue(ctx context.Context, userID uint, req *dto.CreateSecureLinkRequest) (*dto.SecureLinkResponse, error) {
	ctx = ctxutil.WithScope(ctx, "service", "IssueSecureLink")

	if !constants.IsSecureLinkFormType(req.FormType) {
		return nil, apperrors.ErrInvalidFormType
	}

	hours, err := s.resolveExpirationHours(req.Expiration)
	if err != nil {
		return nil, err
	}

	raw, err := generateToken()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	var accessCode string
	var accessCodeHash string
	if req.RequireAccessCode {
		accessCode, err = generateAccessCode()
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		accessCodeHash, err = HashPassword(accessCode)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	incidentID := req.IncidentID
	record := &model.AccessToken{
		TokenHash:         hashToken(raw),
		FormType:          req.FormType,
		IncidentID:        &incidentID,
		FormRecordID:      req.FormRecordID,
		RecipientName:     req.RecipientName,
		RecipientContact:  req.RecipientContact,
		DeliveryMethod:    req.DeliveryMethod,
		RequireAccessCode: req.RequireAccessCode,
		AccessCodeHash:    accessCodeHash,
		ExpiresAt:         time.Now().UTC().Add(time.Duration(hours) * time.Hour),
		CreatedByID:       &userID,
	}

	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Secure form link issued").
		Uint("token_id", record.ID).
		Uint("incident_id", incidentID).
		String("form_type", record.FormType).
		Int("hours", hours).
		Bool("access_code", record.RequireAccessCode).
		Log()
	s.audit.Record(ctx, constants.AuditSecureLinkIssued, &userID, map[string]interface{}{
		"token_id":    record.ID,
		"incident_id": incidentID,
		"form_type":   record.FormType,
	})

	resp := toSecureLinkResponse(record)
	resp.URL = s.baseURL + "/secure-forms/view?token=" + raw
	resp.AccessCode = accessCode
	return resp, nil
}

// lookup finds a link by raw token and maps its state to the API's error
// taxonomy: unknown hash is 404, revoked and expired are both 410, revoked
// checked first. Temporary admin tokens are invisible to the link API.
func (s *SecureLinkService) lookup(ctx context.Context, rawToken string) (*model.AccessToken, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, apperrors.ErrLinkNotFound
	}

	record, err := s.tokens.FindByHash(ctx, hashToken(rawToken))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrLinkNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if record.IsTemporaryAccess() {
		return nil, apperrors.ErrLinkNotFound
	}
	if record.Revoked() {
		return nil, apperrors.ErrLinkRevoked
	}
	if record.Expired(time.Now().UTC()) {
		return nil, apperrors.ErrLinkExpired
	}

	return record, nil
}

// Resolve returns the link behind a raw token. Code-gated links resolve to
// the locked projection, which withholds the incident and recipient until
// Verify succeeds.
func (s *SecureLinkService) Resolve(ctx context.Context, rawToken string) (interface{}, error) {
	ctx = ctxutil.WithScope(ctx, "service", "ResolveSecureLink")

	record, err := s.lookup(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if record.RequireAccessCode {
		return &dto.LockedSecureLinkResponse{
			FormType:  record.FormType,
			ExpiresAt: record.ExpiresAt,
			Locked:    true,
		}, nil
	}

	return toSecureLinkResponse(record), nil
}

// Verify checks an access code against a code-gated link and, on success,
// returns the full projection. Verification is stateless; the link stays
// reusable and the code can be checked again on the next visit.
func (s *SecureLinkService) Verify(ctx context.Context, req *dto.VerifySecureLinkRequest) (*dto.SecureLinkResponse, error) {
	ctx = ctxutil.WithScope(ctx, "service", "VerifySecureLink")

	record, err := s.lookup(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	if record.RequireAccessCode {
		if strings.TrimSpace(req.AccessCode) == "" {
			return nil, apperrors.ErrAccessCodeMissing
		}
		if !VerifyPassword(record.AccessCodeHash, strings.TrimSpace(req.AccessCode)) {
			logger.WarnWithContext(ctx, "Access code mismatch").
				Uint("token_id", record.ID).
				Log()
			return nil, apperrors.ErrAccessCodeInvalid
		}
	}

	logger.InfoWithContext(ctx, "Secure form link verified").
		Uint("token_id", record.ID).
		Log()
	s.audit.Record(ctx, constants.AuditSecureLinkVerified, nil, map[string]interface{}{"token_id": record.ID})

	return toSecureLinkResponse(record), nil
}

// List returns the active links for an incident, newest first. Revoked links
// never appear; expired ones only when asked for.
func (s *SecureLinkService) List(ctx context.Context, incidentID uint, includeExpired bool) ([]dto.SecureLinkResponse, error) {
	ctx = ctxutil.WithScope(ctx, "service", "ListSecureLinks")

	records, err := s.tokens.ListByIncident(ctx, incidentID, includeExpired, time.Now().UTC())
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	responses := make([]dto.SecureLinkResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *toSecureLinkResponse(&records[i]))
	}
	return responses, nil
}

// Revoke invalidates a link by id.
func (s *SecureLinkService) Revoke(ctx context.Context, userID, linkID uint) error {
	ctx = ctxutil.WithScope(ctx, "service", "RevokeSecureLink")

	if err := s.tokens.Revoke(ctx, linkID, time.Now().UTC()); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrLinkNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Secure form link revoked").
		Uint("token_id", linkID).
		Log()
	s.audit.Record(ctx, constants.AuditSecureLinkRevoked, &userID, map[string]interface{}{"token_id": linkID})

	return nil
}

func toSecureLinkResponse(record *model.AccessToken) *dto.SecureLinkResponse {
	return &dto.SecureLinkResponse{
		ID:               record.ID,
		IncidentID:       record.IncidentID,
		FormType:         record.FormType,
		FormRecordID:     record.FormRecordID,
		RecipientName:    record.RecipientName,
		RecipientContact: record.RecipientContact,
		DeliveryMethod:   record.DeliveryMethod,
		ExpiresAt:        record.ExpiresAt,
		CreatedAt:        record.CreatedAt,
		RevokedAt:        record.RevokedAt,
		Locked:           false,
	}
}
