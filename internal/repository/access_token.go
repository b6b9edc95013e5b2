package repository

import (
	"context"
	"time"

	"github.com/incidentline/authcore/internal/constants"
	"github.com/incidentline/authcore/internal/model"
	ctxutil "github.com/incidentline/authcore/pkg/context"
	"github.com/incidentline/authcore/pkg/logger"
	"gorm.io/gorm"
)

type AccessTokenRepository struct {
	db *gorm.DB
}

func NewAccessTokenRepository(db *gorm.DB) *AccessTokenRepository {
	return &AccessTokenRepository{db: db}
}

// Create persists a capability token record. The caller has already hashed
// the raw token; the raw value never reaches this layer.
func (r *AccessTokenRepository) Create(ctx context.Context, token *model.AccessToken) error {
	ctx = ctxutil.WithScope(ctx, "repository", "Create")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(token)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create access token").
			String("form_type", token.FormType).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Access token created").
		Uint("token_id", token.ID).
		String("form_type", token.FormType).
		Time("expires_at", token.ExpiresAt).
		Duration(duration).
		Log()

	return nil
}

// FindByHash loads a token in any state so callers can distinguish missing
// (404) from revoked or expired (410).
func (r *AccessTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*model.AccessToken, error) {
	ctx = ctxutil.WithScope(ctx, "repository", "FindByHash")

	var token model.AccessToken
	result := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&token)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to look up access token").
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &token, nil
}

// Redeem atomically revokes a single-use token of the given form type,
// provided it is still unexpired and unrevoked, and returns the revoked row.
// The revocation is one conditional UPDATE checked via RowsAffected: two
// concurrent redemptions of the same raw token cannot both succeed, and the
// replay window closes before any session is issued.
func (r *AccessTokenRepository) Redeem(ctx context.Context, tokenHash, formType string, now time.Time) (*model.AccessToken, error) {
	ctx = ctxutil.WithScope(ctx, "repository", "Redeem")

	start := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.AccessToken{}).
		Where("token_hash = ? AND form_type = ? AND revoked_at IS NULL AND expires_at > ?", tokenHash, formType, now).
		Update("revoked_at", now)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to redeem access token").
			String("form_type", formType).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var token model.AccessToken
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&token).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to load redeemed token").
			String("form_type", formType).
			Err(err).
			Log()
		return nil, err
	}

	logger.InfoWithContext(ctx, "Access token redeemed").
		Uint("token_id", token.ID).
		String("form_type", formType).
		Duration(duration).
		Log()

	return &token, nil
}

// Revoke invalidates a token by id unless already revoked.
func (r *AccessTokenRepository) Revoke(ctx context.Context, id uint, now time.Time) error {
	ctx = ctxutil.WithScope(ctx, "repository", "Revoke")

	result := r.db.WithContext(ctx).
		Model(&model.AccessToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to revoke access token").
			Uint("token_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Access token revoked").
		Uint("token_id", id).
		Log()

	return nil
}

// ListByIncident returns the secure form links for one incident. Revoked
// links are always excluded; expired links only on request. The reserved
// temporary-admin form type never appears in listings.
func (r *AccessTokenRepository) ListByIncident(ctx context.Context, incidentID uint, includeExpired bool, now time.Time) ([]model.AccessToken, error) {
	ctx = ctxutil.WithScope(ctx, "repository", "ListByIncident")

	query := r.db.WithContext(ctx).
		Where("incident_id = ? AND revoked_at IS NULL AND form_type <> ?", incidentID, constants.FormTypeTemporaryAdminAccess)

	if !includeExpired {
		query = query.Where("expires_at > ?", now)
	}

	var tokens []model.AccessToken
	if err := query.Order("created_at DESC").Find(&tokens).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to list access tokens").
			Uint("incident_id", incidentID).
			Err(err).
			Log()
		return nil, err
	}

	return tokens, nil
}
