package service

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/incidentline/authcore/internal/constants"
	"github.com/incidentline/authcore/internal/dto"
	apperrors "github.com/incidentline/authcore/internal/errors"
	"github.com/incidentline/authcore/internal/model"
	"github.com/incidentline/authcore/internal/repository"
	ctxutil "github.com/incidentline/authcore/pkg/context"
	"github.com/incidentline/authcore/pkg/logger"
	"gorm.io/gorm"
)

type AuthService struct {
	users  *repository.UserRepository
	tokens *repository.AccessTokenRepository
	issuer *SessionIssuer
	audit  *AuditService
}

func NewAuthService(users *repository.UserRepository, tokens *repository.AccessTokenRepository, issuer *SessionIssuer, audit *AuditService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		issuer: issuer,
		audit:  audit,
	}
}

// Login verifies credentials and establishes a session. Every failure mode,
// unknown email, account with no password set, or wrong password, returns the
// same ErrInvalidCredentials so responses reveal nothing about which part
// failed.
func (s *AuthService) Login(c *gin.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	ctx := ctxutil.WithScope(c.Request.Context(), "service", "Login")

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.WarnWithContext(ctx, "Login failed: unknown email").
				String("email", email).
				Log()
			s.audit.Record(ctx, constants.AuditLoginFailed, nil, map[string]interface{}{"email": email})
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !VerifyPassword(user.PasswordHash, req.Password) {
		logger.WarnWithContext(ctx, "Login failed: credential mismatch").
			Uint("user_id", user.ID).
			Log()
		s.audit.Record(ctx, constants.AuditLoginFailed, &user.ID, nil)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(c, user)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to issue session").
			Uint("user_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Login succeeded").
		Uint("user_id", user.ID).
		String("system_role", user.EffectiveRole()).
		Log()
	s.audit.Record(ctx, constants.AuditLoginSucceeded, &user.ID, nil)

	return &dto.LoginResponse{
		User:  toUserResponse(user),
		Token: token,
	}, nil
}

// Logout clears every session cookie variant. It never fails, whether or not
// a valid session was presented.
func (s *AuthService) Logout(c *gin.Context) {
	ctx := ctxutil.WithScope(c.Request.Context(), "service", "Logout")

	s.issuer.Clear(c)

	logger.InfoWithContext(ctx, "Session cleared").Log()
}

// ValidateTemporaryAccess redeems a one-time handoff token and establishes a
// full session for the account it was minted for. Redemption is atomic: a
// replayed or expired token fails with the same generic error as an unknown
// one.
func (s *AuthService) ValidateTemporaryAccess(c *gin.Context, rawToken string) (*dto.ValidateTemporaryAccessResponse, error) {
	ctx := ctxutil.WithScope(c.Request.Context(), "service", "ValidateTemporaryAccess")

	if strings.TrimSpace(rawToken) == "" {
		return nil, apperrors.ErrTemporaryTokenInvalid
	}

	record, err := s.tokens.Redeem(ctx, hashToken(rawToken), constants.FormTypeTemporaryAdminAccess, time.Now().UTC())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.WarnWithContext(ctx, "Temporary access redemption failed").Log()
			return nil, apperrors.ErrTemporaryTokenInvalid
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user, err := s.users.GetByEmail(ctx, record.RecipientContact)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.WarnWithContext(ctx, "Temporary access token references missing user").
				Uint("token_id", record.ID).
				Log()
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	token, err := s.issuer.Issue(c, user)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Temporary access redeemed").
		Uint("user_id", user.ID).
		Uint("token_id", record.ID).
		Log()
	s.audit.Record(ctx, constants.AuditTemporaryRedeemed, &user.ID, map[string]interface{}{"token_id": record.ID})

	return &dto.ValidateTemporaryAccessResponse{
		Success: true,
		User:    toUserResponse(user),
		Token:   token,
	}, nil
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		SystemRole: user.EffectiveRole(),
		Avatar:     user.Avatar,
	}
}
