package service

import (
	"context"
	"strings"

	"github.com/incidentline/authcore/internal/constants"
	"github.com/incidentline/authcore/internal/dto"
	apperrors "github.com/incidentline/authcore/internal/errors"
	"github.com/incidentline/authcore/internal/model"
	"github.com/incidentline/authcore/internal/repository"
	ctxutil "github.com/incidentline/authcore/pkg/context"
	"github.com/incidentline/authcore/pkg/logger"
	"gorm.io/gorm"
)

// UserService covers global-admin user management: account creation, system
// role changes, per-client role assignments, and account removal.
type UserService struct {
	users       *repository.UserRepository
	clientRoles *repository.ClientRoleRepository
	audit       *AuditService
}

func NewUserService(users *repository.UserRepository, clientRoles *repository.ClientRoleRepository, audit *AuditService) *UserService {
	return &UserService{
		users:       users,
		clientRoles: clientRoles,
		audit:       audit,
	}
}

// CreateUser provisions an account with an argon2-hashed password.
func (s *UserService) CreateUser(ctx context.Context, actorID uint, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithScope(ctx, "service", "CreateUser")

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		logger.WarnWithContext(ctx, "User creation rejected: email taken").
			String("email", email).
			Log()
		return nil, apperrors.ErrEmailExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	systemRole := req.SystemRole
	if systemRole == "" {
		systemRole = constants.SystemRoleStandard
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		SystemRole:   systemRole,
		Avatar:       req.Avatar,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.audit.Record(ctx, constants.AuditUserCreated, &actorID, map[string]interface{}{
		"created_user_id": user.ID,
		"system_role":     systemRole,
	})

	resp := toUserResponse(user)
	return &resp, nil
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	ctx = ctxutil.WithScope(ctx, "service", "ListUsers")

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}
	return responses, nil
}

// UpdateSystemRole moves a user between global_admin and standard.
func (s *UserService) UpdateSystemRole(ctx context.Context, actorID, userID uint, systemRole string) error {
	ctx = ctxutil.WithScope(ctx, "service", "UpdateSystemRole")

	if systemRole != constants.SystemRoleGlobalAdmin && systemRole != constants.SystemRoleStandard {
		return apperrors.ErrInvalidRole
	}

	if err := s.users.UpdateSystemRole(ctx, userID, systemRole); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.audit.Record(ctx, constants.AuditUserRoleChanged, &actorID, map[string]interface{}{
		"target_user_id": userID,
		"system_role":    systemRole,
	})
	return nil
}

// DeleteUser hard-deletes an account. Actors cannot delete themselves, so
// the last admin session standing cannot orphan the system mid-request.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID uint) error {
	ctx = ctxutil.WithScope(ctx, "service", "DeleteUser")

	if actorID == userID {
		logger.WarnWithContext(ctx, "Self-deletion rejected").
			Uint("user_id", userID).
			Log()
		return apperrors.ErrSelfDeletion
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.audit.Record(ctx, constants.AuditUserDeleted, &actorID, map[string]interface{}{
		"target_user_id": userID,
	})
	return nil
}

// UpsertClientRole assigns or replaces a user's role on one client.
func (s *UserService) UpsertClientRole(ctx context.Context, actorID, userID uint, req *dto.UpsertClientRoleRequest) (*dto.ClientRoleResponse, error) {
	ctx = ctxutil.WithScope(ctx, "service", "UpsertClientRole")

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	assignment := &model.ClientRoleAssignment{
		UserID:       userID,
		ClientID:     req.ClientID,
		CompanyRole:  strings.TrimSpace(req.CompanyRole),
		AssignedByID: &actorID,
	}

	if err := s.clientRoles.Upsert(ctx, assignment); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.ClientRoleResponse{
		ID:          assignment.ID,
		ClientID:    assignment.ClientID,
		CompanyRole: assignment.CompanyRole,
	}, nil
}

// DeleteClientRole removes one assignment; the (role, user) pair must match.
func (s *UserService) DeleteClientRole(ctx context.Context, roleID, userID uint) error {
	ctx = ctxutil.WithScope(ctx, "service", "DeleteClientRole")

	if err := s.clientRoles.Delete(ctx, roleID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}
