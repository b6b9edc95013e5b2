package repository

import (
	"context"
	"time"

	"github.com/incidentline/authcore/internal/model"
	ctxutil "github.com/incidentline/authcore/pkg/context"
	"github.com/incidentline/authcore/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRoleRepository struct {
	db *gorm.DB
}

func NewClientRoleRepository(db *gorm.DB) *ClientRoleRepository {
	return &ClientRoleRepository{db: db}
}

// ListByUser returns every client role assignment for one user. This is the
// caller's full authorization context; tenant-scoped queries project
// client_ids out of it.
func (r *ClientRoleRepository) ListByUser(ctx context.Context, userID uint) ([]model.ClientRoleAssignment, error) {
	ctx = ctxutil.WithScope(ctx, "repository", "ListByUser")

	start := time.Now()
	var roles []model.ClientRoleAssignment

	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("client_id").Find(&roles)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to load client roles").
			Uint("user_id", userID).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return roles, nil
}

// Upsert creates or replaces the assignment for a (user, client) pair. The
// unique index on the pair makes re-assignment replace the previous company
// role instead of accumulating duplicates.
func (r *ClientRoleRepository) Upsert(ctx context.Context, assignment *model.ClientRoleAssignment) error {
	ctx = ctxutil.WithScope(ctx, "repository", "Upsert")

	start := time.Now()
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "client_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_role", "assigned_by_id", "updated_at",
		}),
	}).Create(assignment)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to upsert client role").
			Uint("user_id", assignment.UserID).
			Uint("client_id", assignment.ClientID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Client role assigned").
		Uint("user_id", assignment.UserID).
		Uint("client_id", assignment.ClientID).
		String("company_role", assignment.CompanyRole).
		Duration(duration).
		Log()

	return nil
}

// Delete removes one assignment. The filter requires both the assignment id
// and the user id, so an id belonging to another user never matches.
func (r *ClientRoleRepository) Delete(ctx context.Context, roleID, userID uint) error {
	ctx = ctxutil.WithScope(ctx, "repository", "Delete")

	start := time.Now()
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", roleID, userID).
		Delete(&model.ClientRoleAssignment{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete client role").
			Uint("role_id", roleID).
			Uint("user_id", userID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Client role removed").
		Uint("role_id", roleID).
		Uint("user_id", userID).
		Duration(duration).
		Log()

	return nil
}
