package repository

import (
	"context"
	"testing"

	"github.com/incidentline/authcore/internal/model"
	"gorm.io/gorm"
)

func TestGetByEmailCaseInsensitive(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &model.User{Name: "A", Email: "Mixed.Case@Example.COM"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, email := range []string{"mixed.case@example.com", "MIXED.CASE@EXAMPLE.COM", "  Mixed.Case@Example.com  "} {
		user, err := repo.GetByEmail(ctx, email)
		if err != nil {
			t.Errorf("GetByEmail(%q): %v", email, err)
			continue
		}
		if user.Email != "mixed.case@example.com" {
			t.Errorf("stored email = %q, want normalized", user.Email)
		}
	}
}

func TestUpdateSystemRoleMissingUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	if err := repo.UpdateSystemRole(context.Background(), 999, "standard"); err != gorm.ErrRecordNotFound {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestDeleteIsHard(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Name: "B", Email: "b@example.com"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int64
	db.Unscoped().Model(&model.User{}).Where("id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Error("delete left a soft-deleted row behind")
	}
}
