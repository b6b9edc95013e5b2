package repository

import (
	"context"
	"testing"

	"github.com/incidentline/authcore/internal/model"
	"gorm.io/gorm"
)

func TestUpsertReplacesExistingAssignment(t *testing.T) {
	repo := NewClientRoleRepository(newTestDB(t))
	ctx := context.Background()

	first := &model.ClientRoleAssignment{UserID: 1, ClientID: 10, CompanyRole: "viewer"}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	second := &model.ClientRoleAssignment{UserID: 1, ClientID: 10, CompanyRole: "manager"}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}

	roles, err := repo.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(roles) != 1 {
		t.Fatalf("got %d assignments, want 1", len(roles))
	}
	if roles[0].CompanyRole != "manager" {
		t.Errorf("company_role = %q, want manager", roles[0].CompanyRole)
	}
}

func TestDeleteRequiresMatchingUser(t *testing.T) {
	repo := NewClientRoleRepository(newTestDB(t))
	ctx := context.Background()

	assignment := &model.ClientRoleAssignment{UserID: 1, ClientID: 10, CompanyRole: "viewer"}
	if err := repo.Upsert(ctx, assignment); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Wrong user id: the row must survive.
	if err := repo.Delete(ctx, assignment.ID, 2); err != gorm.ErrRecordNotFound {
		t.Errorf("Delete with wrong user err = %v, want ErrRecordNotFound", err)
	}

	if err := repo.Delete(ctx, assignment.ID, 1); err != nil {
		t.Errorf("Delete with matching user: %v", err)
	}
}
