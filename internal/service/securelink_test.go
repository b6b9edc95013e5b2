package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/incidentline/authcore/internal/constants"
	"github.com/incidentline/authcore/internal/dto"
	apperrors "github.com/incidentline/authcore/internal/errors"
	"github.com/incidentline/authcore/internal/repository"
)

func newLinkService(t *testing.T) *SecureLinkService {
	t.Helper()
	db := newTestDB(t)
	return NewSecureLinkService(repository.NewAccessTokenRepository(db), newTestAudit(db), "http://localhost:8080", 720)
}

func TestResolveExpirationHours(t *testing.T) {
	svc := newLinkService(t)

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 24, false},
		{"24h", 24, false},
		{"48h", 48, false},
		{"7d", 168, false},
		{"12", 12, false},
		{"720", 720, false},
		{"721", 0, true},
		{"0", 0, true},
		{"-5", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		got, err := svc.resolveExpirationHours(tt.in)
		if tt.wantErr {
			if err != apperrors.ErrInvalidExpiration {
				t.Errorf("resolveExpirationHours(%q) err = %v, want ErrInvalidExpiration", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveExpirationHours(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveExpirationHours(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIssueAndResolveLink(t *testing.T) {
	svc := newLinkService(t)
	ctx := context.Background()

	created, err := svc.Issue(ctx, 1, &dto.CreateSecureLinkRequest{
		IncidentID:    42,
		FormType:      constants.FormTypeStatusLog,
		RecipientName: "Pat Doe",
		Expiration:    "48h",
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if created.URL == "" || !strings.Contains(created.URL, "/secure-forms/view?token=") {
		t.Errorf("unexpected share URL %q", created.URL)
	}
	if created.AccessCode != "" {
		t.Error("access code returned for a link that did not request one")
	}

	raw := created.URL[strings.Index(created.URL, "token=")+len("token="):]
	resolved, err := svc.Resolve(ctx, raw)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	link, ok := resolved.(*dto.SecureLinkResponse)
	if !ok {
		t.Fatalf("Resolve returned %T, want full projection", resolved)
	}
	if link.IncidentID == nil || *link.IncidentID != 42 {
		t.Error("resolved link missing incident id")
	}

	// Links stay reusable: a second resolve succeeds too.
	if _, err := svc.Resolve(ctx, raw); err != nil {
		t.Errorf("second Resolve: %v", err)
	}
}

func TestResolveLockedProjection(t *testing.T) {
	svc := newLinkService(t)
	ctx := context.Background()

	created, err := svc.Issue(ctx, 1, &dto.CreateSecureLinkRequest{
		IncidentID:        42,
		FormType:          constants.FormTypeMedicalAuthorization,
		RecipientName:     "Pat Doe",
		RequireAccessCode: true,
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(created.AccessCode) != 6 {
		t.Fatalf("access code %q, want 6 digits", created.AccessCode)
	}

	raw := created.URL[strings.Index(created.URL, "token=")+len("token="):]
	resolved, err := svc.Resolve(ctx, raw)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	locked, ok := resolved.(*dto.LockedSecureLinkResponse)
	if !ok {
		t.Fatalf("Resolve returned %T, want locked projection", resolved)
	}
	if !locked.Locked {
		t.Error("locked flag not set")
	}
	if locked.FormType != constants.FormTypeMedicalAuthorization {
		t.Errorf("form_type = %q", locked.FormType)
	}

	// Verification without a code is a 400-class error.
	if _, err := svc.Verify(ctx, &dto.VerifySecureLinkRequest{Token: raw}); err != apperrors.ErrAccessCodeMissing {
		t.Errorf("missing code err = %v, want ErrAccessCodeMissing", err)
	}

	// Wrong code is rejected without consuming the link.
	if _, err := svc.Verify(ctx, &dto.VerifySecureLinkRequest{Token: raw, AccessCode: "000000"}); err != apperrors.ErrAccessCodeInvalid {
		if created.AccessCode == "000000" {
			t.Skip("generated code collided with the test's wrong guess")
		}
		t.Errorf("wrong code err = %v, want ErrAccessCodeInvalid", err)
	}

	// Correct code unlocks the full projection, and stays reusable.
	full, err := svc.Verify(ctx, &dto.VerifySecureLinkRequest{Token: raw, AccessCode: created.AccessCode})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if full.IncidentID == nil || *full.IncidentID != 42 {
		t.Error("verified link missing incident id")
	}
	if _, err := svc.Verify(ctx, &dto.VerifySecureLinkRequest{Token: raw, AccessCode: created.AccessCode}); err != nil {
		t.Errorf("second Verify: %v", err)
	}
}

func TestResolveErrorTaxonomy(t *testing.T) {
	svc := newLinkService(t)
	ctx := context.Background()

	if _, err := svc.Resolve(ctx, "never-issued"); err != apperrors.ErrLinkNotFound {
		t.Errorf("unknown token err = %v, want ErrLinkNotFound", err)
	}

	created, err := svc.Issue(ctx, 1, &dto.CreateSecureLinkRequest{
		IncidentID: 1,
		FormType:   constants.FormTypeStatusLog,
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	raw := created.URL[strings.Index(created.URL, "token=")+len("token="):]

	if err := svc.Revoke(ctx, 1, created.ID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := svc.Resolve(ctx, raw); err != apperrors.ErrLinkRevoked {
		t.Errorf("revoked token err = %v, want ErrLinkRevoked", err)
	}
}

func TestIssueRejectsReservedFormType(t *testing.T) {
	svc := newLinkService(t)

	_, err := svc.Issue(context.Background(), 1, &dto.CreateSecureLinkRequest{
		IncidentID: 1,
		FormType:   constants.FormTypeTemporaryAdminAccess,
	})
	if err != apperrors.ErrInvalidFormType {
		t.Errorf("err = %v, want ErrInvalidFormType", err)
	}
}

func TestExpiredLinkIsGone(t *testing.T) {
	db := newTestDB(t)
	tokens := repository.NewAccessTokenRepository(db)
	svc := NewSecureLinkService(tokens, newTestAudit(db), "http://localhost:8080", 720)
	ctx := context.Background()

	created, err := svc.Issue(ctx, 1, &dto.CreateSecureLinkRequest{
		IncidentID: 1,
		FormType:   constants.FormTypeStatusLog,
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Push the expiry into the past directly.
	if err := db.Exec("UPDATE access_tokens SET expires_at = ? WHERE id = ?", time.Now().UTC().Add(-time.Hour), created.ID).Error; err != nil {
		t.Fatalf("age link: %v", err)
	}

	raw := created.URL[strings.Index(created.URL, "token=")+len("token="):]
	if _, err := svc.Resolve(ctx, raw); err != apperrors.ErrLinkExpired {
		t.Errorf("expired token err = %v, want ErrLinkExpired", err)
	}
}
