package service

import (
	"testing"
	"time"
)

func newTestCodec(t *testing.T, ttl time.Duration) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec("test-secret", "authcore-test", ttl)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return codec
}

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	claims := &SessionClaims{
		Name:       "Dana Reyes",
		Email:      "dana@example.com",
		Role:       "global_admin",
		SystemRole: "global_admin",
	}

	raw, err := codec.Encode(claims, "salt-a")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded := codec.Decode(raw, "salt-a")
	if decoded == nil {
		t.Fatal("Decode returned nil for a valid token")
	}
	if decoded.Email != "dana@example.com" {
		t.Errorf("email = %q, want %q", decoded.Email, "dana@example.com")
	}
	if decoded.SystemRole != "global_admin" {
		t.Errorf("system_role = %q, want global_admin", decoded.SystemRole)
	}
}

func TestTokenCodecSaltIsolation(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	raw, err := codec.Encode(&SessionClaims{Email: "a@example.com"}, "salt-a")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if codec.Decode(raw, "salt-b") != nil {
		t.Error("token signed under one salt validated under another")
	}
}

func TestTokenCodecSecretIsolation(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	other, err := NewTokenCodec("other-secret", "authcore-test", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}

	raw, err := codec.Encode(&SessionClaims{Email: "a@example.com"}, "salt-a")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if other.Decode(raw, "salt-a") != nil {
		t.Error("token validated under a different secret")
	}
}

func TestTokenCodecExpiry(t *testing.T) {
	codec := newTestCodec(t, -time.Minute)

	raw, err := codec.Encode(&SessionClaims{Email: "a@example.com"}, "salt-a")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if codec.Decode(raw, "salt-a") != nil {
		t.Error("expired token validated")
	}
}

func TestTokenCodecMalformedInput(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	for _, raw := range []string{"", "   ", "garbage", "a.b.c", "eyJhbGciOiJub25lIn0.e30."} {
		if codec.Decode(raw, "salt-a") != nil {
			t.Errorf("Decode(%q) returned non-nil", raw)
		}
	}
}

func TestTokenCodecEmptySecret(t *testing.T) {
	if _, err := NewTokenCodec("   ", "authcore-test", time.Hour); err == nil {
		t.Error("expected error for blank secret")
	}
}
