package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/incidentline/authcore/internal/constants"
	"github.com/incidentline/authcore/internal/model"
)

func TestIssueSetsBothVariantsOverTLS(t *testing.T) {
	issuer := newTestIssuer(t)

	c, rec := newGinContext(t, http.MethodPost, "/api/auth/login")
	c.Request.Header.Set(constants.HeaderXForwardedProto, "https")

	user := &model.User{Name: "A", Email: "a@example.com", SystemRole: constants.SystemRoleStandard}
	user.ID = 1

	marker, err := issuer.Issue(c, user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if marker == "" {
		t.Fatal("empty session marker")
	}

	byName := map[string]*http.Cookie{}
	for _, cookie := range rec.Result().Cookies() {
		byName[cookie.Name] = cookie
	}

	plain, ok := byName[constants.SessionCookieName]
	if !ok {
		t.Fatal("plain cookie missing")
	}
	secure, ok := byName[constants.SecureSessionCookieName]
	if !ok {
		t.Fatal("secure cookie missing on TLS request")
	}

	if plain.Secure {
		t.Error("plain variant carries Secure attribute")
	}
	if !secure.Secure {
		t.Error("secure variant missing Secure attribute")
	}
	if plain.Value == secure.Value {
		t.Error("variants share a signed artifact; salts are not isolating them")
	}
	if marker != plain.Value {
		t.Error("marker is not the plain-variant token")
	}
}

func TestDecodeFromRequestEitherVariant(t *testing.T) {
	issuer := newTestIssuer(t)
	user := &model.User{Name: "A", Email: "a@example.com", SystemRole: constants.SystemRoleStandard}
	user.ID = 1

	// Mint both artifacts via a TLS-looking request.
	c, rec := newGinContext(t, http.MethodPost, "/login")
	c.Request.Header.Set(constants.HeaderXForwardedProto, "https")
	if _, err := issuer.Issue(c, user); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, cookie := range rec.Result().Cookies() {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})

		claims := issuer.DecodeFromRequest(req)
		if claims == nil {
			t.Errorf("variant %s alone did not authenticate", cookie.Name)
			continue
		}
		if claims.Email != "a@example.com" {
			t.Errorf("claims email = %q", claims.Email)
		}
	}
}

func TestDecodeFromRequestRejectsSwappedValues(t *testing.T) {
	issuer := newTestIssuer(t)
	user := &model.User{Email: "a@example.com"}
	user.ID = 1

	c, rec := newGinContext(t, http.MethodPost, "/login")
	c.Request.Header.Set(constants.HeaderXForwardedProto, "https")
	if _, err := issuer.Issue(c, user); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	values := map[string]string{}
	for _, cookie := range rec.Result().Cookies() {
		values[cookie.Name] = cookie.Value
	}

	// A plain-variant token presented under the secure cookie name (and vice
	// versa) must not validate.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: constants.SecureSessionCookieName, Value: values[constants.SessionCookieName]})
	req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: values[constants.SecureSessionCookieName]})

	if issuer.DecodeFromRequest(req) != nil {
		t.Error("cross-variant token values authenticated")
	}
}

func TestRawTokenFromRequest(t *testing.T) {
	issuer := newTestIssuer(t)
	user := &model.User{Email: "a@example.com"}
	user.ID = 1

	c, rec := newGinContext(t, http.MethodPost, "/login")
	marker, err := issuer.Issue(c, user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/token", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}

	if got := issuer.RawTokenFromRequest(req); got != marker {
		t.Error("raw token does not match the issued marker")
	}

	empty := httptest.NewRequest(http.MethodGet, "/api/auth/token", nil)
	if issuer.RawTokenFromRequest(empty) != "" {
		t.Error("raw token returned for a cookieless request")
	}
}

func TestRequestIsSecure(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if RequestIsSecure(plain) {
		t.Error("plain request reported secure")
	}

	forwarded := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	forwarded.Header.Set(constants.HeaderXForwardedProto, "https")
	if !RequestIsSecure(forwarded) {
		t.Error("forwarded TLS request not reported secure")
	}
}
