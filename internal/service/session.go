package service

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/incidentline/authcore/internal/constants"
	"github.com/incidentline/authcore/internal/model"
)

// CookieVariant describes one signed session cookie convention. Adding a new
// client convention means appending a tuple here, not a new code path.
type CookieVariant struct {
	Name string
	Salt string
	// SecureOnly variants are emitted only when the request arrived over an
	// encrypted transport, and carry the Secure attribute.
	SecureOnly bool
}

// DefaultCookieVariants returns the two conventions every deployment checks:
// a plain-scheme cookie and a __Secure- prefixed one.
func DefaultCookieVariants() []CookieVariant {
	return []CookieVariant{
		{Name: constants.SessionCookieName, Salt: constants.SessionCookieSalt},
		{Name: constants.SecureSessionCookieName, Salt: constants.SecureSessionCookieSalt, SecureOnly: true},
	}
}

// SessionIssuer mints session tokens for verified users and writes them as
// cookies, one signed artifact per configured variant.
type SessionIssuer struct {
	codec    *TokenCodec
	variants []CookieVariant
	domain   string
	// primarySecure mirrors the deployment's primary URL scheme and decides
	// which variant the resolver tries first on inbound requests.
	primarySecure bool
}

func NewSessionIssuer(codec *TokenCodec, variants []CookieVariant, domain string, primarySecure bool) *SessionIssuer {
	return &SessionIssuer{
		codec:         codec,
		variants:      variants,
		domain:        domain,
		primarySecure: primarySecure,
	}
}

// ClaimsFor builds the session payload for a verified user. The effective
// system role is computed here once and travels inside the token.
func (s *SessionIssuer) ClaimsFor(user *model.User) *SessionClaims {
	return &SessionClaims{
		Name:       user.Name,
		Email:      user.Email,
		Avatar:     user.Avatar,
		Role:       user.Role,
		SystemRole: user.EffectiveRole(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatUint(uint64(user.ID), 10),
		},
	}
}

// Issue signs and sets every applicable cookie variant for the request's
// transport and returns the plain-variant token, which doubles as the opaque
// session marker handed to the mobile client.
func (s *SessionIssuer) Issue(c *gin.Context, user *model.User) (string, error) {
	requestSecure := RequestIsSecure(c.Request)
	maxAge := int(s.codec.TTL().Seconds())

	var marker string
	for _, v := range s.variants {
		if v.SecureOnly && !requestSecure {
			continue
		}

		token, err := s.codec.Encode(s.ClaimsFor(user), v.Salt)
		if err != nil {
			return "", err
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     v.Name,
			Value:    token,
			Path:     "/",
			Domain:   s.domain,
			MaxAge:   maxAge,
			HttpOnly: true,
			Secure:   v.SecureOnly,
			SameSite: http.SameSiteLaxMode,
		})

		if marker == "" || !v.SecureOnly {
			marker = token
		}
	}

	return marker, nil
}

// Clear unconditionally overwrites every variant with an empty value and
// zero max-age, whether or not a session was present.
func (s *SessionIssuer) Clear(c *gin.Context) {
	for _, v := range s.variants {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     v.Name,
			Value:    "",
			Path:     "/",
			Domain:   s.domain,
			MaxAge:   -1, // emits Max-Age=0
			HttpOnly: true,
			Secure:   v.SecureOnly,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// DecodeFromRequest recovers session claims from whichever cookie variant
// the client actually sent. The variant matching the deployment's primary
// scheme is tried first, then the others: a TLS-terminating proxy can leave
// either cookie name in play, and neither order may lock a session out.
func (s *SessionIssuer) DecodeFromRequest(r *http.Request) *SessionClaims {
	for _, v := range s.orderedVariants() {
		cookie, err := r.Cookie(v.Name)
		if err != nil || cookie.Value == "" {
			continue
		}
		if claims := s.codec.Decode(cookie.Value, v.Salt); claims != nil {
			return claims
		}
	}
	return nil
}

// RawTokenFromRequest returns the raw cookie value that validates, for the
// mobile bridge reading the current web-side session.
func (s *SessionIssuer) RawTokenFromRequest(r *http.Request) string {
	for _, v := range s.orderedVariants() {
		cookie, err := r.Cookie(v.Name)
		if err != nil || cookie.Value == "" {
			continue
		}
		if s.codec.Decode(cookie.Value, v.Salt) != nil {
			return cookie.Value
		}
	}
	return ""
}

func (s *SessionIssuer) orderedVariants() []CookieVariant {
	ordered := make([]CookieVariant, 0, len(s.variants))
	for _, v := range s.variants {
		if v.SecureOnly == s.primarySecure {
			ordered = append(ordered, v)
		}
	}
	for _, v := range s.variants {
		if v.SecureOnly != s.primarySecure {
			ordered = append(ordered, v)
		}
	}
	return ordered
}

// RequestIsSecure reports whether the request arrived over an encrypted
// transport, directly or behind a forwarding proxy.
func RequestIsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get(constants.HeaderXForwardedProto), "https")
}
