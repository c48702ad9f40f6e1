// Package auth handles password hashing, signed session tokens and the
// middleware that resolves a session for each request.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rustyeddy/tradejournal/journal"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

const issuer = "tradejournal"

// Claims is the session payload.
type Claims struct {
	UserID             string `json:"uid"`
	Email              string `json:"email"`
	SubscriptionStatus string `json:"subscriptionStatus,omitempty"`

	jwt.RegisteredClaims
}

// ClaimsFor builds session claims for a user.
func ClaimsFor(u *journal.User) Claims {
	return Claims{
		UserID:             u.ID,
		Email:              u.Email,
		SubscriptionStatus: u.SubscriptionStatus,
	}
}

// Sessions signs and verifies HS256 session tokens.
type Sessions struct {
	Secret []byte
	TTL    time.Duration
	// Secure marks issued cookies as HTTPS only.
	Secure bool

	now func() time.Time
}

// NewSessions returns a session signer.
func NewSessions(secret string, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{Secret: []byte(secret), TTL: ttl, Secure: secure, now: time.Now}
}

func (s *Sessions) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

// Sign issues a token for claims with a fresh expiry. Registered time claims
// already present are replaced.
func (s *Sessions) Sign(claims Claims) (token string, expiresAt time.Time, err error) {
	now := s.clock()
	expiresAt = now.Add(s.TTL)

	claims.Issuer = issuer
	claims.Subject = claims.UserID
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now.Add(-5 * time.Second))
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify parses a token and checks its signature and expiry.
func (s *Sessions) Verify(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.clock),
	)
	if err != nil {
		return Claims{}, err
	}
	c, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || c.UserID == "" {
		return Claims{}, errors.New("invalid token")
	}
	return *c, nil
}

// SetCookie signs claims and writes them as the session cookie.
func (s *Sessions) SetCookie(w http.ResponseWriter, claims Claims) (string, error) {
	token, expires, err := s.Sign(claims)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// ClearCookie removes the session cookie.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type ctxKey int

const claimsKey ctxKey = 1

// ClaimsFromContext returns the session stored by Middleware.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}

// WithClaims stores a session in ctx.
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// Middleware requires a valid session from the session cookie or an
// Authorization bearer header. Requests without one get unauthorized. An
// invalid cookie is cleared. Cookie sessions are re-issued with a fresh expiry
// on GET requests.
func Middleware(s *Sessions, unauthorized http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, fromCookie := sessionToken(r)
			if token == "" {
				unauthorized(w, r)
				return
			}

			claims, err := s.Verify(token)
			if err != nil {
				if fromCookie {
					s.ClearCookie(w)
				}
				unauthorized(w, r)
				return
			}

			if fromCookie && r.Method == http.MethodGet {
				// A failed refresh leaves the current cookie in place.
				_, _ = s.SetCookie(w, claims)
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func sessionToken(r *http.Request) (token string, fromCookie bool) {
	if tok := bearerToken(r.Header.Get("Authorization")); tok != "" {
		return tok, false
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}

func bearerToken(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	scheme, tok, ok := strings.Cut(v, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}
