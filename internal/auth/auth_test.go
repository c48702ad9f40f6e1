package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rustyeddy/tradejournal/journal"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, CheckPassword(hash, "correct horse"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong horse"), ErrInvalidCredentials)
	assert.ErrorIs(t, CheckPassword("not-a-hash", "correct horse"), ErrInvalidCredentials)

	_, err = HashPassword("short", bcrypt.MinCost)
	assert.Error(t, err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewSessions(testSecret, time.Hour, false)
	user := &journal.User{ID: "u1", Email: "a@b.c", SubscriptionStatus: journal.SubscriptionActive}

	token, expires, err := s.Sign(ClaimsFor(user))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, journal.SubscriptionActive, claims.SubscriptionStatus)
	assert.Equal(t, "u1", claims.Subject)
}

func TestVerifyRejects(t *testing.T) {
	t.Parallel()

	s := NewSessions(testSecret, time.Hour, false)
	token, _, err := s.Sign(Claims{UserID: "u1"})
	require.NoError(t, err)

	other := NewSessions("ffffffffffffffffffffffffffffffff", time.Hour, false)
	_, err = other.Verify(token)
	assert.Error(t, err, "wrong secret")

	_, err = s.Verify(token + "x")
	assert.Error(t, err, "tampered")

	expired := NewSessions(testSecret, time.Hour, false)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Sign(Claims{UserID: "u1"})
	require.NoError(t, err)
	_, err = s.Verify(old)
	assert.Error(t, err, "expired")

	anon, _, err := s.Sign(Claims{})
	require.NoError(t, err)
	_, err = s.Verify(anon)
	assert.Error(t, err, "no user id")
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bearerToken(tt.in), tt.in)
	}
}

func newProtected(s *Sessions) http.Handler {
	unauthorized := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	return Middleware(s, unauthorized)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := ClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(c.UserID))
	}))
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	s := NewSessions(testSecret, 24*time.Hour, false)
	h := newProtected(s)
	token, _, err := s.Sign(Claims{UserID: "u1"})
	require.NoError(t, err)

	t.Run("missing session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", rec.Body.String())
		assert.Nil(t, sessionCookie(rec), "bearer sessions are not re-issued")
	})

	t.Run("cookie get re-issues", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		c := sessionCookie(rec)
		require.NotNil(t, c)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		claims, err := s.Verify(c.Value)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
	})

	t.Run("cookie post not re-issued", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("invalid cookie cleared", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		c := sessionCookie(rec)
		require.NotNil(t, c)
		assert.Empty(t, c.Value)
		assert.Less(t, c.MaxAge, 0)
	})
}

func TestDecoyAlwaysRejects(t *testing.T) {
	t.Parallel()

	d := NewDecoy(bcrypt.MinCost)
	assert.False(t, d.Used())
	assert.ErrorIs(t, d.Check("password123"), ErrInvalidCredentials)
	assert.ErrorIs(t, d.Check(""), ErrInvalidCredentials)

	// The decoy pays the same bcrypt cost as a stored password.
	cost, err := bcrypt.Cost(d.hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
	assert.True(t, d.Used())

	assert.Equal(t, bcrypt.DefaultCost, NewDecoy(0).cost)
}
