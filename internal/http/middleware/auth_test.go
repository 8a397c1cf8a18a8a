package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/trainwise-backend/internal/platform/ctxutil"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func serveAuth(t *testing.T, cfg AuthConfig, header string) (*httptest.ResponseRecorder, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var seen uuid.UUID
	r := gin.New()
	r.Use(NewAuthMiddleware(nil, cfg).RequireAuth())
	r.GET("/me", func(c *gin.Context) {
		seen = ctxutil.UserID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec, seen
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	uid := uuid.New()
	rec, seen := serveAuth(t, AuthConfig{SecretKey: testSecret}, "Bearer "+signToken(t, testSecret, uid.String(), time.Now().Add(time.Hour)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}
	if seen != uid {
		t.Fatalf("user id: want=%s got=%s", uid, seen)
	}
}

func TestRequireAuthRejects(t *testing.T) {
	uid := uuid.NewString()
	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Basic abc"},
		{"wrong secret", "Bearer " + signToken(t, "other", uid, time.Now().Add(time.Hour))},
		{"expired", "Bearer " + signToken(t, testSecret, uid, time.Now().Add(-time.Hour))},
		{"bad subject", "Bearer " + signToken(t, testSecret, "not-a-uuid", time.Now().Add(time.Hour))},
	}
	for _, tc := range cases {
		rec, _ := serveAuth(t, AuthConfig{SecretKey: testSecret}, tc.header)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: want=401 got=%d", tc.name, rec.Code)
		}
	}
}

func TestRequireAuthDisabledAllowsAnonymous(t *testing.T) {
	rec, seen := serveAuth(t, AuthConfig{Disabled: true}, "")
	if rec.Code != http.StatusOK || seen != uuid.Nil {
		t.Fatalf("anonymous: status=%d user=%s", rec.Code, seen)
	}
}
