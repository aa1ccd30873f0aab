package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/wellness/wellness/internal/platform/apierr"
)

var testSigningKey = []byte("test-secret-key-for-unit-tests-only")

func createTestToken(t *testing.T, method jwt.SigningMethod, claims jwt.RegisteredClaims, key interface{}) string {
	t.Helper()
	tokenStr, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return tokenStr
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   "user-42",
		Issuer:    "wellness",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func run(t *testing.T, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/addData", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handler := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	err := BearerAuth(Config{Secret: testSigningKey, Issuer: "wellness"})(handler)(c)
	return c, err
}

func expectUnauthorized(t *testing.T, err error) {
	t.Helper()
	status, body := apierr.BodyFor(err)
	if status != http.StatusUnauthorized || body.Code != apierr.CodeUnauthorized {
		t.Errorf("expected 401 unauthorized, got %d %+v", status, body)
	}
}

func TestBearerAuth_ValidToken(t *testing.T) {
	token := createTestToken(t, jwt.SigningMethodHS256, validClaims(), testSigningKey)
	c, err := run(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := SubjectFromContext(c); got != "user-42" {
		t.Errorf("expected subject user-42, got %q", got)
	}
}

func TestBearerAuth_MissingHeader(t *testing.T) {
	c, err := run(t, "")
	expectUnauthorized(t, err)
	if SubjectFromContext(c) != "" {
		t.Error("subject should not be set")
	}
}

func TestBearerAuth_InvalidFormat(t *testing.T) {
	for _, header := range []string{"Token abc123", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz"} {
		t.Run(header, func(t *testing.T) {
			_, err := run(t, header)
			expectUnauthorized(t, err)
		})
	}
}

func TestBearerAuth_RejectedTokens(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	noSubject := validClaims()
	noSubject.Subject = ""

	tests := []struct {
		name  string
		token string
	}{
		{"expired", createTestToken(t, jwt.SigningMethodHS256, expired, testSigningKey)},
		{"wrong issuer", createTestToken(t, jwt.SigningMethodHS256, wrongIssuer, testSigningKey)},
		{"no expiry", createTestToken(t, jwt.SigningMethodHS256, noExpiry, testSigningKey)},
		{"no subject", createTestToken(t, jwt.SigningMethodHS256, noSubject, testSigningKey)},
		{"wrong key", createTestToken(t, jwt.SigningMethodHS256, validClaims(), []byte("other-key"))},
		{"hs512", createTestToken(t, jwt.SigningMethodHS512, validClaims(), testSigningKey)},
		{"garbage", "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "Bearer "+tt.token)
			expectUnauthorized(t, err)
		})
	}
}

func TestBearerAuth_CaseInsensitiveScheme(t *testing.T) {
	token := createTestToken(t, jwt.SigningMethodHS256, validClaims(), testSigningKey)
	if _, err := run(t, "bearer "+token); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
