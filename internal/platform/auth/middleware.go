package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/wellness/wellness/internal/platform/apierr"
)

// SubjectKey is the echo context key holding the authenticated token subject.
// The rate limiter reads it to key write traffic per caller.
const SubjectKey = "auth_subject"

type Claims struct {
	jwt.RegisteredClaims
}

type Config struct {
	// Secret is the shared HS256 signing key.
	Secret []byte
	Issuer string
}

// BearerAuth validates an HS256 bearer token and stores its subject on the
// echo context. Requests without a valid token get a 401.
func BearerAuth(cfg Config) echo.MiddlewareFunc {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	keyFunc := func(*jwt.Token) (interface{}, error) { return cfg.Secret, nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized("missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return unauthorized("invalid authorization format")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, keyFunc, opts...)
			if err != nil || !token.Valid {
				return apierr.Wrap(http.StatusUnauthorized, apierr.CodeUnauthorized, "invalid token", err)
			}
			if claims.Subject == "" {
				return unauthorized("token has no subject")
			}

			c.Set(SubjectKey, claims.Subject)
			return next(c)
		}
	}
}

func unauthorized(msg string) error {
	return apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, msg)
}

// SubjectFromContext returns the subject set by BearerAuth, or "" when the
// request was not authenticated.
func SubjectFromContext(c echo.Context) string {
	sub, _ := c.Get(SubjectKey).(string)
	return sub
}
