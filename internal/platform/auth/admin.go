// Package auth guards the catalog administration endpoints. Administrators
// authenticate with HTTP Basic credentials or, when a signing secret is
// configured, with a short-lived bearer token obtained from the token
// endpoint.
package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserRolesKey contextKey = "user_roles"

	RoleAdmin = "admin"

	realm = `Basic realm="MediQueue Admin"`
)

// AdminConfig holds the administrator credentials. When PasswordHash is set
// it is a bcrypt hash and Password is ignored. Tokens may be nil, in which
// case bearer tokens are rejected.
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
	Tokens       *TokenIssuer
}

// RequireAdmin rejects requests without valid administrator credentials with
// 401 and a Basic challenge.
func RequireAdmin(cfg AdminConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := authenticate(c.Request(), cfg)
			if !ok {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, realm)
				return echo.NewHTTPError(http.StatusUnauthorized, apperr.Message{Message: "Admin authentication required."})
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, UserIDKey, user)
			ctx = context.WithValue(ctx, UserRolesKey, []string{RoleAdmin})
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func authenticate(r *http.Request, cfg AdminConfig) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, rest, _ := strings.Cut(header, " ")

	if strings.EqualFold(scheme, "bearer") {
		if cfg.Tokens == nil {
			return "", false
		}
		claims, err := cfg.Tokens.Verify(strings.TrimSpace(rest))
		if err != nil {
			return "", false
		}
		return claims.Subject, true
	}

	user, pass, ok := r.BasicAuth()
	if !ok || !checkCredentials(cfg, user, pass) {
		return "", false
	}
	return user, true
}

func checkCredentials(cfg AdminConfig, user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.Username)) == 1
	var passOK bool
	if cfg.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(pass)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.Password)) == 1
	}
	return userOK && passOK
}

func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDKey).(string)
	return uid
}

func RolesFromContext(ctx context.Context) []string {
	roles, _ := ctx.Value(UserRolesKey).([]string)
	return roles
}

// GuardPaths applies guard only to requests whose path is in paths. It is
// used to protect the static admin page and script.
func GuardPaths(guard echo.MiddlewareFunc, paths ...string) echo.MiddlewareFunc {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		guarded := guard(next)
		return func(c echo.Context) error {
			if _, ok := set[c.Request().URL.Path]; ok {
				return guarded(c)
			}
			return next(c)
		}
	}
}
