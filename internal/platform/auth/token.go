package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

const tokenIssuer = "mediqueue"

var errNotAdmin = errors.New("token does not carry the admin role")

// Claims are the claims of an admin session token.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenIssuer signs and verifies HS256 admin session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for subject and its expiry.
func (t *TokenIssuer) Issue(subject string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: RoleAdmin,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses tokenStr and checks its signature, expiry, issuer and role.
func (t *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.Role != RoleAdmin {
		return nil, errNotAdmin
	}
	return claims, nil
}

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenHandler exchanges already-verified admin credentials for a session
// token. It must be mounted behind RequireAdmin.
type TokenHandler struct {
	issuer *TokenIssuer
}

func NewTokenHandler(issuer *TokenIssuer) *TokenHandler {
	return &TokenHandler{issuer: issuer}
}

func (h *TokenHandler) RegisterRoutes(admin *echo.Group) {
	admin.POST("/token", h.Issue)
}

func (h *TokenHandler) Issue(c echo.Context) error {
	token, exp, err := h.issuer.Issue(UserIDFromContext(c.Request().Context()))
	if err != nil {
		return apperr.ToHTTP(err, "Failed to issue token.")
	}
	return c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresAt: exp.UTC()})
}
