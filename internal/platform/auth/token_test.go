package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 8*time.Hour)
	token, exp, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(exp) < 7*time.Hour {
		t.Errorf("unexpected expiry %v", exp)
	}
	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "admin" || claims.Role != RoleAdmin {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := issuer.Issue("admin")
	if err != nil {
		t.Fatal(err)
	}
	issuer.now = time.Now
	if _, err := issuer.Verify(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	token, _, _ := NewTokenIssuer(testSecret, time.Hour).Issue("admin")
	other := NewTokenIssuer("ffffffffffffffffffffffffffffffff", time.Hour)
	if _, err := other.Verify(token); err == nil {
		t.Error("expected signature mismatch")
	}
}

func TestTokenIssuer_RejectsNonAdminRole(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "frontdesk",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "staff",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenIssuer(testSecret, time.Hour).Verify(token); err == nil {
		t.Error("expected non-admin token to be rejected")
	}
}

func TestTokenIssuer_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Role:             RoleAdmin,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenIssuer(testSecret, time.Hour).Verify(token); err == nil {
		t.Error("expected unsigned token to be rejected")
	}
}

func TestTokenHandler_Issue(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	h := NewTokenHandler(issuer)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/token", nil)
	req.SetBasicAuth("admin", "pw")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	guarded := RequireAdmin(AdminConfig{Username: "admin", Password: "pw", Tokens: issuer})(h.Issue)
	if err := guarded(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	claims, err := issuer.Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != "admin" {
		t.Errorf("expected subject admin, got %q", claims.Subject)
	}
	if resp.ExpiresAt.IsZero() {
		t.Error("expected expiry")
	}
}

func TestTokenHandler_RegisterRoutes(t *testing.T) {
	e := echo.New()
	NewTokenHandler(NewTokenIssuer(testSecret, time.Hour)).RegisterRoutes(e.Group("/api/admin"))
	for _, r := range e.Routes() {
		if r.Method == http.MethodPost && r.Path == "/api/admin/token" {
			return
		}
	}
	t.Fatal("expected POST /api/admin/token")
}
