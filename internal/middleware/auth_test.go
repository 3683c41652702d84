package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsync/internal/config"
	"partsync/internal/domain"
	"partsync/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testJWT = &config.JWTConfig{Secret: "test-secret", Issuer: "shop-idp", Audience: "partsync"}

func signToken(t *testing.T, secret string, claims middleware.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(role domain.UserRole) middleware.Claims {
	now := time.Now()
	return middleware.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "jlee",
			Issuer:    "shop-idp",
			Audience:  jwt.ClaimStrings{"partsync"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email: "jlee@shop.test",
		Role:  role,
	}
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(middleware.NewTokenVerifier(testJWT)))
	r.GET("/test", func(c *gin.Context) {
		sub, _ := middleware.GetSubject(c)
		c.JSON(http.StatusOK, gin.H{"subject": sub, "role": middleware.GetRole(c)})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, testJWT.Secret, validClaims(domain.RoleEngineer))

	w := doGet(newAuthRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jlee", resp["subject"])
	assert.Equal(t, "engineer", resp["role"])
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := validClaims(domain.RoleEngineer)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongAudience := validClaims(domain.RoleEngineer)
	wrongAudience.Audience = jwt.ClaimStrings{"other"}

	wrongIssuer := validClaims(domain.RoleEngineer)
	wrongIssuer.Issuer = "someone-else"

	noSubject := validClaims(domain.RoleEngineer)
	noSubject.Subject = ""

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", validClaims(domain.RoleEngineer))},
		{"expired", "Bearer " + signToken(t, testJWT.Secret, expired)},
		{"wrong audience", "Bearer " + signToken(t, testJWT.Secret, wrongAudience)},
		{"wrong issuer", "Bearer " + signToken(t, testJWT.Secret, wrongIssuer)},
		{"no subject", "Bearer " + signToken(t, testJWT.Secret, noSubject)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(newAuthRouter(), tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(middleware.NewTokenVerifier(testJWT)))
	r.GET("/test", middleware.RequireRole(domain.RoleEngineer), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	engineer := signToken(t, testJWT.Secret, validClaims(domain.RoleEngineer))
	operator := signToken(t, testJWT.Secret, validClaims(domain.RoleOperator))

	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+engineer).Code)
	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+operator).Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"http://localhost:3000"}))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/test", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Origin", "http://evil.test")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(middleware.ContextKeyRequestID)) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
