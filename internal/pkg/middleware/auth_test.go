package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"freshstock/internal/pkg/middleware"
	"freshstock/internal/pkg/token"
)

// TestAuthMiddleware_Success garante que um token válido passa e que as
// claims anexadas ao contexto são recuperáveis pelo handler.
func TestAuthMiddleware_Success(t *testing.T) {
	tokenSvc := token.NewService("chave-de-teste", time.Hour)
	tokenString, err := tokenSvc.GenerateToken("user-1", "demo@example.com")
	assert.NoError(t, err)

	auth := middleware.NewAuthMiddleware(tokenSvc)

	var claims middleware.UserClaims
	var found bool
	handler := auth(func(w http.ResponseWriter, r *http.Request) {
		claims, found = middleware.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, found)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "demo@example.com", claims.Email)
}

// TestAuthMiddleware_Fail_MissingToken garante o 401 sem header Authorization.
func TestAuthMiddleware_Fail_MissingToken(t *testing.T) {
	auth := middleware.NewAuthMiddleware(token.NewService("chave-de-teste", time.Hour))

	handler := auth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("o handler não deveria ser alcançado sem token")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/warehouses", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestAuthMiddleware_Fail_InvalidToken garante o 401 para token assinado
// com outra chave.
func TestAuthMiddleware_Fail_InvalidToken(t *testing.T) {
	otherSvc := token.NewService("outra-chave", time.Hour)
	tokenString, err := otherSvc.GenerateToken("user-1", "demo@example.com")
	assert.NoError(t, err)

	auth := middleware.NewAuthMiddleware(token.NewService("chave-de-teste", time.Hour))
	handler := auth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("o handler não deveria ser alcançado com token inválido")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/warehouses", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestClaimsFromContext_Absent garante o retorno negativo fora do middleware.
func TestClaimsFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)

	_, found := middleware.ClaimsFromContext(req.Context())
	assert.False(t, found)
}
