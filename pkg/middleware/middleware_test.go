package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/flow-erp-api/internal/domain"
)

type fakeValidator struct {
	claims *domain.Claims
	err    error
}

func (f fakeValidator) ValidateToken(string) (*domain.Claims, error) {
	return f.claims, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	claims := &domain.Claims{UserID: 1, UserRoleID: domain.UserRoleAdmin}

	tests := []struct {
		name      string
		path      string
		header    string
		validator fakeValidator
		expected  int
	}{
		{name: "Rota pública sem token", path: "/healthcheck", expected: http.StatusNoContent},
		{name: "Métricas sem token", path: "/metrics", expected: http.StatusNoContent},
		{name: "Sem cabeçalho", path: "/v1/kpis", expected: http.StatusUnauthorized},
		{name: "Sem prefixo Bearer", path: "/v1/kpis", header: "abc", expected: http.StatusUnauthorized},
		{name: "Token inválido", path: "/v1/kpis", header: "Bearer abc", validator: fakeValidator{err: errors.New("x")}, expected: http.StatusUnauthorized},
		{name: "Token válido", path: "/v1/kpis", header: "Bearer abc", validator: fakeValidator{claims: claims}, expected: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		middleware func(http.Handler) http.Handler
		expected   int
	}{
		{name: "Sem autenticação", middleware: AdminOnly(), expected: http.StatusUnauthorized},
		{name: "Admin acessa rota de admin", claims: &domain.Claims{UserRoleID: domain.UserRoleAdmin}, middleware: AdminOnly(), expected: http.StatusNoContent},
		{name: "Vendedor barrado em rota de admin", claims: &domain.Claims{UserRoleID: domain.UserRoleSeller}, middleware: AdminOnly(), expected: http.StatusForbidden},
		{name: "Vendedor acessa rota de vendas", claims: &domain.Claims{UserRoleID: domain.UserRoleSeller}, middleware: AdminOrSeller(), expected: http.StatusNoContent},
		{name: "Produção barrada em rota de vendas", claims: &domain.Claims{UserRoleID: domain.UserRoleProduction}, middleware: AdminOrSeller(), expected: http.StatusForbidden},
		{name: "Produção acessa rota comum", claims: &domain.Claims{UserRoleID: domain.UserRoleProduction}, middleware: AllRoles(), expected: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
			if tt.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, tt.claims))
			}
			rec := httptest.NewRecorder()

			tt.middleware(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/cards", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/cards", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware_PropagatesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/kpis", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()

	LoggingMiddleware()(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("falhou") })
	rec := httptest.NewRecorder()

	LogPanicMiddleware()(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
