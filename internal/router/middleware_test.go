package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handlershared "github.com/tienda-next/internal/http/handlers/shared"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("http://localhost:3000", []string{"http://localhost:3000", "https://tienda.example.com"}, false)
	if got != "http://localhost:3000" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"http://localhost:3000"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

type stubResolver struct {
	callers map[string]service.Caller
}

func (s stubResolver) ResolveCaller(_ context.Context, token string) (service.Caller, error) {
	caller, ok := s.callers[token]
	if !ok {
		return service.Anonymous(), errors.New("unexpected token") // 未映射的错误也不能降级为匿名
	}
	return caller, nil
}

func TestIdentityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(IdentityMiddleware(stubResolver{callers: map[string]service.Caller{
		"member-token": {UserID: 7},
	}}))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": handlershared.GetCaller(c).Role()})
	})

	cases := []struct {
		header string
		status int
		role   string
	}{
		{header: "", status: http.StatusOK, role: "role:anonymous"},
		{header: "Bearer member-token", status: http.StatusOK, role: "role:member"},
		{header: "bearer member-token", status: http.StatusOK, role: "role:member"},
		{header: "Basic abc", status: http.StatusUnauthorized},
		{header: "Bearer ", status: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)
		if w.Code != tc.status {
			t.Fatalf("header %q: status want %d got %d", tc.header, tc.status, w.Code)
		}
		if tc.role != "" && !strings.Contains(w.Body.String(), tc.role) {
			t.Fatalf("header %q: role want %s got %s", tc.header, tc.role, w.Body.String())
		}
	}
}

func TestIdentityMiddlewareResolverErrorIsNotAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(IdentityMiddleware(stubResolver{}))
	r.GET("/whoami", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer unknown")
	r.ServeHTTP(w, req)
	if w.Code == http.StatusOK {
		t.Fatalf("resolver failure must not fall through to the handler")
	}
}
