package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(host, forwardedProto string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/api/productos/", nil)
	req.Host = host
	if forwardedProto != "" {
		req.Header.Set("X-Forwarded-Proto", forwardedProto)
	}
	c.Request = req
	return c
}

func TestAbsoluteMediaURL(t *testing.T) {
	cases := []struct {
		name   string
		proto  string
		prefix string
		ref    string
		want   string
	}{
		{name: "relative", prefix: "/media/", ref: "productos/vestido.png", want: "http://tienda.test:8000/media/productos/vestido.png"},
		{name: "leading slash", prefix: "media", ref: "/productos/vestido.png", want: "http://tienda.test:8000/media/productos/vestido.png"},
		{name: "already prefixed", prefix: "/media/", ref: "/media/productos/vestido.png", want: "http://tienda.test:8000/media/productos/vestido.png"},
		{name: "forwarded proto", proto: "https, http", prefix: "/media/", ref: "productos/a.png", want: "https://tienda.test:8000/media/productos/a.png"},
		{name: "absolute passes through", prefix: "/media/", ref: "https://cdn.test/a.png", want: "https://cdn.test/a.png"},
	}
	for _, tc := range cases {
		got := AbsoluteMediaURL(testContext("tienda.test:8000", tc.proto), tc.prefix, tc.ref)
		if got == nil || *got != tc.want {
			t.Fatalf("%s: want %q, got %v", tc.name, tc.want, got)
		}
	}

	if got := AbsoluteMediaURL(testContext("tienda.test", ""), "/media/", "  "); got != nil {
		t.Fatalf("empty reference should be nil, got %q", *got)
	}
}
