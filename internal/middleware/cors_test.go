package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func corsRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(origins))
	router.GET("/api/rsvp-lookup", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestCORSAllowOrigin(t *testing.T) {
	cases := []struct {
		name    string
		origins []string
		request string
		want    string
	}{
		{name: "listed origin echoed", origins: []string{"https://a.com", "https://b.com"}, request: "https://b.com", want: "https://b.com"},
		{name: "unlisted falls back to first", origins: []string{"https://a.com", "https://b.com"}, request: "https://c.com", want: "https://a.com"},
		{name: "missing origin falls back to first", origins: []string{"https://a.com"}, request: "", want: "https://a.com"},
		{name: "wildcard", origins: []string{"https://a.com", "*"}, request: "https://c.com", want: "*"},
		{name: "empty list", origins: nil, request: "https://c.com", want: "*"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/rsvp-lookup", http.NoBody)
			if tc.request != "" {
				req.Header.Set("Origin", tc.request)
			}
			rec := httptest.NewRecorder()
			corsRouter(tc.origins).ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.want {
				t.Fatalf("expected allow-origin %q, got %q", tc.want, got)
			}
			if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
				t.Fatalf("expected credentials header")
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/rsvp-lookup", http.NoBody)
	req.Header.Set("Origin", "https://a.com")
	rec := httptest.NewRecorder()
	corsRouter([]string{"https://a.com"}).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("preflight must have an empty body, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET,POST,OPTIONS" {
		t.Fatalf("unexpected allow-methods %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Fatalf("unexpected allow-headers %q", got)
	}
}
