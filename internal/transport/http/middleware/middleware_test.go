package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/5-in-a-row/backend/pkg/auth"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"client": c.GetString(ClientIDKey)})
	})
	return r
}

func TestCORS(t *testing.T) {
	r := newRouter(CORSMiddleware([]string{"http://localhost:5173"}))

	cases := []struct {
		name   string
		method string
		origin string
		want   int
	}{
		{"no origin", http.MethodGet, "", http.StatusOK},
		{"allowed", http.MethodGet, "http://localhost:5173", http.StatusOK},
		{"preflight", http.MethodOptions, "http://localhost:5173", http.StatusOK},
		{"foreign", http.MethodGet, "http://evil.example", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, "/ping", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
			if tc.want == http.StatusOK && tc.origin != "" && w.Header().Get("Access-Control-Allow-Origin") != tc.origin {
				t.Fatalf("expected allow-origin header for %s", tc.origin)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware("secret"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	bad, _ := auth.GenerateToken("cli", "other-secret", time.Hour)
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+bad)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign token, got %d", w.Code)
	}

	good, _ := auth.GenerateToken("cli", "secret", time.Hour)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+good)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != `{"client":"cli"}` {
		t.Fatalf("expected 200 with client id, got %d %s", w.Code, w.Body.String())
	}
}
