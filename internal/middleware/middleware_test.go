package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-manager/internal/auth"
	"github.com/BruksfildServices01/event-manager/internal/infra/repository"
	"github.com/BruksfildServices01/event-manager/internal/models"
	"github.com/BruksfildServices01/event-manager/internal/ratelimit"
)

type denyAfter struct{ n int }

func (d *denyAfter) Allow(context.Context, string) (bool, error) {
	d.n--
	return d.n >= 0, nil
}

func newRouter(t *testing.T) (*gin.Engine, *auth.Authenticator, *repository.MemoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepository()
	authn := auth.NewAuthenticator(repo, "secret", time.Hour)

	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/me", AuthMiddleware(authn), func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentUser(c))
	})
	r.GET("/admin", AuthMiddleware(authn), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.POST("/login", RateLimit(&denyAfter{n: 1}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, authn, repo
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, _, repo := newRouter(t)
	ctx := context.Background()

	emp := &models.User{Email: "e@x.y"}
	_ = repo.CreateUser(ctx, emp)
	tok, _ := auth.MakeToken(emp, "secret", time.Hour)

	if w := do(r, http.MethodGet, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/me", "nope"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/me", tok); w.Code != http.StatusOK {
		t.Fatalf("valid token: %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/admin", tok); w.Code != http.StatusForbidden {
		t.Fatalf("employee on admin route: %d", w.Code)
	}

	_, _ = repo.DeleteUser(ctx, emp.ID)
	if w := do(r, http.MethodGet, "/me", tok); w.Code != http.StatusUnauthorized {
		t.Fatalf("deleted user: %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	r, _, _ := newRouter(t)

	if w := do(r, http.MethodPost, "/login", ""); w.Code != http.StatusOK {
		t.Fatalf("first attempt: %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/login", ""); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second attempt: %d", w.Code)
	}
}

func TestRateLimit_SpoofedForwardedForSharesBucket(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		t.Fatalf("SetTrustedProxies: %v", err)
	}
	r.POST("/login", RateLimit(ratelimit.NewMemoryLimiter(ctx, 1)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	passed := 0
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.10:5000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			passed++
		}
	}
	if passed != 1 {
		t.Fatalf("%d of 5 attempts passed, want 1", passed)
	}
}

func TestCORSPreflight(t *testing.T) {
	r, _, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/me", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow origin %q", got)
	}
}
