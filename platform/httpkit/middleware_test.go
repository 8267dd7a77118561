package httpkit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homely_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

type testJWTConfig struct{}

func (testJWTConfig) GetAdminJWTSecret() string { return testSecret }

func newAdminEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	admin := engine.Group("/admin", AuthRequired(testJWTConfig{}, nil), RequireRole(RoleAdmin))
	admin.GET("/whoami", func(c *gin.Context) {
		OK(c, gin.H{"subject": GetIdentity(c).Subject()})
	})
	return engine
}

func doGet(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequiredAcceptsAdminToken(t *testing.T) {
	token, err := IssueAdminToken(testSecret, "ops@homely.test", []string{RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec := doGet(newAdminEngine(), "/admin/whoami", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthRequiredRejectsMissingAndForeignTokens(t *testing.T) {
	engine := newAdminEngine()

	if rec := doGet(engine, "/admin/whoami", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	foreign, _ := IssueAdminToken("other-secret", "ops@homely.test", []string{RoleAdmin}, time.Hour)
	if rec := doGet(engine, "/admin/whoami", foreign); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign signature, got %d", rec.Code)
	}

	expired, _ := IssueAdminToken(testSecret, "ops@homely.test", []string{RoleAdmin}, -time.Minute)
	if rec := doGet(engine, "/admin/whoami", expired); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestRequireRoleForbidsMissingRole(t *testing.T) {
	token, _ := IssueAdminToken(testSecret, "viewer@homely.test", []string{"viewer"}, time.Hour)

	rec := doGet(newAdminEngine(), "/admin/whoami", token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRateLimitRejectsAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	limiter := NewIPRateLimiter(0, 2, nil)
	engine.GET("/ping", limiter.RateLimit(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 2; i++ {
		if rec := doGet(engine, "/ping", ""); rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, rec.Code)
		}
	}
	if rec := doGet(engine, "/ping", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", rec.Code)
	}
}

func TestHandleErrorMapsWrappedKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		err    error
		status int
		logged bool
	}{
		{"not found", apperr.NotFound("listing not found"), http.StatusNotFound, false},
		{"wrapped unavailable", errors.Join(errors.New("ctx"), apperr.Unavailable("upstream down", nil)), http.StatusBadGateway, true},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			if !HandleError(c, tc.err) {
				t.Fatalf("expected error to be handled")
			}
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if got := len(c.Errors) > 0; got != tc.logged {
				t.Fatalf("expected cause attached=%v, got %v", tc.logged, got)
			}
		})
	}
}
