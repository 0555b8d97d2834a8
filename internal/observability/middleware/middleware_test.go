package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/KasumiMercury/wake-walk-alert/internal/observability/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGin_PropagatesRequestID(t *testing.T) {
	var seen string

	r := gin.New()
	r.Use(Gin(GinConfig{Module: logging.Module("test"), TracerName: "test"}))
	r.GET("/ping", func(c *gin.Context) {
		seen = logging.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("x-request-id", "req-abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if seen != "req-abc" {
		t.Errorf("request id in context: got %q, want %q", seen, "req-abc")
	}
	if got := w.Header().Get("x-request-id"); got != "req-abc" {
		t.Errorf("response header: got %q, want %q", got, "req-abc")
	}
}

func TestGin_GeneratesRequestIDOnSkippedPath(t *testing.T) {
	var seen string

	r := gin.New()
	r.Use(Gin(GinConfig{SkipPaths: []string{"/health"}, TracerName: "test"}))
	r.GET("/health", func(c *gin.Context) {
		seen = logging.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if seen == "" {
		t.Error("expected a generated request id")
	}
}

func TestPanicRecoveryGin(t *testing.T) {
	r := gin.New()
	r.Use(PanicRecoveryGin())
	r.GET("/boom", func(c *gin.Context) {
		panic("secret internal detail")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if body := w.Body.String(); body != "Internal Server Error" {
		t.Errorf("body: got %q", body)
	}
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(rate.NewLimiter(rate.Limit(0), 1)))
	r.GET("/wake_alert", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/wake_alert", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request: got %d, want 200", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/wake_alert", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", second.Code)
	}
}
