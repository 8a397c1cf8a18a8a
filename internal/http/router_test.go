package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/trainwise-backend/internal/http/handlers"
	httpMW "github.com/yungbote/trainwise-backend/internal/http/middleware"
	"github.com/yungbote/trainwise-backend/internal/observability"
)

func TestRouterHealthAndTraceHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterConfig{HealthHandler: httpH.NewHealthHandler(nil)})

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set("X-Request-Id", "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: status=%d body=%q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") != "req-1" || rec.Header().Get("X-Trace-Id") == "" {
		t.Fatalf("trace headers: got=%v", rec.Header())
	}
}

func TestRouterProtectsWorkoutRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterConfig{
		AuthMiddleware: httpMW.NewAuthMiddleware(nil, httpMW.AuthConfig{SecretKey: "s"}),
		WorkoutHandler: httpH.NewWorkoutHandler(nil, nil, 0),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/workouts/generate", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: want=401 got=%d", rec.Code)
	}
}

func TestRouterServesMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.New()
	r := NewRouter(RouterConfig{Metrics: m, HealthHandler: httpH.NewHealthHandler(nil)})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `tw_api_requests_total{method="GET",route="/healthcheck",status="200"} 1`) {
		t.Fatalf("metrics body missing healthcheck series:\n%s", rec.Body.String())
	}
}
