package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Akhil21232123/hirematrix/internal/config"
	"github.com/Akhil21232123/hirematrix/internal/handlers"
)

func TestHealthRoutes(t *testing.T) {
	router := chi.NewRouter()
	handler := handlers.NewHealthHandler(nil, nil, &config.Config{Provider: "groq"}, nil, nil)

	HealthRoutes(router, handler)

	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("/healthz route not registered correctly, got status %d", rec.Code)
	}
}

func TestInterviewRoutesRegistersEndpoints(t *testing.T) {
	router := chi.NewRouter()
	logger := zap.NewNop()
	cfg := &config.Config{JWTSecret: "secret", RoundSeconds: 1200}
	interviewHandler := handlers.NewInterviewHandler(cfg, nil, nil, nil, nil, nil, nil, logger)
	runHandler := handlers.NewRunHandler(nil, logger)
	adminHandler := handlers.NewAdminHandler(nil, nil, logger)

	InterviewRoutes(router, cfg.JWTSecret, interviewHandler, runHandler)
	AdminRoutes(router, "admin-secret", adminHandler)

	paths := map[string]bool{}
	if err := chi.Walk(router, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		paths[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("failed walking routes: %v", err)
	}

	expected := []string{
		"POST /api/v1/interview/start",
		"POST /api/v1/interview/round",
		"POST /api/v1/interview/next",
		"POST /api/v1/interview/submit",
		"POST /api/v1/interview/answer",
		"POST /api/v1/interview/validate-answer",
		"POST /api/v1/interview/breach",
		"POST /api/v1/interview/run",
		"GET /api/v1/admin/candidates",
		"GET /api/v1/admin/live",
	}

	for _, route := range expected {
		if !paths[route] {
			t.Fatalf("route %q not registered, have %v", route, paths)
		}
	}
}
