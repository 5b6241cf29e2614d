package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/meal-planner-service/internal/circuitbreaker"
	"github.com/guttosm/meal-planner-service/internal/domain/dto"
	"github.com/guttosm/meal-planner-service/internal/middleware"
	"github.com/guttosm/meal-planner-service/internal/optimizer"
	"github.com/guttosm/meal-planner-service/internal/repository"
	"github.com/guttosm/meal-planner-service/internal/service"
)

func TestRouter_Authentication(t *testing.T) {
	verifier, err := middleware.NewTokenVerifier("test-secret", "meal-planner")
	require.NoError(t, err)

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	cfg.EnableAuth = true
	cfg.APIKeys = map[string]bool{"key-123": true}
	cfg.TokenVerifier = verifier

	router := NewRouter(Handlers{
		Plan:     NewPlanHandler(&fakePlanner{}, dto.PlanLimits{}),
		Catalogs: NewCatalogHandler(&fakeCatalogs{}, nil),
		History:  NewHistoryHandler(&fakeHistory{}),
	}, NewHealthHandler(), cfg)

	token := func(scopes ...string) string {
		tok, err := verifier.Issue("alice", scopes, time.Minute)
		require.NoError(t, err)
		return "Bearer " + tok
	}
	catalogBody := `{"name": "weekly", "catalog": ` + riceAndBeansJSON + `}`

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		header     string
		value      string
		wantStatus int
	}{
		{name: "no credentials", method: http.MethodGet, path: "/api/plans", wantStatus: http.StatusUnauthorized},
		{name: "wrong api key", method: http.MethodGet, path: "/api/plans", header: middleware.APIKeyHeader, value: "nope", wantStatus: http.StatusUnauthorized},
		{name: "api key has every scope", method: http.MethodPut, path: "/api/catalogs", body: catalogBody, header: middleware.APIKeyHeader, value: "key-123", wantStatus: http.StatusCreated},
		{name: "token with read scope", method: http.MethodGet, path: "/api/plans", header: middleware.AuthorizationHeader, value: token(middleware.ScopeReadHistory), wantStatus: http.StatusOK},
		{name: "token missing catalog scope", method: http.MethodPut, path: "/api/catalogs", body: catalogBody, header: middleware.AuthorizationHeader, value: token(middleware.ScopeReadHistory), wantStatus: http.StatusForbidden},
		{name: "token missing plan scope", method: http.MethodPost, path: "/api/plan", body: `{"preferences": {"desired_meal_count": 1}}`, header: middleware.AuthorizationHeader, value: token(middleware.ScopeReadHistory), wantStatus: http.StatusForbidden},
		{name: "token with plan scope", method: http.MethodPost, path: "/api/plan", body: `{"preferences": {"desired_meal_count": 1}}`, header: middleware.AuthorizationHeader, value: token(middleware.ScopePlan), wantStatus: http.StatusOK},
		{name: "garbage token", method: http.MethodGet, path: "/api/plans", header: middleware.AuthorizationHeader, value: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
		{name: "health stays public", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := testRouter(Handlers{})

	w := do(router, http.MethodGet, "/api/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := testRouter(Handlers{})

	w := do(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "meal_planner_")
}

func TestRouter_IdempotentPlan(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	planner := service.NewMealPlannerService()
	router := NewRouter(Handlers{Plan: NewPlanHandler(planner, dto.PlanLimits{})}, nil, cfg)

	body := `{"catalog": ` + riceAndBeansJSON + `, "preferences": {"budget": 100, "calorie_cap_per_recipe": 600, "desired_meal_count": 2}}`
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.IdempotencyKeyHeader, "plan-once")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	require.Equal(t, http.StatusOK, first.Code)
	second := send()
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get("Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestRouter_IdempotentReplayChecksScope(t *testing.T) {
	verifier, err := middleware.NewTokenVerifier("test-secret", "meal-planner")
	require.NoError(t, err)

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	cfg.EnableAuth = true
	cfg.TokenVerifier = verifier
	planner := service.NewMealPlannerService()
	router := NewRouter(Handlers{Plan: NewPlanHandler(planner, dto.PlanLimits{})}, nil, cfg)

	token := func(scopes ...string) string {
		tok, err := verifier.Issue("alice", scopes, time.Minute)
		require.NoError(t, err)
		return "Bearer " + tok
	}
	writer := token(middleware.ScopePlan)
	reader := token(middleware.ScopeReadHistory)

	body := `{"catalog": ` + riceAndBeansJSON + `, "preferences": {"budget": 100, "desired_meal_count": 1}}`
	send := func(auth, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.AuthorizationHeader, auth)
		if key != "" {
			req.Header.Set(middleware.IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusForbidden, send(reader, "").Code)

	first := send(writer, "k")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get(middleware.IdempotencyReplayedHeader))

	replayed := send(reader, "k")
	assert.Equal(t, http.StatusForbidden, replayed.Code)
	assert.Empty(t, replayed.Header().Get(middleware.IdempotencyReplayedHeader))

	again := send(writer, "k")
	assert.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, "true", again.Header().Get(middleware.IdempotencyReplayedHeader))
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Run("no dependencies", func(t *testing.T) {
		router := testRouter(Handlers{})

		w := do(router, http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusOK, w.Code)

		var body readiness
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "ok", body.Checks["service"])
	})

	t.Run("failing checker", func(t *testing.T) {
		health := NewHealthHandler()
		health.RegisterChecker("mongodb", CheckerFunc(func(context.Context) error {
			return errors.New("connection refused")
		}))
		router := NewRouter(Handlers{}, health, DefaultRouterConfig())

		w := do(router, http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var body readiness
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "connection refused", body.Checks["mongodb"])
	})

	t.Run("open breaker", func(t *testing.T) {
		cfg := circuitbreaker.DefaultConfig("plan_runs")
		cfg.FailureThreshold = 1
		cb := circuitbreaker.New(cfg)
		_ = cb.Execute(context.Background(), func(context.Context) error { return errors.New("down") })

		health := NewHealthHandler()
		health.RegisterCircuitBreaker("plan_runs", cb)
		health.RegisterCircuitBreaker("catalogs", circuitbreaker.New(circuitbreaker.DefaultConfig("catalogs")))
		router := NewRouter(Handlers{}, health, DefaultRouterConfig())

		w := do(router, http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var body readiness
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Breakers, 2)
		assert.Equal(t, "catalogs", body.Breakers[0].Name)
		assert.Equal(t, "open", body.Breakers[1].State)
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &dto.ValidationError{Field: "x", Message: "bad"}, http.StatusBadRequest, dto.ErrCodeInvalidRequest},
		{"model build", &optimizer.ModelBuildError{Message: "bad proportion", Err: optimizer.ErrInvalidInput}, http.StatusBadRequest, dto.ErrCodeInvalidRequest},
		{"invariant", &optimizer.InvariantViolation{Check: "distinct"}, http.StatusInternalServerError, dto.ErrCodeInvariantViolation},
		{"no catalog", service.ErrNoActiveCatalog, http.StatusNotFound, dto.ErrCodeNotFound},
		{"conflict", repository.ErrVersionConflict, http.StatusConflict, dto.ErrCodeConflict},
		{"storage off", service.ErrRepositoryNotConfigured, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable},
		{"breaker open", circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, dto.ErrCodeTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := classify(tt.err)
			assert.Equal(t, tt.wantStatus, f.status)
			assert.Equal(t, tt.wantCode, f.code)
			assert.NotEmpty(t, f.messageKey)
		})
	}
}
