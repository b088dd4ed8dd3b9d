package bootstrap_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-appointment-scheduling/cmd/bootstrap"
	"go-appointment-scheduling/config"
	"go-appointment-scheduling/internal/testutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()

	db := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)
	log := testutil.NewLogger()

	cfg := &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: time.Hour,
		},
		Admin:     adminConfig,
		Cache:     config.CacheConfig{DashboardTTL: time.Second},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
	}
	require.NoError(t, bootstrap.SeedAdmin(context.Background(), db, log, cfg.Admin))

	return &apiClient{
		t:       t,
		handler: bootstrap.NewHandler(cfg, db, rdb, log, prometheus.NewRegistry()),
	}
}

func (c *apiClient) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (c *apiClient) login(email, password string) string {
	c.t.Helper()
	rec, env := c.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(c.t, json.Unmarshal(env.Data, &tokens))
	return tokens.AccessToken
}

func decodeID(t *testing.T, env envelope) string {
	t.Helper()
	var v struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	require.NotEmpty(t, v.ID)
	return v.ID
}

func TestAPI_AppointmentLifecycle(t *testing.T) {
	api := newAPI(t)
	admin := api.login(adminConfig.Email, adminConfig.Password)

	rec, env := api.do(http.MethodPost, "/api/v1/users", admin, map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "secret123", "role": "CLIENT",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	anaID := decodeID(t, env)

	rec, env = api.do(http.MethodPost, "/api/v1/users", admin, map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "secret123", "role": "PROFESSIONAL",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	bobID := decodeID(t, env)

	rec, env = api.do(http.MethodPost, "/api/v1/services", admin, map[string]interface{}{
		"name": "Haircut", "duration": "30 min", "price": 20,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	serviceID := decodeID(t, env)

	rec, env = api.do(http.MethodPost, "/api/v1/professionals", admin, map[string]string{
		"user_id": bobID, "specialty": "Barber",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	professionalID := decodeID(t, env)

	rec, env = api.do(http.MethodPost, "/api/v1/appointments", admin, map[string]interface{}{
		"user_id":         anaID,
		"service_id":      serviceID,
		"professional_id": professionalID,
		"date_time":       time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	appointmentID := decodeID(t, env)

	var projection struct {
		Status                string `json:"status"`
		UserName              string `json:"user_name"`
		ServiceName           string `json:"service_name"`
		ServicePrice          string `json:"service_price"`
		ProfessionalName      string `json:"professional_name"`
		ProfessionalSpecialty string `json:"professional_specialty"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &projection))
	assert.Equal(t, "PENDING", projection.Status)
	assert.Equal(t, "Ana", projection.UserName)
	assert.Equal(t, "Haircut", projection.ServiceName)
	assert.Equal(t, "20", projection.ServicePrice)
	assert.Equal(t, "Bob", projection.ProfessionalName)
	assert.Equal(t, "Barber", projection.ProfessionalSpecialty)

	rec, env = api.do(http.MethodPatch, "/api/v1/appointments/"+appointmentID+"/status", admin, map[string]string{"status": "CONFIRMED"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &projection))
	assert.Equal(t, "CONFIRMED", projection.Status)

	rec, _ = api.do(http.MethodPatch, "/api/v1/appointments/"+appointmentID+"/status", admin, map[string]string{"status": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec, _ = api.do(http.MethodGet, "/api/v1/appointments/status/CONFIRMED", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(http.MethodDelete, "/api/v1/appointments/"+appointmentID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = api.do(http.MethodGet, "/api/v1/appointments/"+appointmentID, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/v1/services/"+serviceID, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_ErrorMapping(t *testing.T) {
	api := newAPI(t)
	admin := api.login(adminConfig.Email, adminConfig.Password)

	rec, _ := api.do(http.MethodPost, "/api/v1/users", admin, map[string]string{
		"name": "Other", "email": adminConfig.Email, "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = api.do(http.MethodPost, "/api/v1/users", admin, map[string]string{"name": "A"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(http.MethodPost, "/api/v1/appointments", admin, map[string]interface{}{
		"user_id":         "5b8c7f7e-7d4a-4c4e-9a55-0c1f1c7a3f10",
		"service_id":      "5b8c7f7e-7d4a-4c4e-9a55-0c1f1c7a3f11",
		"professional_id": "5b8c7f7e-7d4a-4c4e-9a55-0c1f1c7a3f12",
		"date_time":       time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(http.MethodPost, "/api/v1/appointments", admin, map[string]interface{}{
		"user_id":         "5b8c7f7e-7d4a-4c4e-9a55-0c1f1c7a3f10",
		"service_id":      "5b8c7f7e-7d4a-4c4e-9a55-0c1f1c7a3f11",
		"professional_id": "5b8c7f7e-7d4a-4c4e-9a55-0c1f1c7a3f12",
		"date_time":       time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/v1/services/not-a-uuid", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/v1/services/price-range?min=50&max=10", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_AuthAndRoles(t *testing.T) {
	api := newAPI(t)
	admin := api.login(adminConfig.Email, adminConfig.Password)

	rec, _ := api.do(http.MethodGet, "/api/v1/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = api.do(http.MethodPost, "/api/v1/users", admin, map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "secret123", "role": "CLIENT",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	client := api.login("ana@example.com", "secret123")

	rec, _ = api.do(http.MethodGet, "/api/v1/services", client, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/v1/users", client, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/v1/audit-logs", client, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/v1/audit-logs", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(http.MethodPost, "/api/v1/auth/logout", client, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/v1/auth/me", client, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_Infrastructure(t *testing.T) {
	api := newAPI(t)
	admin := api.login(adminConfig.Email, adminConfig.Password)

	rec, _ := api.do(http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, env := api.do(http.MethodGet, "/api/v1/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		ActiveUsers int64 `json:"active_users"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.ActiveUsers)

	rec, _ = api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/api/v1/health",status_code="200"} 1`)

	rec, _ = api.do(http.MethodOptions, "/api/v1/appointments", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
