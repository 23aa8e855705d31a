package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/people-directory-api/infrastructure/integrator/hrreport/mocks"
	"github.com/vfg2006/people-directory-api/infrastructure/repository"
	"github.com/vfg2006/people-directory-api/internal/config"
	"github.com/vfg2006/people-directory-api/internal/domain"
	"github.com/vfg2006/people-directory-api/internal/usecases/directory"
	"go.uber.org/mock/gomock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var now = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

type fakeTrigger struct {
	mu        sync.Mutex
	triggered int
}

func (f *fakeTrigger) TriggerManualSync() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggered++
	return true
}

func (f *fakeTrigger) GetStatus() map[string]any {
	return map[string]any{"sync_enabled": false}
}

func employees() []domain.Employee {
	departed := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Employee{
		{GUID: "1", FirstName: "Ana", LastName: "Lima", Email: "ana@acme.com", StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), DepartmentID: "ENG", DepartmentName: "Engineering"},
		{GUID: "2", FirstName: "Bia", LastName: "Souza", Email: "bia@acme.com", StartDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), DepartmentID: "ENG", ManagerEmail: "ana@acme.com"},
		{GUID: "3", FirstName: "Caio", LastName: "Reis", Email: "caio@acme.com", StartDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), DepartureDate: &departed, DepartmentID: "OPS", DepartmentName: "Operations"},
	}
}

type testServer struct {
	handler    http.Handler
	integrator *mocks.MockHRReportIntegrator
	trigger    *fakeTrigger
}

func newTestServer(t *testing.T, secret string) *testServer {
	ctrl := gomock.NewController(t)
	integrator := mocks.NewMockHRReportIntegrator(ctrl)

	cfg := &config.Config{
		Cache: config.Cache{TTL: 24 * time.Hour},
		Auth:  config.Auth{Secret: secret},
	}

	service := directory.NewService(cfg, integrator, repository.NewMemoryRefreshStateRepository()).
		WithClock(func() time.Time { return now })
	trigger := &fakeTrigger{}

	return &testServer{
		handler:    NewHandler(cfg, service, trigger),
		integrator: integrator,
		trigger:    trigger,
	}
}

func (s *testServer) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestDirectoryRoutes(t *testing.T) {
	srv := newTestServer(t, "")
	srv.integrator.EXPECT().GetEmployees(gomock.Any()).Return(employees(), nil).Times(1)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		validate   func(t *testing.T, body map[string]any)
	}{
		{
			name:       "Lista funcionários ativos",
			path:       "/v1/employees",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				assert.Len(t, body["employees"], 2)
			},
		},
		{
			name:       "Lista com desligados e filtro",
			path:       "/v1/employees?includePastEmployees=true&departmentId=OPS",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				list := body["employees"].([]any)
				require.Len(t, list, 1)
				assert.Equal(t, "3", list[0].(map[string]any)["guid"])
			},
		},
		{
			name:       "Booleano inválido",
			path:       "/v1/employees?recentHires=talvez",
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "VAL_001", body["code"])
				assert.EqualValues(t, http.StatusBadRequest, body["status"])
			},
		},
		{
			name:       "Funcionário com subordinados",
			path:       "/v1/employees/1?includeDirectReports=true",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				employee := body["employee"].(map[string]any)
				assert.Equal(t, "Ana", employee["firstName"])
				assert.EqualValues(t, 1, employee["reportsToCount"])
				assert.Len(t, employee["directReports"], 1)
			},
		},
		{
			name:       "Id não numérico",
			path:       "/v1/employees/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Funcionário inexistente",
			path:       "/v1/employees/99",
			wantStatus: http.StatusNotFound,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "DIR_001", body["code"])
			},
		},
		{
			name:       "Departamentos",
			path:       "/v1/departments",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				list := body["departments"].([]any)
				require.Len(t, list, 1)
				department := list[0].(map[string]any)
				assert.Equal(t, "ENG", department["id"])
				assert.EqualValues(t, 2, department["departmentHeadcount"])
				assert.NotContains(t, department, "TotalTenureInMonths")
			},
		},
		{
			name:       "Departamento pelo nome",
			path:       "/v1/departments/operations?includePastEmployees=true",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				department := body["department"].(map[string]any)
				assert.Equal(t, "OPS", department["id"])
				assert.EqualValues(t, 1, department["departmentHeadcount"])
			},
		},
		{
			name:       "Departamento inexistente",
			path:       "/v1/departments/marketing",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Rota inexistente",
			path:       "/v1/unknown",
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "VAL_002", body["code"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.validate != nil {
				tt.validate(t, decode(t, rec))
			}
		})
	}
}

func TestDirectoryRoutes_UpstreamFailure(t *testing.T) {
	srv := newTestServer(t, "")
	srv.integrator.EXPECT().GetEmployees(gomock.Any()).Return(nil, errors.New("hr platform down"))

	rec := srv.do(http.MethodGet, "/v1/employees", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "SRV_002", decode(t, rec)["code"])
}

func TestHealthcheck(t *testing.T) {
	srv := newTestServer(t, "secret")

	rec := srv.do(http.MethodGet, "/healthcheck", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	_, err := time.Parse(time.RFC3339, strings.TrimSpace(rec.Body.String()))
	assert.NoError(t, err)
}

func TestCacheRoutes(t *testing.T) {
	const secret = "secret"
	sign := func(role string) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{Role: role}).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}

	srv := newTestServer(t, secret)
	srv.integrator.EXPECT().GetEmployees(gomock.Any()).Return(employees(), nil).Times(1)

	t.Run("Sem token", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/v1/cache/refresh", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Papel sem permissão", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/v1/cache/refresh", sign("viewer"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Administrador força recarga", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/v1/cache/refresh", sign(domain.RoleAdmin))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		run := decode(t, rec)["run"].(map[string]any)
		assert.Equal(t, string(domain.RefreshStatusSuccess), run["status"])
		assert.EqualValues(t, 3, run["employee_count"])
	})

	t.Run("Recarga assíncrona delega ao agendador", func(t *testing.T) {
		rec := srv.do(http.MethodPost, "/v1/cache/refresh?async=true", sign(domain.RoleAdmin))
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, true, decode(t, rec)["started"])
		assert.Equal(t, 1, srv.trigger.triggered)
	})

	t.Run("Status do cache", func(t *testing.T) {
		rec := srv.do(http.MethodGet, "/v1/cache/status", sign("viewer"))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		cache := body["cache"].(map[string]any)
		assert.Equal(t, true, cache["loaded"])
		assert.Equal(t, true, cache["fresh"])
		assert.Len(t, cache["recent_runs"], 1)
		assert.Contains(t, body, "scheduler")
	})
}
