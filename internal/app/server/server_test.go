package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizsuite/internal/auth"
	"bizsuite/internal/platform/config"
	"bizsuite/internal/store"
)

const testSecret = "journey-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "suite.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := config.Config{
		Addr:           ":0",
		DataFile:       st.Path(),
		JWTSecret:      testSecret,
		TokenTTL:       time.Hour,
		Environment:    "test",
		MaxBodyBytes:   1 << 20,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MetricsEnabled: true,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ts := httptest.NewServer(NewRouter(cfg, st, logger))
	t.Cleanup(ts.Close)
	return ts
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Total   *int            `json:"total"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"requestId"`
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func loginAdmin(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	status, env := doJSON(t, ts, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    store.SeedAdminEmail,
		"password": store.SeedAdminPassword,
	})
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	res, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestLoginAndMe(t *testing.T) {
	ts := newTestServer(t)
	token := loginAdmin(t, ts)

	status, env := doJSON(t, ts, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, status)

	var me struct {
		Email string     `json:"email"`
		Role  store.Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, store.SeedAdminEmail, me.Email)
	assert.Equal(t, store.RoleAdmin, me.Role)

	// The envelope never carries a password field.
	assert.NotContains(t, string(env.Data), "password")
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	status, env := doJSON(t, ts, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    store.SeedAdminEmail,
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_credentials", env.Error.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	status, _ := doJSON(t, ts, http.MethodGet, "/api/v1/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestEmployeeWriteRequiresHRRole(t *testing.T) {
	ts := newTestServer(t)

	employeeToken, err := auth.GenerateToken(testSecret, auth.Claims{
		UserID: "u-emp", Email: "emp@example.com", Role: store.RoleEmployee,
	}, time.Hour)
	require.NoError(t, err)

	status, env := doJSON(t, ts, http.MethodPost, "/api/v1/employees", employeeToken, map[string]any{
		"employeeId": "EMP900", "firstName": "No", "lastName": "Access",
		"email": "no.access@example.com", "department": "X", "position": "Y",
		"hireDate": "2026-01-01",
	})
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "forbidden", env.Error.Code)
}

func TestEmployeeLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := loginAdmin(t, ts)

	status, env := doJSON(t, ts, http.MethodPost, "/api/v1/employees", token, map[string]any{
		"employeeId": "EMP500",
		"firstName":  "June",
		"lastName":   "Okafor",
		"email":      "june.okafor@example.com",
		"department": "Engineering",
		"position":   "Staff Engineer",
		"hireDate":   "2024-02-15",
		"salary":     120000,
	})
	require.Equal(t, http.StatusCreated, status)

	var created store.Employee
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, store.EmployeeActive, created.Status)

	status, env = doJSON(t, ts, http.MethodGet, "/api/v1/employees?department=Engineering&search=okafor", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Total)
	assert.Equal(t, 1, *env.Total)

	status, env = doJSON(t, ts, http.MethodPut, "/api/v1/employees/"+created.ID, token, map[string]any{
		"department": "Platform",
	})
	require.Equal(t, http.StatusOK, status)
	var updated store.Employee
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Platform", updated.Department)
	assert.Equal(t, "June", updated.FirstName)

	status, _ = doJSON(t, ts, http.MethodDelete, "/api/v1/employees/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, ts, http.MethodGet, "/api/v1/employees/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLeaveWorkflowOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := loginAdmin(t, ts)

	status, env := doJSON(t, ts, http.MethodPost, "/api/v1/leave/requests", token, map[string]any{
		"employeeId": "emp-1",
		"type":       "ANNUAL",
		"startDate":  "2026-09-07",
		"endDate":    "2026-09-11",
		"reason":     "vacation",
	})
	require.Equal(t, http.StatusCreated, status)

	var req store.Leave
	require.NoError(t, json.Unmarshal(env.Data, &req))
	assert.Equal(t, store.LeavePending, req.Status)
	assert.Equal(t, 5.0, req.Days)

	status, env = doJSON(t, ts, http.MethodPost, "/api/v1/leave/requests/"+req.ID+"/approve", token, nil)
	require.Equal(t, http.StatusOK, status)
	var approved store.Leave
	require.NoError(t, json.Unmarshal(env.Data, &approved))
	assert.Equal(t, store.LeaveApproved, approved.Status)
	assert.NotEmpty(t, approved.ApprovedBy)

	// A second approval must be refused.
	status, env = doJSON(t, ts, http.MethodPost, "/api/v1/leave/requests/"+req.ID+"/approve", token, nil)
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
}

func TestPayslipDownload(t *testing.T) {
	ts := newTestServer(t)
	token := loginAdmin(t, ts)

	status, env := doJSON(t, ts, http.MethodGet, "/api/v1/employees?search=ravi", token, nil)
	require.Equal(t, http.StatusOK, status)
	var employees []store.Employee
	require.NoError(t, json.Unmarshal(env.Data, &employees))
	require.Len(t, employees, 1)

	status, env = doJSON(t, ts, http.MethodPost, "/api/v1/payroll", token, map[string]any{
		"employeeId":  employees[0].ID,
		"month":       8,
		"year":        2026,
		"basicSalary": 7000,
		"allowances":  300,
		"deductions":  1200,
	})
	require.Equal(t, http.StatusCreated, status)
	var entry store.Payroll
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.Equal(t, 6100.0, entry.NetSalary)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/payroll/"+entry.ID+"/payslip", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.True(t, len(raw) > 4)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestAuditTrailOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := loginAdmin(t, ts)

	_, _ = doJSON(t, ts, http.MethodPost, "/api/v1/benefits", token, map[string]any{
		"name": "Eye Care", "type": "HEALTH_INSURANCE", "monthlyCost": 12,
	})

	status, env := doJSON(t, ts, http.MethodGet, "/api/v1/audit?table=benefits", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Total)
	assert.Equal(t, 1, *env.Total)

	var entries []store.AuditLog
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "CREATE", entries[0].Action)
}

func TestRequestIDPropagates(t *testing.T) {
	ts := newTestServer(t)

	res, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	res.Body.Close()
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}
