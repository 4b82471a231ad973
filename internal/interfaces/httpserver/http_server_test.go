package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdd7520/QualityStar/internal/config"
	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/domain/ignore"
	"github.com/xdd7520/QualityStar/internal/domain/item"
	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
	"github.com/xdd7520/QualityStar/internal/domain/role"
	"github.com/xdd7520/QualityStar/internal/domain/transactionlog"
	"github.com/xdd7520/QualityStar/internal/domain/user"
	"github.com/xdd7520/QualityStar/internal/infrastructure/auth"
	"github.com/xdd7520/QualityStar/internal/infrastructure/cache"
	"github.com/xdd7520/QualityStar/internal/infrastructure/crontab"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/databasetest"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/coveragerepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/ignorerepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/itemrepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/projectmappingrepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/rolerepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/transactionlogrepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/repository/userrepo"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/transaction"
	"github.com/xdd7520/QualityStar/internal/infrastructure/export"
	"github.com/xdd7520/QualityStar/internal/infrastructure/metricsource"
	"github.com/xdd7520/QualityStar/internal/infrastructure/runlock"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/authhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/coveragehandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/ignorehandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/itemhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/projecthandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/rolehandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/schedulerhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/userhandler"
	v1 "github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/ignores"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/items"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/login"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/projects"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/reports"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/roles"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/scheduler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/users"
	"github.com/xdd7520/QualityStar/internal/utils/httpclients"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password"
	prefix        = "/api/v1"
)

const prometheusBody = `{
	"status": "success",
	"data": {
		"resultType": "vector",
		"result": [
			{"metric": {"application": "ORDER-SVC", "uri": "/api/orders", "method": "GET"}, "value": [1714550400, "12"]},
			{"metric": {"application": "ORDER-SVC", "uri": "/api/orders", "method": "POST"}, "value": [1714550400, "4"]},
			{"metric": {"application": "ORDER-SVC", "uri": "/actuator/health", "method": "GET"}, "value": [1714550400, "9"]}
		]
	}
}`

type testServer struct {
	handler   http.Handler
	users     *user.UserService
	scheduler *crontab.Scheduler
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	prom := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(prometheusBody))
	}))
	t.Cleanup(prom.Close)

	cfg := &config.Config{
		APIPrefix:          prefix,
		CORSAllowedOrigins: []string{"*"},
		ServiceName:        "qualitystar-test",
		ServiceVersion:     "test",
		Environment:        "local",
		SchedulerTimezone:  "UTC",
		PrometheusQuery:    "http_server_requests_seconds_count",
		EnvReloadedAt:      time.Now(),
	}

	gdb := databasetest.New(t)
	db := transaction.NewDatabase(gdb)

	mappingCache, err := cache.NewProjectMappingCache(16)
	require.NoError(t, err)
	locker := runlock.NewLocalLocker(time.Second)

	logRepo := transactionlogrepo.NewTransactionLogGormRepository(db)
	gatherRepo := coveragerepo.NewGatherInterfaceGormRepository(db)
	uploadRepo := coveragerepo.NewUploadInterfaceGormRepository(db)
	itemRepo := itemrepo.NewItemGormRepository(db)

	mappingService := projectmapping.NewProjectMappingService(projectmappingrepo.NewProjectMappingGormRepository(db), mappingCache)
	ignoreService := ignore.NewIgnoreService(ignorerepo.NewIgnoreGormRepository(db))
	roleService := role.NewRoleService(rolerepo.NewRoleGormRepository(db))
	itemService := item.NewItemService(itemRepo)
	userService := user.NewUserService(userrepo.NewUserGormRepository(db), roleService, itemRepo, db)

	source := metricsource.NewPrometheusClient(httpclients.NewClient("prometheus"), prom.URL, 5*time.Second)
	collector := coverage.NewCollectorService(source, mappingService, gatherRepo, logRepo, db, locker,
		coverage.CollectorSettings{Query: cfg.PrometheusQuery, URIPrefix: "/api"})
	reconciler := coverage.NewReconcilerService(gatherRepo)
	reportService := coverage.NewReportService(ignoreService, uploadRepo, logRepo, db, locker, reconciler, coverage.ReportSettings{})
	coverageService := coverage.NewCoverageService(gatherRepo, uploadRepo)

	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	sched := crontab.NewScheduler(crontab.Settings{Location: time.UTC, JobTimeout: time.Minute})
	sched.RegisterTask(config.TaskCollect, func(ctx context.Context) error { return nil })
	sched.RegisterTask(config.TaskReconcile, func(ctx context.Context) error { return nil })

	authHandler := authhandler.NewAuthHandler(userService, tokens, zerolog.Nop())
	route := v1.NewV1Route(
		login.NewLoginRoute(authHandler),
		users.NewUsersRoute(userhandler.NewUserHandler(userService), authHandler),
		roles.NewRolesRoute(rolehandler.NewRoleHandler(roleService), authHandler),
		items.NewItemsRoute(itemhandler.NewItemHandler(itemService), authHandler),
		ignores.NewIgnoresRoute(ignorehandler.NewIgnoreHandler(ignoreService), authHandler),
		projects.NewProjectRoute(projecthandler.NewProjectHandler(mappingService), authHandler),
		reports.NewReportsRoute(coveragehandler.NewCoverageHandler(collector, reconciler, reportService, coverageService,
			transactionlog.NewTransactionLogService(logRepo)), authHandler),
		scheduler.NewSchedulerRoute(schedulerhandler.NewSchedulerHandler(sched, cfg), authHandler),
		gdb,
		cfg,
	)

	_, err = userService.CreateUser(context.Background(), user.UserCreate{
		Email:       adminEmail,
		Password:    adminPassword,
		IsActive:    true,
		IsSuperuser: true,
	})
	require.NoError(t, err)

	return &testServer{
		handler:   httpserver.NewHttpServer(route, cfg, zerolog.Nop()).Handler(),
		users:     userService,
		scheduler: sched,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, prefix+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, prefix+"/login/access-token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decode(t, w, &token)
	assert.Equal(t, "bearer", token.TokenType)
	return token.AccessToken
}

func (s *testServer) createUser(t *testing.T, email string) string {
	t.Helper()
	_, err := s.users.CreateUser(context.Background(), user.UserCreate{Email: email, Password: "user-password", IsActive: true})
	require.NoError(t, err)
	return s.login(t, email, "user-password")
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type message struct {
	Message string `json:"message"`
}

type errorBody struct {
	Code      string `json:"code"`
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/version", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var version map[string]string
	decode(t, w, &version)
	assert.Equal(t, "test", version["version"])
}

func TestReportCollectAndReconcile(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, adminEmail, adminPassword)

	report := map[string]interface{}{
		"data": []map[string]interface{}{
			{
				"name":     "order-automation",
				"base_url": "http://order.test",
				"url_list": []map[string]string{
					{"url": "/api/orders", "method": "get"},
					{"url": "/api/refunds", "method": "POST"},
				},
			},
			{
				"name":     "other-automation",
				"base_url": "http://order.test",
				"url_list": []map[string]string{{"url": "/api/orders", "method": "GET"}},
			},
		},
	}
	w := s.do(t, http.MethodPost, "/report", "", report)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var msg message
	decode(t, w, &msg)
	assert.Equal(t, "upload successfully", msg.Message)

	w = s.do(t, http.MethodGet, "/upload-interfaces?name=other-automation", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var uploads struct {
		Total int64 `json:"total"`
	}
	decode(t, w, &uploads)
	assert.Zero(t, uploads.Total, "a url repeated in a later group is dropped")

	w = s.do(t, http.MethodGet, "/trigger/get_prometheus", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &msg)
	assert.Equal(t, "trigger successfully", msg.Message)

	w = s.do(t, http.MethodGet, "/projects?eureka_name=order-svc", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mappings struct {
		Data []projectmapping.ProjectMapping `json:"data"`
	}
	decode(t, w, &mappings)
	require.Len(t, mappings.Data, 1)
	mappingID := mappings.Data[0].ID

	w = s.do(t, http.MethodGet, "/gather-interfaces?covered=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var gathered struct {
		Data  []coverage.GatherInterface `json:"data"`
		Total int64                      `json:"total"`
	}
	decode(t, w, &gathered)
	assert.Zero(t, gathered.Total, "no upload name is mapped yet")

	w = s.do(t, http.MethodPatch, "/projects/"+itoa(mappingID), token, map[string]string{"upload_name": "order-automation"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/trigger/update_coverage", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/gather-interfaces?covered=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &gathered)
	require.Equal(t, int64(1), gathered.Total)
	assert.Equal(t, "/api/orders", gathered.Data[0].URL)
	assert.Equal(t, "GET", gathered.Data[0].Method)

	w = s.do(t, http.MethodGet, "/coverage/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Total   int64 `json:"total"`
		Covered int64 `json:"covered"`
	}
	decode(t, w, &summary)
	assert.Equal(t, int64(2), summary.Total)
	assert.Equal(t, int64(1), summary.Covered)

	w = s.do(t, http.MethodGet, "/transaction-logs?action=upload", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var logs struct {
		Data []transactionlog.TransactionLog `json:"data"`
	}
	decode(t, w, &logs)
	require.Len(t, logs.Data, 1)
	assert.Equal(t, "order-automation", logs.Data[0].Name)
	assert.Equal(t, 2, logs.Data[0].Count)

	w = s.do(t, http.MethodGet, "/coverage/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestReportRejectsMalformedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, prefix+"/report", strings.NewReader(`{"data": "nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body errorBody
	decode(t, w, &body)
	assert.Equal(t, "report-001", body.Code)
	assert.NotEmpty(t, body.RequestID)
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/users/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	form := url.Values{"username": {adminEmail}, "password": {"wrong-password"}}
	req := httptest.NewRequest(http.MethodPost, prefix+"/login/access-token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := s.login(t, adminEmail, adminPassword)
	w = s.do(t, http.MethodPost, "/login/test-token", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me user.User
	decode(t, w, &me)
	assert.Equal(t, adminEmail, me.Email)
	assert.True(t, me.IsSuperuser)
}

func TestUserManagementRequiresSuperuser(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)
	normal := s.createUser(t, "dev@example.com")

	w := s.do(t, http.MethodGet, "/users", normal, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/users?page=1&size=10", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Size  int   `json:"size"`
		Pages int   `json:"pages"`
	}
	decode(t, w, &page)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 1, page.Pages)

	w = s.do(t, http.MethodPost, "/users", admin, map[string]interface{}{"email": "dev@example.com", "password": "another-password"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/users/me", normal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me user.User
	decode(t, w, &me)

	w = s.do(t, http.MethodGet, "/users/"+me.ID.String(), normal, nil)
	assert.Equal(t, http.StatusOK, w.Code, "a user can read their own record")

	w = s.do(t, http.MethodPatch, "/users/me/password", normal, map[string]string{
		"current_password": "user-password",
		"new_password":     "changed-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	s.login(t, "dev@example.com", "changed-password")

	w = s.do(t, http.MethodDelete, "/users/"+me.ID.String(), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/users/"+me.ID.String(), admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRolesMutationsRequireSuperuser(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)
	normal := s.createUser(t, "dev@example.com")

	w := s.do(t, http.MethodPost, "/roles", normal, map[string]string{"name": "qa"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/roles", admin, map[string]string{"name": "qa"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created role.Role
	decode(t, w, &created)

	w = s.do(t, http.MethodPost, "/roles", admin, map[string]string{"name": "qa"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/roles/"+created.ID.String(), normal, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestItemOwnership(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)
	owner := s.createUser(t, "owner@example.com")
	other := s.createUser(t, "other@example.com")

	w := s.do(t, http.MethodPost, "/items", owner, map[string]string{"title": "Checklist"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created item.Item
	decode(t, w, &created)

	w = s.do(t, http.MethodGet, "/items/"+created.ID.String(), other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, http.MethodDelete, "/items/"+created.ID.String(), other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/items/"+created.ID.String(), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/items", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int64 `json:"total"`
	}
	decode(t, w, &page)
	assert.Zero(t, page.Total)

	w = s.do(t, http.MethodPatch, "/items/"+created.ID.String(), owner, map[string]string{"title": "Checklist v2"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated item.Item
	decode(t, w, &updated)
	assert.Equal(t, "Checklist v2", updated.Title)
}

func TestIgnoreRuleBlocksReport(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)

	w := s.do(t, http.MethodPost, "/ignores", admin, map[string]string{"uri": "/api/internal/*", "description": "internal"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	report := map[string]interface{}{
		"data": []map[string]interface{}{{
			"name":     "svc1",
			"base_url": "",
			"url_list": []map[string]string{
				{"url": "/api/internal/sync", "method": "GET"},
				{"url": "/api/x", "method": "GET"},
			},
		}},
	}
	w = s.do(t, http.MethodPost, "/report", "", report)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/upload-interfaces?name=svc1", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var uploads struct {
		Data []coverage.UploadInterface `json:"data"`
	}
	decode(t, w, &uploads)
	require.Len(t, uploads.Data, 1)
	assert.Equal(t, "/api/x", uploads.Data[0].URL)
	assert.True(t, uploads.Data[0].IsActive)

	w = s.do(t, http.MethodGet, "/ignores/9999", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSchedulerJobs(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)

	w := s.do(t, http.MethodGet, "/scheduler/jobs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	job := map[string]interface{}{
		"id":      "nightly",
		"task":    "reconcile",
		"trigger": map[string]string{"type": "interval", "every": "30m"},
	}
	w = s.do(t, http.MethodPost, "/scheduler/jobs", "", job)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/scheduler/jobs", admin, job)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var info crontab.JobInfo
	decode(t, w, &info)
	assert.Equal(t, "nightly", info.ID)
	require.NotNil(t, info.NextRunTime)

	w = s.do(t, http.MethodPost, "/scheduler/jobs", admin, job)
	assert.Equal(t, http.StatusConflict, w.Code)

	past := map[string]interface{}{
		"task":    "collect",
		"trigger": map[string]string{"type": "date", "run_at": "2001-01-01 00:00:00"},
	}
	w = s.do(t, http.MethodPost, "/scheduler/jobs", admin, past)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/scheduler/jobs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"job_id":"nightly"`)
	var jobs []crontab.JobInfo
	decode(t, w, &jobs)
	require.Len(t, jobs, 1)

	w = s.do(t, http.MethodDelete, "/scheduler/jobs/nightly", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodDelete, "/scheduler/jobs/nightly", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/healthz", "", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "qualitystar_")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
