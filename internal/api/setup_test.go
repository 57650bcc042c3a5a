package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mautops/remotework-gin/internal/api"
	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/config"
	"github.com/mautops/remotework-gin/internal/database"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/repository"
	"github.com/mautops/remotework-gin/internal/service"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

var (
	fixedNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

	employee = auth.Identity{ActingUser: workflow.ActingUser{ID: "emp-1", Username: "emma", DisplayName: "Emma", Role: model.RoleEmployee, DepartmentID: "d-1"}, DepartmentName: "Platform"}
	other    = auth.Identity{ActingUser: workflow.ActingUser{ID: "emp-2", Username: "oscar", DisplayName: "Oscar", Role: model.RoleEmployee}}
	approver = auth.Identity{ActingUser: workflow.ActingUser{ID: "apr-1", Username: "alan", DisplayName: "Alan", Role: model.RoleApprover}}
)

type envelope struct {
	Code       int                 `json:"code"`
	Message    string              `json:"message"`
	Detail     string              `json:"detail"`
	Data       json.RawMessage     `json:"data"`
	Pagination *api.PaginationInfo `json:"pagination"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
}

func init() {
	gin.SetMode(gin.TestMode)
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := config.Default()
	cfg.RateLimit.Enabled = false

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	policy := workflow.Policy{Location: time.UTC, DailyCap: 8 * time.Hour, UsageWindow: workflow.WindowAll}
	engine := workflow.NewEngine(db, policy, workflow.WithClock(func() time.Time { return fixedNow }))
	audit := service.NewAuditLogService(repository.NewAuditLogRepository(db))

	router := api.SetupRoutes(api.RouterDeps{
		Config:        cfg,
		Logger:        log,
		DB:            db,
		Validator:     auth.NewHMACTokenValidator(testSecret),
		Applications:  service.NewApplicationService(engine, audit, nil, log),
		Notifications: service.NewNotificationService(repository.NewNotificationRepository(db), engine, audit, log),
		Users:         service.NewUserService(repository.NewUserRepository(db), engine),
		Statistics:    service.NewStatisticsService(repository.NewApplicationRepository(db), repository.NewUsageCounterRepository(db), engine),
	})
	return &testServer{t: t, router: router, db: db}
}

func token(t *testing.T, id auth.Identity) string {
	t.Helper()
	tok, err := auth.IssueToken(testSecret, id, time.Hour)
	require.NoError(t, err)
	return tok
}

// do 发送请求,as 为空时不携带令牌
func (s *testServer) do(method, path string, as *auth.Identity, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+token(s.t, *as))
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// submit 以员工身份提交申请并返回申请 ID
func (s *testServer) submit(as *auth.Identity, req service.SubmitApplicationRequest) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/v1/applications", as, req)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[api.ApplicationResponse](s.t, env.Data).ID
}
