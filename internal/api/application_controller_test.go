package api_test

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/mautops/remotework-gin/internal/api"
	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/service"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApplicationAPI_SubmitAndDecide 测试提交与审批的完整流程
func TestApplicationAPI_SubmitAndDecide(t *testing.T) {
	s := setupServer(t)

	id := s.submit(&employee, service.SubmitApplicationRequest{
		RequestedDate: "2026-10-20",
		StartTime:     "09:00",
		EndTime:       "13:00",
		Reason:        "dentist",
	})

	w, env := s.do(http.MethodPut, "/api/v1/applications/"+id+"/status", &approver, service.DecideApplicationRequest{Decision: "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	app := decode[api.ApplicationResponse](t, env.Data)
	assert.Equal(t, "approved", app.Status)
	require.NotNil(t, app.ApproverUsername)
	assert.Equal(t, "alan", *app.ApproverUsername)
	assert.Equal(t, "emma", app.RequesterUsername)
	require.NotNil(t, app.DepartmentName)
	assert.Equal(t, "Platform", *app.DepartmentName)
	assert.NotNil(t, app.ProcessedAt)

	w, env = s.do(http.MethodPut, "/api/v1/applications/"+id+"/status", &approver, service.DecideApplicationRequest{Decision: "denied", DenialReason: "late"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_processed", env.Detail)

	w, env = s.do(http.MethodGet, "/api/v1/applications/"+id+"/history", &employee, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]api.HistoryEntry](t, env.Data)
	require.Len(t, history, 1)
	assert.Equal(t, "pending", history[0].FromState)
	assert.Equal(t, "approved", history[0].ToState)
	assert.Equal(t, "apr-1", history[0].Operator)

	w, _ = s.do(http.MethodGet, "/api/v1/applications/"+id+"/history", &other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestApplicationAPI_ValidationErrors 测试校验错误与本地化消息
func TestApplicationAPI_ValidationErrors(t *testing.T) {
	s := setupServer(t)

	w, env := s.do(http.MethodPost, "/api/v1/applications", &employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-20"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "reason_required", env.Detail)
	assert.Equal(t, "A reason is required", env.Message)

	w, env = s.do(http.MethodPost, "/api/v1/applications", &employee,
		service.SubmitApplicationRequest{RequestedDate: "2026-10-16", Reason: "plumber"},
		"Accept-Language", "ja-JP,ja;q=0.9")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "special_approval_required", env.Detail)
	assert.Equal(t, "当日または過去日の申請には特別承認が必要です", env.Message)

	w, env = s.do(http.MethodPost, "/api/v1/applications", &employee, service.SubmitApplicationRequest{
		RequestedDate: "2026-10-20",
		StartTime:     "08:00",
		EndTime:       "18:00",
		Reason:        "long day",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "overtime_not_acknowledged", env.Detail)

	id := s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-20", Reason: "r"})
	w, env = s.do(http.MethodPut, "/api/v1/applications/"+id+"/status", &approver, service.DecideApplicationRequest{Decision: "denied"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "denial_reason_required", env.Detail)

	w, env = s.do(http.MethodPut, "/api/v1/applications/"+id+"/status", &approver, service.DecideApplicationRequest{Decision: "maybe"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_decision", env.Detail)

	w, env = s.do(http.MethodGet, "/api/v1/applications/my?status=archived", &employee, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_status_filter", env.Detail)
}

// TestApplicationAPI_InputLimits 测试路径 ID 与文本长度限制
func TestApplicationAPI_InputLimits(t *testing.T) {
	s := setupServer(t)

	w, env := s.do(http.MethodGet, "/api/v1/applications/bad.id", &employee, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application_not_found", env.Detail)

	w, env = s.do(http.MethodPost, "/api/v1/applications", &employee, service.SubmitApplicationRequest{
		RequestedDate: "2026-10-20",
		Reason:        strings.Repeat("x", 2001),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "text_too_long", env.Detail)

	w, env = s.do(http.MethodPut, "/api/v1/notifications/bad.id/read", &employee, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "notification_not_found", env.Detail)
}

// TestApplicationAPI_Authorization 测试认证与角色限制
func TestApplicationAPI_Authorization(t *testing.T) {
	s := setupServer(t)

	w, _ := s.do(http.MethodGet, "/api/v1/applications/my", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/applications", &employee, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	id := s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-20", Reason: "r"})

	w, _ = s.do(http.MethodPut, "/api/v1/applications/"+id+"/status", &other, service.DecideApplicationRequest{Decision: "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/applications/"+id, &other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application_not_found", env.Detail)

	w, _ = s.do(http.MethodGet, "/api/v1/applications/"+id, &employee, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/applications/"+id, &approver, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestApplicationAPI_ListOrdering 测试审批队列排序与分页
func TestApplicationAPI_ListOrdering(t *testing.T) {
	s := setupServer(t)

	normal := s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-21", Reason: "r"})
	special := s.submit(&other, service.SubmitApplicationRequest{RequestedDate: "2026-10-16", Reason: "r", IsSpecialApproval: true})
	processed := s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-22", Reason: "r"})
	w, _ := s.do(http.MethodPut, "/api/v1/applications/"+processed+"/status", &approver, service.DecideApplicationRequest{Decision: "approved"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/applications?page=1&page_size=10", &approver, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]api.ApplicationResponse](t, env.Data)
	require.Len(t, items, 3)
	assert.Equal(t, special, items[0].ID)
	assert.Equal(t, processed, items[1].ID)
	assert.Equal(t, normal, items[2].ID)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(3), env.Pagination.Total)

	w, env = s.do(http.MethodGet, "/api/v1/applications?status=pending", &approver, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]api.ApplicationResponse](t, env.Data), 2)

	w, env = s.do(http.MethodGet, "/api/v1/applications/my?page_size=1", &employee, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]api.ApplicationResponse](t, env.Data), 1)
	assert.Equal(t, 2, env.Pagination.TotalPage)
}

// TestApplicationAPI_ConcurrentDecide 测试并发审批只有一个成功
func TestApplicationAPI_ConcurrentDecide(t *testing.T) {
	s := setupServer(t)
	id := s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-20", Reason: "r"})

	var wg sync.WaitGroup
	codes := make([]int, 5)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			decision := service.DecideApplicationRequest{Decision: "approved"}
			if i%2 == 1 {
				decision = service.DecideApplicationRequest{Decision: "denied", DenialReason: fmt.Sprintf("reason %d", i)}
			}
			w, _ := s.do(http.MethodPut, "/api/v1/applications/"+id+"/status", &approver, decision)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, code := range codes {
		if code == http.StatusOK {
			ok++
		} else {
			assert.Equal(t, http.StatusConflict, code)
		}
	}
	assert.Equal(t, 1, ok)

	var count int64
	require.NoError(t, s.db.Table("notifications").Where("application_id = ?", id).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestApplicationAPI_Calendar 测试日历只返回本人已批准的申请
func TestApplicationAPI_Calendar(t *testing.T) {
	s := setupServer(t)

	approved := s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-20", Reason: "r", IsPartialWorkFromHome: true})
	s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-21", Reason: "r"})
	next := s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-11-02", Reason: "r"})
	for _, id := range []string{approved, next} {
		w, _ := s.do(http.MethodPut, "/api/v1/applications/"+id+"/status", &approver, service.DecideApplicationRequest{Decision: "approved"})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, env := s.do(http.MethodGet, "/api/v1/applications/calendar?month=2026-10", &employee, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode[[]api.CalendarEntry](t, env.Data)
	require.Len(t, entries, 1)
	assert.Equal(t, approved, entries[0].ID)
	assert.Equal(t, 0.5, entries[0].Days)

	w, env = s.do(http.MethodGet, "/api/v1/applications/calendar?month=october", &employee, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_month", env.Detail)
}

// TestApplicationAPI_AuditTrail 测试审计日志只对管理员开放
func TestApplicationAPI_AuditTrail(t *testing.T) {
	s := setupServer(t)
	admin := auth.Identity{ActingUser: workflow.ActingUser{ID: "adm-1", Username: "beth", Role: model.RoleAdmin}}

	id := s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-20", Reason: "r"})
	w, _ := s.do(http.MethodPut, "/api/v1/applications/"+id+"/status", &approver, service.DecideApplicationRequest{Decision: "approved"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/applications/"+id+"/audit", &admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entries := decode[[]api.AuditEntry](t, env.Data)
	require.Len(t, entries, 2)
	actions := []string{entries[0].Action, entries[1].Action}
	assert.ElementsMatch(t, []string{service.ActionSubmit, service.ActionApprove}, actions)
	assert.NotEmpty(t, entries[0].Details)

	w, env = s.do(http.MethodGet, "/api/v1/applications/"+id+"/audit", &approver, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "admin_role_required", env.Detail)
}
