package api_test

import (
	"net/http"
	"testing"

	"github.com/mautops/remotework-gin/internal/api"
	"github.com/mautops/remotework-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserAPI_Stats 测试远程办公天数统计按半天累计
func TestUserAPI_Stats(t *testing.T) {
	s := setupServer(t)

	full := s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-20", Reason: "r"})
	half := s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-21", Reason: "r", IsPartialWorkFromHome: true})
	denied := s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-22", Reason: "r"})

	for _, id := range []string{full, half} {
		w, _ := s.do(http.MethodPut, "/api/v1/applications/"+id+"/status", &approver, service.DecideApplicationRequest{Decision: "approved"})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, _ := s.do(http.MethodPut, "/api/v1/applications/"+denied+"/status", &approver, service.DecideApplicationRequest{Decision: "denied", DenialReason: "no"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/users/me/stats", &employee, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[api.UserStatsResponse](t, env.Data)
	assert.Equal(t, "emma", stats.Username)
	assert.Equal(t, 1.5, stats.RemoteWorkCount)
	assert.Equal(t, "all", stats.Period)
}

// TestStatisticsAPI_Overview 测试审批统计
func TestStatisticsAPI_Overview(t *testing.T) {
	s := setupServer(t)

	approved := s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-20", Reason: "r"})
	s.submit(&employee, service.SubmitApplicationRequest{RequestedDate: "2026-10-21", Reason: "r"})
	w, _ := s.do(http.MethodPut, "/api/v1/applications/"+approved+"/status", &approver, service.DecideApplicationRequest{Decision: "approved"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/statistics", &employee, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/statistics", &approver, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[api.StatisticsResponse](t, env.Data)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, 1.0, stats.ApprovalRate)
	assert.Equal(t, 1.0, stats.DaysApproved)
}
