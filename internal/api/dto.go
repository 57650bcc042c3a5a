package api

import (
	"encoding/json"
	"time"

	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/service"
)

// ApplicationResponse 申请响应
// @Description 远程办公申请,包含申请人与审批人展示信息
type ApplicationResponse struct {
	ID                    string     `json:"id" example:"3f6c1a52-8d0e-4b7e-9d0a-1c2b3d4e5f60"`
	RequesterID           string     `json:"requester_id" example:"emp-1"`
	RequesterUsername     string     `json:"requester_username" example:"emma"`
	RequesterDisplayName  string     `json:"requester_display_name" example:"Emma Watson"`
	DepartmentID          *string    `json:"department_id"`
	DepartmentName        *string    `json:"department_name" example:"Platform"`
	SubmittedAt           time.Time  `json:"submitted_at"`
	RequestedDate         string     `json:"requested_date" example:"2026-10-20"`
	StartTime             *string    `json:"start_time" example:"09:00"`
	EndTime               *string    `json:"end_time" example:"13:00"`
	IsPartialWorkFromHome bool       `json:"is_partial_work_from_home"`
	IsSpecialApproval     bool       `json:"is_special_approval"`
	OvertimeAcknowledged  bool       `json:"overtime_acknowledged"`
	Reason                string     `json:"reason" example:"dentist appointment"`
	Status                string     `json:"status" example:"pending"`
	DenialReason          *string    `json:"denial_reason"`
	ApproverID            *string    `json:"approver_id"`
	ApproverUsername      *string    `json:"approver_username"`
	ApproverDisplayName   *string    `json:"approver_display_name"`
	ProcessedAt           *time.Time `json:"processed_at"`
	Days                  float64    `json:"days" example:"1"`
}

func toApplicationResponse(v *model.ApplicationView) *ApplicationResponse {
	if v == nil {
		return nil
	}
	return &ApplicationResponse{
		ID:                    v.ID,
		RequesterID:           v.RequesterID,
		RequesterUsername:     v.RequesterUsername,
		RequesterDisplayName:  v.RequesterDisplayName,
		DepartmentID:          v.DepartmentID,
		DepartmentName:        v.DepartmentName,
		SubmittedAt:           v.SubmittedAt,
		RequestedDate:         v.RequestedDate,
		StartTime:             v.StartTime,
		EndTime:               v.EndTime,
		IsPartialWorkFromHome: v.IsPartialWorkFromHome,
		IsSpecialApproval:     v.IsSpecialApproval,
		OvertimeAcknowledged:  v.OvertimeAcknowledged,
		Reason:                v.Reason,
		Status:                string(v.Status),
		DenialReason:          v.DenialReason,
		ApproverID:            v.ApproverID,
		ApproverUsername:      v.ApproverUsername,
		ApproverDisplayName:   v.ApproverDisplayName,
		ProcessedAt:           v.ProcessedAt,
		Days:                  v.Days(),
	}
}

func toApplicationResponses(views []*model.ApplicationView) []*ApplicationResponse {
	items := make([]*ApplicationResponse, 0, len(views))
	for _, v := range views {
		items = append(items, toApplicationResponse(v))
	}
	return items
}

// CalendarEntry 日历条目
// @Description 已批准的远程办公日
type CalendarEntry struct {
	ID                    string  `json:"id"`
	RequestedDate         string  `json:"requested_date" example:"2026-10-20"`
	StartTime             *string `json:"start_time"`
	EndTime               *string `json:"end_time"`
	IsPartialWorkFromHome bool    `json:"is_partial_work_from_home"`
	Days                  float64 `json:"days" example:"1"`
}

func toCalendarEntries(apps []*model.ApplicationModel) []*CalendarEntry {
	entries := make([]*CalendarEntry, 0, len(apps))
	for _, a := range apps {
		entries = append(entries, &CalendarEntry{
			ID:                    a.ID,
			RequestedDate:         a.RequestedDate,
			StartTime:             a.StartTime,
			EndTime:               a.EndTime,
			IsPartialWorkFromHome: a.IsPartialWorkFromHome,
			Days:                  a.Days(),
		})
	}
	return entries
}

// HistoryEntry 状态变更记录
type HistoryEntry struct {
	FromState string    `json:"from_state" example:"pending"`
	ToState   string    `json:"to_state" example:"denied"`
	Reason    string    `json:"reason,omitempty"`
	Operator  string    `json:"operator" example:"mgr-1"`
	CreatedAt time.Time `json:"created_at"`
}

func toHistoryEntries(histories []*model.StateHistoryModel) []*HistoryEntry {
	entries := make([]*HistoryEntry, 0, len(histories))
	for _, h := range histories {
		entries = append(entries, &HistoryEntry{
			FromState: string(h.FromState),
			ToState:   string(h.ToState),
			Reason:    h.Reason,
			Operator:  h.Operator,
			CreatedAt: h.CreatedAt,
		})
	}
	return entries
}

// AuditEntry 审计日志条目
type AuditEntry struct {
	UserID    string          `json:"user_id" example:"apr-1"`
	Action    string          `json:"action" example:"approve"`
	RequestID string          `json:"request_id,omitempty"`
	IP        string          `json:"ip,omitempty"`
	Details   json.RawMessage `json:"details,omitempty" swaggertype:"object"`
	CreatedAt time.Time       `json:"created_at"`
}

func toAuditEntries(logs []*model.AuditLogModel) []*AuditEntry {
	entries := make([]*AuditEntry, 0, len(logs))
	for _, l := range logs {
		entry := &AuditEntry{
			UserID:    l.UserID,
			Action:    l.Action,
			RequestID: l.RequestID,
			IP:        l.IP,
			CreatedAt: l.CreatedAt,
		}
		if json.Valid([]byte(l.Details)) {
			entry.Details = json.RawMessage(l.Details)
		}
		entries = append(entries, entry)
	}
	return entries
}

// NotificationResponse 通知响应
// @Description 申请处理结果通知
type NotificationResponse struct {
	ID            string    `json:"id"`
	ApplicationID *string   `json:"application_id"`
	Kind          string    `json:"kind" example:"approval"`
	Message       string    `json:"message" example:"Your remote work request for Tuesday, October 20, 2026 has been approved."`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

func toNotificationResponse(n *model.NotificationModel) *NotificationResponse {
	return &NotificationResponse{
		ID:            n.ID,
		ApplicationID: n.ApplicationID,
		Kind:          n.Kind,
		Message:       n.Message,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt,
	}
}

// NotificationListResponse 通知列表响应
type NotificationListResponse struct {
	Items       []*NotificationResponse `json:"items"`
	UnreadCount int64                   `json:"unread_count" example:"2"`
}

func toNotificationListResponse(list *service.NotificationList) *NotificationListResponse {
	items := make([]*NotificationResponse, 0, len(list.Items))
	for _, n := range list.Items {
		items = append(items, toNotificationResponse(n))
	}
	return &NotificationListResponse{Items: items, UnreadCount: list.UnreadCount}
}

// ResolvedNotificationResponse 通知关联申请响应,申请不存在时 application 为 null
type ResolvedNotificationResponse struct {
	Notification *NotificationResponse `json:"notification"`
	Application  *ApplicationResponse  `json:"application"`
	Title        string                `json:"title" example:"Remote work request for 2026-10-20"`
}

// UserStatsResponse 用户统计响应
type UserStatsResponse struct {
	UserID          string  `json:"user_id" example:"emp-1"`
	Username        string  `json:"username" example:"emma"`
	RemoteWorkCount float64 `json:"remote_work_count" example:"1.5"`
	Period          string  `json:"period" example:"all"`
}

// StatisticsResponse 审批统计响应
type StatisticsResponse struct {
	Total        int64   `json:"total" example:"10"`
	Pending      int64   `json:"pending" example:"2"`
	Approved     int64   `json:"approved" example:"6"`
	Denied       int64   `json:"denied" example:"2"`
	ApprovalRate float64 `json:"approval_rate" example:"0.75"`
	DaysApproved float64 `json:"days_approved" example:"5.5"`
	Period       string  `json:"period" example:"all"`
}
