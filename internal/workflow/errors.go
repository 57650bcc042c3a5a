package workflow

import "fmt"

// Kind 错误类别
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindInvalidState  Kind = "invalid_state"
	KindNotFound      Kind = "not_found"
)

// Error 审批流程错误,携带类别、稳定的错误码和可直接展示的消息
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

// Error 实现 error 接口
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is 按类别匹配,目标带错误码时同时匹配错误码
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// 按类别匹配的哨兵错误
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrAuthorization = &Error{Kind: KindAuthorization}
	ErrInvalidState  = &Error{Kind: KindInvalidState}
	ErrNotFound      = &Error{Kind: KindNotFound}
)

// 校验错误
var (
	ErrReasonRequired          = newError(KindValidation, "reason_required", "reason is required")
	ErrRequestedDateRequired   = newError(KindValidation, "requested_date_required", "requested date is required")
	ErrInvalidDate             = newError(KindValidation, "invalid_date", "requested date must be in YYYY-MM-DD format")
	ErrSpecialApprovalRequired = newError(KindValidation, "special_approval_required", "same-day or past requests require special approval")
	ErrTimeRangeIncomplete     = newError(KindValidation, "time_range_incomplete", "start time and end time must be given together")
	ErrInvalidTime             = newError(KindValidation, "invalid_time", "time must be in HH:MM format")
	ErrTimeRangeInvalid        = newError(KindValidation, "time_range_invalid", "end time must be after start time")
	ErrOvertimeNotAcknowledged = newError(KindValidation, "overtime_not_acknowledged", "requested hours exceed the daily cap and overtime was not acknowledged")
	ErrInvalidDecision         = newError(KindValidation, "invalid_decision", "decision must be approved or denied")
	ErrDenialReasonRequired    = newError(KindValidation, "denial_reason_required", "a denial reason is required")
	ErrInvalidStatusFilter     = newError(KindValidation, "invalid_status_filter", "status filter must be pending or processed")
	ErrInvalidMonth            = newError(KindValidation, "invalid_month", "month must be in YYYY-MM format")
)

// 权限错误
var (
	ErrUnauthenticated      = newError(KindAuthorization, "unauthenticated", "an authenticated user is required")
	ErrApproverRoleRequired = newError(KindAuthorization, "approver_role_required", "only approvers and admins can decide applications")
	ErrSelfApproval         = newError(KindAuthorization, "self_approval", "approvers cannot decide their own applications")
	ErrAdminRoleRequired    = newError(KindAuthorization, "admin_role_required", "only admins can read the audit trail")
)

// 状态错误
var (
	ErrAlreadyProcessed = newError(KindInvalidState, "already_processed", "application has already been processed")
)

// 不存在错误
var (
	ErrApplicationNotFound  = newError(KindNotFound, "application_not_found", "application not found")
	ErrNotificationNotFound = newError(KindNotFound, "notification_not_found", "notification not found")
)
