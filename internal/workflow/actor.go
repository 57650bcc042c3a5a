package workflow

import "github.com/mautops/remotework-gin/internal/model"

// ActingUser 当前操作人,由认证层解析后显式传入每个流程调用
type ActingUser struct {
	ID           string
	Username     string
	DisplayName  string
	Role         string
	DepartmentID string
}

// CanDecide 审批人和管理员可以审批
func (u ActingUser) CanDecide() bool {
	return u.Role == model.RoleApprover || u.Role == model.RoleAdmin
}

// CanReadAll 审批人和管理员可以查看所有申请
func (u ActingUser) CanReadAll() bool {
	return u.CanDecide()
}

// CanAudit 只有管理员可以查看审计日志
func (u ActingUser) CanAudit() bool {
	return u.Role == model.RoleAdmin
}
