package model

import (
	"errors"
	"time"
)

// Status 申请状态,只允许 pending/approved/denied 三个取值
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

// Valid 判断状态是否为已定义取值
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}

// Terminal 判断是否为终止状态
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusDenied
}

// DateLayout 申请日期格式
const DateLayout = "2006-01-02"

// ApplicationModel 远程办公申请数据模型
type ApplicationModel struct {
	ID                    string     `gorm:"primaryKey;type:varchar(64)"`
	RequesterID           string     `gorm:"type:varchar(64);not null;index"`
	SubmittedAt           time.Time  `gorm:"not null;index"`
	RequestedDate         string     `gorm:"type:varchar(10);not null;index"` // YYYY-MM-DD
	StartTime             *string    `gorm:"type:varchar(5)"`                 // HH:MM
	EndTime               *string    `gorm:"type:varchar(5)"`                 // HH:MM
	IsPartialWorkFromHome bool       `gorm:"not null;default:false"`
	IsSpecialApproval     bool       `gorm:"not null;default:false;index"`
	OvertimeAcknowledged  bool       `gorm:"not null;default:false"`
	Reason                string     `gorm:"type:text;not null"`
	Status                Status     `gorm:"type:varchar(16);not null;index"`
	DenialReason          *string    `gorm:"type:text"`
	ApproverID            *string    `gorm:"type:varchar(64);index"`
	ProcessedAt           *time.Time `gorm:"index"`
	UpdatedAt             time.Time  `gorm:"not null"`
}

// TableName 指定表名
func (ApplicationModel) TableName() string {
	return "applications"
}

// Validate 验证申请模型
func (am *ApplicationModel) Validate() error {
	if am.ID == "" {
		return errors.New("application ID is required")
	}
	if am.RequesterID == "" {
		return errors.New("requester ID is required")
	}
	if am.RequestedDate == "" {
		return errors.New("requested date is required")
	}
	if am.Reason == "" {
		return errors.New("reason is required")
	}
	if !am.Status.Valid() {
		return errors.New("status is invalid")
	}
	return nil
}

// Days 批准后计入使用统计的天数
func (am *ApplicationModel) Days() float64 {
	if am.IsPartialWorkFromHome {
		return 0.5
	}
	return 1
}

// ApplicationView 带申请人与审批人展示信息的申请
type ApplicationView struct {
	ApplicationModel
	RequesterUsername    string  `gorm:"column:requester_username"`
	RequesterDisplayName string  `gorm:"column:requester_display_name"`
	DepartmentID         *string `gorm:"column:department_id"`
	DepartmentName       *string `gorm:"column:department_name"`
	ApproverUsername     *string `gorm:"column:approver_username"`
	ApproverDisplayName  *string `gorm:"column:approver_display_name"`
}
