package model

import (
	"errors"
	"time"
)

// 通知类型
const (
	NotificationApproval = "approval"
	NotificationDenial   = "denial"
	NotificationUpdate   = "update"
)

// NotificationModel 通知数据模型
// ApplicationID 为空的通知是历史遗留数据,仍然有效
type NotificationModel struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)"`
	UserID        string    `gorm:"type:varchar(64);not null;index"`
	ApplicationID *string   `gorm:"type:varchar(64);index"`
	Message       string    `gorm:"type:text;not null"`
	Kind          string    `gorm:"type:varchar(16);not null"`
	IsRead        bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (NotificationModel) TableName() string {
	return "notifications"
}

// Validate 验证通知模型
func (nm *NotificationModel) Validate() error {
	if nm.ID == "" {
		return errors.New("notification ID is required")
	}
	if nm.UserID == "" {
		return errors.New("user ID is required")
	}
	if nm.Message == "" {
		return errors.New("message is required")
	}
	switch nm.Kind {
	case NotificationApproval, NotificationDenial, NotificationUpdate:
	default:
		return errors.New("notification kind is invalid")
	}
	return nil
}
