package model

import (
	"errors"
	"time"
)

// 用户角色
const (
	RoleEmployee = "employee"
	RoleApprover = "approver"
	RoleAdmin    = "admin"
)

// ValidRole 判断角色是否有效
func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleApprover, RoleAdmin:
		return true
	}
	return false
}

// UserModel 用户目录数据模型,只保存审批流程需要的展示信息
type UserModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)"`
	Username     string    `gorm:"type:varchar(128);not null;index:idx_users_username_lookup"`
	DisplayName  string    `gorm:"type:varchar(255)"`
	Role         string    `gorm:"type:varchar(16);not null"`
	DepartmentID *string   `gorm:"type:varchar(64);index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// Validate 验证用户模型
func (um *UserModel) Validate() error {
	if um.ID == "" {
		return errors.New("user ID is required")
	}
	if um.Username == "" {
		return errors.New("username is required")
	}
	if !ValidRole(um.Role) {
		return errors.New("role is invalid")
	}
	return nil
}

// DepartmentModel 部门数据模型
type DepartmentModel struct {
	ID   string `gorm:"primaryKey;type:varchar(64)"`
	Name string `gorm:"type:varchar(255);not null"`
}

// TableName 指定表名
func (DepartmentModel) TableName() string {
	return "departments"
}
