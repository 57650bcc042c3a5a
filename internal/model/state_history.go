package model

import (
	"errors"
	"time"
)

// StateHistoryModel 申请状态变更历史数据模型
type StateHistoryModel struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)"`
	ApplicationID string    `gorm:"type:varchar(64);not null;index"`
	FromState     Status    `gorm:"type:varchar(16)"`
	ToState       Status    `gorm:"type:varchar(16);not null"`
	Reason        string    `gorm:"type:text"`
	Operator      string    `gorm:"type:varchar(64);not null"`
	CreatedAt     time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (StateHistoryModel) TableName() string {
	return "state_history"
}

// Validate 验证状态历史模型
func (shm *StateHistoryModel) Validate() error {
	if shm.ID == "" {
		return errors.New("history ID is required")
	}
	if shm.ApplicationID == "" {
		return errors.New("application ID is required")
	}
	if !shm.ToState.Valid() {
		return errors.New("to state is invalid")
	}
	if shm.Operator == "" {
		return errors.New("operator is required")
	}
	return nil
}
