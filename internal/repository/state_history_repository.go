package repository

import (
	"context"

	"github.com/mautops/remotework-gin/internal/model"
	"gorm.io/gorm"
)

// StateHistoryRepository 状态历史仓储接口
type StateHistoryRepository interface {
	WithTx(tx *gorm.DB) StateHistoryRepository
	Save(ctx context.Context, history *model.StateHistoryModel) error
	FindByApplicationID(ctx context.Context, applicationID string) ([]*model.StateHistoryModel, error)
}

// stateHistoryRepository 状态历史仓储实现
type stateHistoryRepository struct {
	db *gorm.DB
}

// NewStateHistoryRepository 创建状态历史仓储
func NewStateHistoryRepository(db *gorm.DB) StateHistoryRepository {
	return &stateHistoryRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *stateHistoryRepository) WithTx(tx *gorm.DB) StateHistoryRepository {
	return &stateHistoryRepository{db: tx}
}

// Save 保存状态历史
func (r *stateHistoryRepository) Save(ctx context.Context, history *model.StateHistoryModel) error {
	if err := history.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(history).Error
}

// FindByApplicationID 根据申请 ID 查找状态历史
func (r *stateHistoryRepository) FindByApplicationID(ctx context.Context, applicationID string) ([]*model.StateHistoryModel, error) {
	var histories []*model.StateHistoryModel
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&histories).Error
	return histories, err
}
