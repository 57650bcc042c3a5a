package repository

import (
	"context"
	"time"

	"github.com/mautops/remotework-gin/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository 用户目录仓储接口
type UserRepository interface {
	Upsert(ctx context.Context, user *model.UserModel) error
	FindByID(ctx context.Context, id string) (*model.UserModel, error)
	UpsertDepartment(ctx context.Context, dept *model.DepartmentModel) error
}

// userRepository 用户目录仓储实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户目录仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Upsert 根据认证信息同步用户展示信息,时间戳由调用方设置
func (r *userRepository) Upsert(ctx context.Context, user *model.UserModel) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = user.UpdatedAt
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "display_name", "role", "department_id", "updated_at"}),
	}).Create(user).Error
}

// FindByID 根据 ID 查找用户
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UpsertDepartment 同步部门名称
func (r *userRepository) UpsertDepartment(ctx context.Context, dept *model.DepartmentModel) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(dept).Error
}
