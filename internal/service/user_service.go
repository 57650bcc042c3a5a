package service

import (
	"context"

	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/repository"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/shopspring/decimal"
)

// UserStats 用户远程办公统计
type UserStats struct {
	UserID          string
	Username        string
	RemoteWorkCount decimal.Decimal
	Period          string
}

// UserService 用户服务接口
type UserService interface {
	auth.UserSyncer
	Stats(ctx context.Context, actor workflow.ActingUser) (*UserStats, error)
}

// userService 用户服务实现
type userService struct {
	repo   repository.UserRepository
	engine *workflow.Engine
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, engine *workflow.Engine) UserService {
	return &userService{repo: repo, engine: engine}
}

// SyncIdentity 用认证信息更新用户目录
func (s *userService) SyncIdentity(ctx context.Context, id *auth.Identity) error {
	var deptID *string
	if id.DepartmentID != "" {
		d := id.DepartmentID
		deptID = &d
		if id.DepartmentName != "" {
			if err := s.repo.UpsertDepartment(ctx, &model.DepartmentModel{ID: d, Name: id.DepartmentName}); err != nil {
				return err
			}
		}
	}

	username := id.Username
	if username == "" {
		username = id.ID
	}
	return s.repo.Upsert(ctx, &model.UserModel{
		ID:           id.ID,
		Username:     username,
		DisplayName:  id.DisplayName,
		Role:         id.Role,
		DepartmentID: deptID,
		UpdatedAt:    s.engine.Now(),
	})
}

// Stats 查询当前用户的远程办公天数
func (s *userService) Stats(ctx context.Context, actor workflow.ActingUser) (*UserStats, error) {
	if actor.ID == "" {
		return nil, workflow.ErrUnauthenticated
	}
	days, period, err := s.engine.UsageCount(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		UserID:          actor.ID,
		Username:        actor.Username,
		RemoteWorkCount: days,
		Period:          period,
	}, nil
}
