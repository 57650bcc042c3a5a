package auth

import (
	"context"
	"errors"

	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/workflow"
)

// ErrInvalidToken token 无效
var ErrInvalidToken = errors.New("invalid token")

// Identity 认证后的用户身份
type Identity struct {
	workflow.ActingUser
	DepartmentName string
}

// TokenValidator 验证 bearer token 并解析出用户身份
type TokenValidator interface {
	Validate(token string) (*Identity, error)
}

// UserSyncer 将身份信息同步到用户目录,供列表展示使用
type UserSyncer interface {
	SyncIdentity(ctx context.Context, id *Identity) error
}

// roleFromList 从角色列表中选出权限最高的流程角色
func roleFromList(roles []string) string {
	role := model.RoleEmployee
	for _, r := range roles {
		switch r {
		case model.RoleAdmin:
			return model.RoleAdmin
		case model.RoleApprover:
			role = model.RoleApprover
		}
	}
	return role
}
