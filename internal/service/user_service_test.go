package service_test

import (
	"context"
	"testing"

	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/repository"
	"github.com/mautops/remotework-gin/internal/service"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserService_SyncIdentity 测试认证信息同步到用户目录
func TestUserService_SyncIdentity(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	id := &auth.Identity{
		ActingUser:     workflow.ActingUser{ID: "emp-1", Username: "emma", DisplayName: "Emma", Role: model.RoleEmployee, DepartmentID: "d-1"},
		DepartmentName: "Platform",
	}
	require.NoError(t, env.users.SyncIdentity(ctx, id))

	id.DisplayName = "Emma W."
	require.NoError(t, env.users.SyncIdentity(ctx, id))

	user, err := repository.NewUserRepository(env.db).FindByID(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Emma W.", user.DisplayName)
	require.NotNil(t, user.DepartmentID)
	assert.Equal(t, "d-1", *user.DepartmentID)

	var dept model.DepartmentModel
	require.NoError(t, env.db.First(&dept, "id = ?", "d-1").Error)
	assert.Equal(t, "Platform", dept.Name)
}

// TestUserService_Stats 测试远程办公天数统计
func TestUserService_Stats(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	stats, err := env.users.Stats(ctx, employee)
	require.NoError(t, err)
	assert.True(t, stats.RemoteWorkCount.IsZero())

	submitAndDecide(t, env, "approved", "")
	app, err := env.applications.Submit(ctx, employee, &service.SubmitApplicationRequest{
		RequestedDate:         tomorrow(),
		IsPartialWorkFromHome: true,
		Reason:                "half day",
	})
	require.NoError(t, err)
	_, err = env.applications.Decide(ctx, approver, app.ID, &service.DecideApplicationRequest{Decision: "approved"})
	require.NoError(t, err)

	stats, err = env.users.Stats(ctx, employee)
	require.NoError(t, err)
	assert.Equal(t, "emma", stats.Username)
	assert.Equal(t, model.PeriodAll, stats.Period)
	assert.True(t, decimal.RequireFromString("1.5").Equal(stats.RemoteWorkCount), stats.RemoteWorkCount.String())

	_, err = env.users.Stats(ctx, workflow.ActingUser{})
	assert.ErrorIs(t, err, workflow.ErrUnauthenticated)
}

// TestUserService_SyncIdentity_SharedUsername 测试不同身份使用相同用户名时都能同步
func TestUserService_SyncIdentity_SharedUsername(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	first := &auth.Identity{ActingUser: workflow.ActingUser{ID: "u-1", Username: "sam", Role: model.RoleEmployee}}
	second := &auth.Identity{ActingUser: workflow.ActingUser{ID: "u-2", Username: "sam", DisplayName: "Sam Two", Role: model.RoleEmployee}}
	require.NoError(t, env.users.SyncIdentity(ctx, first))
	require.NoError(t, env.users.SyncIdentity(ctx, second))

	user, err := repository.NewUserRepository(env.db).FindByID(ctx, "u-2")
	require.NoError(t, err)
	assert.Equal(t, "sam", user.Username)
	assert.True(t, user.UpdatedAt.Equal(fixedNow), user.UpdatedAt.String())

	app, err := env.applications.Submit(ctx, second.ActingUser, &service.SubmitApplicationRequest{
		RequestedDate: tomorrow(),
		Reason:        "deliveries",
	})
	require.NoError(t, err)
	assert.Equal(t, "sam", app.RequesterUsername)
	assert.Equal(t, "Sam Two", app.RequesterDisplayName)
}

// TestUserService_SyncIdentity_InvalidRole 测试非法角色不会写入用户目录
func TestUserService_SyncIdentity_InvalidRole(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	err := env.users.SyncIdentity(ctx, &auth.Identity{ActingUser: workflow.ActingUser{ID: "u-9", Username: "mallory", Role: "root"}})
	assert.Error(t, err)

	_, err = repository.NewUserRepository(env.db).FindByID(ctx, "u-9")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
