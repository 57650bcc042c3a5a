package repository

import (
	"context"
	"time"

	"github.com/mautops/remotework-gin/internal/model"
	"gorm.io/gorm"
)

// StatusFilter 列表状态过滤
type StatusFilter string

const (
	FilterAll       StatusFilter = ""
	FilterPending   StatusFilter = "pending"
	FilterProcessed StatusFilter = "processed"
)

// ApplicationFilter 申请列表过滤器
type ApplicationFilter struct {
	Status             StatusFilter
	RequesterID        string // 只看某个申请人
	ExcludeRequesterID string // 排除某个申请人,用于审批人不审批自己的申请
}

// ApplicationRepository 申请仓储接口
type ApplicationRepository interface {
	WithTx(tx *gorm.DB) ApplicationRepository
	Create(ctx context.Context, app *model.ApplicationModel) error
	FindByID(ctx context.Context, id string) (*model.ApplicationModel, error)
	FindViewByID(ctx context.Context, id string) (*model.ApplicationView, error)
	List(ctx context.Context, filter ApplicationFilter, page, pageSize int) ([]*model.ApplicationView, int64, error)
	ListApprovedBetween(ctx context.Context, requesterID, from, to string) ([]*model.ApplicationModel, error)
	TransitionFromPending(ctx context.Context, id string, to model.Status, approverID string, processedAt time.Time, denialReason *string) (bool, error)
	CountByStatus(ctx context.Context) (map[model.Status]int64, error)
}

// applicationRepository 申请仓储实现
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository 创建申请仓储
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *applicationRepository) WithTx(tx *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: tx}
}

const applicationViewColumns = `applications.*,
	COALESCE(requester.username, '') AS requester_username,
	COALESCE(requester.display_name, '') AS requester_display_name,
	requester.department_id AS department_id,
	departments.name AS department_name,
	approver.username AS approver_username,
	approver.display_name AS approver_display_name`

// 特殊审批优先,已处理的按处理时间倒序,未处理的排在后面
const applicationOrder = `applications.is_special_approval DESC,
	(applications.processed_at IS NULL) ASC,
	applications.processed_at DESC,
	applications.requested_date DESC,
	applications.submitted_at DESC`

func (r *applicationRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("applications").
		Select(applicationViewColumns).
		Joins("LEFT JOIN users AS requester ON requester.id = applications.requester_id").
		Joins("LEFT JOIN users AS approver ON approver.id = applications.approver_id").
		Joins("LEFT JOIN departments ON departments.id = requester.department_id")
}

// applyFilter 应用过滤条件
func applyFilter(query *gorm.DB, filter ApplicationFilter) *gorm.DB {
	switch filter.Status {
	case FilterPending:
		query = query.Where("applications.status = ?", model.StatusPending)
	case FilterProcessed:
		query = query.Where("applications.status IN ?", []model.Status{model.StatusApproved, model.StatusDenied})
	}
	if filter.RequesterID != "" {
		query = query.Where("applications.requester_id = ?", filter.RequesterID)
	}
	if filter.ExcludeRequesterID != "" {
		query = query.Where("applications.requester_id <> ?", filter.ExcludeRequesterID)
	}
	return query
}

// Create 创建申请
func (r *applicationRepository) Create(ctx context.Context, app *model.ApplicationModel) error {
	if err := app.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(app).Error
}

// FindByID 根据 ID 查找申请
func (r *applicationRepository) FindByID(ctx context.Context, id string) (*model.ApplicationModel, error) {
	var app model.ApplicationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

// FindViewByID 根据 ID 查找带展示信息的申请
func (r *applicationRepository) FindViewByID(ctx context.Context, id string) (*model.ApplicationView, error) {
	var views []*model.ApplicationView
	if err := r.viewQuery(ctx).Where("applications.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrNotFound
	}
	return views[0], nil
}

// List 分页查询申请
func (r *applicationRepository) List(ctx context.Context, filter ApplicationFilter, page, pageSize int) ([]*model.ApplicationView, int64, error) {
	var total int64
	countQuery := applyFilter(r.db.WithContext(ctx).Model(&model.ApplicationModel{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	views := make([]*model.ApplicationView, 0)
	if total == 0 {
		return views, 0, nil
	}

	err := applyFilter(r.viewQuery(ctx), filter).
		Order(applicationOrder).
		Offset(offset(page, pageSize)).
		Limit(pageSize).
		Scan(&views).Error
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// ListApprovedBetween 查询申请人在日期区间内已批准的申请,日期格式 YYYY-MM-DD,包含两端
func (r *applicationRepository) ListApprovedBetween(ctx context.Context, requesterID, from, to string) ([]*model.ApplicationModel, error) {
	var apps []*model.ApplicationModel
	err := r.db.WithContext(ctx).
		Where("requester_id = ? AND status = ?", requesterID, model.StatusApproved).
		Where("requested_date >= ? AND requested_date <= ?", from, to).
		Order("requested_date ASC").
		Find(&apps).Error
	return apps, err
}

// TransitionFromPending 条件更新,只有当前状态为 pending 时才会生效
// 返回 false 表示申请已不是 pending(被并发处理或不存在)
func (r *applicationRepository) TransitionFromPending(ctx context.Context, id string, to model.Status, approverID string, processedAt time.Time, denialReason *string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.ApplicationModel{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{
			"status":        to,
			"approver_id":   approverID,
			"processed_at":  processedAt,
			"denial_reason": denialReason,
			"updated_at":    processedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// CountByStatus 按状态统计申请数量
func (r *applicationRepository) CountByStatus(ctx context.Context) (map[model.Status]int64, error) {
	var rows []struct {
		Status model.Status
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.ApplicationModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[model.Status]int64{
		model.StatusPending:  0,
		model.StatusApproved: 0,
		model.StatusDenied:   0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
