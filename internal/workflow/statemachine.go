package workflow

import (
	"strings"

	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/repository"
)

// transitions 合法的状态迁移,终止状态没有出边
var transitions = map[model.Status][]model.Status{
	model.StatusPending: {model.StatusApproved, model.StatusDenied},
}

// CanTransition 判断状态迁移是否合法
func CanTransition(from, to model.Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ParseDecision 解析审批决定,不区分大小写
func ParseDecision(s string) (model.Status, error) {
	switch model.Status(strings.ToLower(strings.TrimSpace(s))) {
	case model.StatusApproved:
		return model.StatusApproved, nil
	case model.StatusDenied:
		return model.StatusDenied, nil
	}
	return "", ErrInvalidDecision
}

// ParseStatusFilter 解析列表状态过滤参数
func ParseStatusFilter(s string) (repository.StatusFilter, error) {
	switch repository.StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case repository.FilterAll:
		return repository.FilterAll, nil
	case repository.FilterPending:
		return repository.FilterPending, nil
	case repository.FilterProcessed:
		return repository.FilterProcessed, nil
	}
	return "", ErrInvalidStatusFilter
}
