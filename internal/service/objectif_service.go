package service

import (
	"fmt"

	"cna-archives/internal/dto"
	"cna-archives/internal/models"
	"cna-archives/internal/repository"
)

// 每日目标的取值范围
const (
	MinDailyGoal = 1
	MaxDailyGoal = 100
)

// ObjectifService 每日目标，按历史记录方式保存，最新一条生效
type ObjectifService struct {
	repo        *repository.ObjectifRepository
	defaultGoal int
}

// NewObjectifService 创建每日目标服务
func NewObjectifService(repo *repository.ObjectifRepository, defaultGoal int) *ObjectifService {
	return &ObjectifService{repo: repo, defaultGoal: defaultGoal}
}

// CurrentGoal 当前每日目标，表为空时返回默认值
func (s *ObjectifService) CurrentGoal() (int, error) {
	latest, err := s.repo.Latest()
	if err != nil {
		if repository.IsNotFound(err) {
			return s.defaultGoal, nil
		}
		return 0, fmt.Errorf("查询每日目标失败: %w", err)
	}
	return latest.ObjectifQuotidien, nil
}

// Current 当前每日目标及其设置时间
func (s *ObjectifService) Current() (*dto.ObjectifInfo, error) {
	latest, err := s.repo.Latest()
	if err != nil {
		if repository.IsNotFound(err) {
			return &dto.ObjectifInfo{ObjectifQuotidien: s.defaultGoal}, nil
		}
		return nil, fmt.Errorf("查询每日目标失败: %w", err)
	}
	return &dto.ObjectifInfo{ObjectifQuotidien: latest.ObjectifQuotidien, UpdatedAt: latest.UpdatedAt}, nil
}

// SetGoal 追加一条新目标
func (s *ObjectifService) SetGoal(value int) (*dto.ObjectifInfo, error) {
	if value < MinDailyGoal || value > MaxDailyGoal {
		return nil, ErrInvalidGoal
	}
	o := &models.Objectif{ObjectifQuotidien: value}
	if err := s.repo.Append(o); err != nil {
		return nil, fmt.Errorf("保存每日目标失败: %w", err)
	}
	return &dto.ObjectifInfo{ObjectifQuotidien: o.ObjectifQuotidien, UpdatedAt: o.UpdatedAt}, nil
}

// History 目标历史，最新在前
func (s *ObjectifService) History() ([]dto.ObjectifInfo, error) {
	items, err := s.repo.History(0)
	if err != nil {
		return nil, fmt.Errorf("查询目标历史失败: %w", err)
	}
	out := make([]dto.ObjectifInfo, len(items))
	for i, o := range items {
		out[i] = dto.ObjectifInfo{ObjectifQuotidien: o.ObjectifQuotidien, UpdatedAt: o.UpdatedAt}
	}
	return out, nil
}
