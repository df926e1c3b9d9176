package service

import (
	"fmt"
	"strings"

	"cna-archives/internal/dto"
	"cna-archives/internal/models"
	"cna-archives/internal/repository"
)

// ReferenceService 全宗与档案类型管理
type ReferenceService struct {
	fondsRepo *repository.FondsRepository
	objetRepo *repository.ObjetRepository
}

// NewReferenceService 创建参考数据服务
func NewReferenceService(fondsRepo *repository.FondsRepository, objetRepo *repository.ObjetRepository) *ReferenceService {
	return &ReferenceService{
		fondsRepo: fondsRepo,
		objetRepo: objetRepo,
	}
}

// ListFonds 按名称列出全宗
func (s *ReferenceService) ListFonds() ([]dto.ReferenceInfo, error) {
	items, err := s.fondsRepo.List()
	if err != nil {
		return nil, fmt.Errorf("查询全宗失败: %w", err)
	}
	out := make([]dto.ReferenceInfo, len(items))
	for i, f := range items {
		out[i] = dto.ReferenceInfo{ID: f.ID, Nom: f.Nom, Description: f.Description, CreatedAt: f.CreatedAt}
	}
	return out, nil
}

// CreateFonds 新建全宗
func (s *ReferenceService) CreateFonds(req *dto.CreateReferenceRequest) (*dto.ReferenceInfo, error) {
	nom := strings.TrimSpace(req.Nom)
	if nom == "" {
		return nil, ErrNameRequired
	}

	exists, err := s.fondsRepo.ExistsByNom(nom)
	if err != nil {
		return nil, fmt.Errorf("检查全宗名称失败: %w", err)
	}
	if exists {
		return nil, ErrDuplicateName
	}

	f := &models.Fonds{Nom: nom, Description: strings.TrimSpace(req.Description)}
	if err := s.fondsRepo.Create(f); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("创建全宗失败: %w", err)
	}
	return &dto.ReferenceInfo{ID: f.ID, Nom: f.Nom, Description: f.Description, CreatedAt: f.CreatedAt}, nil
}

// ListObjets 按名称列出档案类型
func (s *ReferenceService) ListObjets() ([]dto.ReferenceInfo, error) {
	items, err := s.objetRepo.List()
	if err != nil {
		return nil, fmt.Errorf("查询档案类型失败: %w", err)
	}
	out := make([]dto.ReferenceInfo, len(items))
	for i, o := range items {
		out[i] = dto.ReferenceInfo{ID: o.ID, Nom: o.Nom, Description: o.Description, CreatedAt: o.CreatedAt}
	}
	return out, nil
}

// CreateObjet 新建档案类型
func (s *ReferenceService) CreateObjet(req *dto.CreateReferenceRequest) (*dto.ReferenceInfo, error) {
	nom := strings.TrimSpace(req.Nom)
	if nom == "" {
		return nil, ErrNameRequired
	}

	exists, err := s.objetRepo.ExistsByNom(nom)
	if err != nil {
		return nil, fmt.Errorf("检查档案类型名称失败: %w", err)
	}
	if exists {
		return nil, ErrDuplicateName
	}

	o := &models.Objet{Nom: nom, Description: strings.TrimSpace(req.Description)}
	if err := s.objetRepo.Create(o); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("创建档案类型失败: %w", err)
	}
	return &dto.ReferenceInfo{ID: o.ID, Nom: o.Nom, Description: o.Description, CreatedAt: o.CreatedAt}, nil
}
