package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cna-archives/internal/dto"
	"cna-archives/internal/models"
	"cna-archives/internal/repository"
	"cna-archives/internal/session"

	"github.com/sirupsen/logrus"
)

// IntakeTimer 保存每个用户录入表单的打开时间
type IntakeTimer interface {
	MarkIntakeStart(ctx context.Context, userID uint, at time.Time) error
	IntakeStart(ctx context.Context, userID uint) (time.Time, bool, error)
}

// IntakeService 档案录入
type IntakeService struct {
	dossierRepo *repository.DossierRepository
	fondsRepo   *repository.FondsRepository
	objetRepo   *repository.ObjetRepository
	userRepo    *repository.UserRepository
	timer       IntakeTimer
	logger      *logrus.Logger
	now         func() time.Time
}

// NewIntakeService 创建录入服务
func NewIntakeService(
	dossierRepo *repository.DossierRepository,
	fondsRepo *repository.FondsRepository,
	objetRepo *repository.ObjetRepository,
	userRepo *repository.UserRepository,
	timer IntakeTimer,
	logger *logrus.Logger,
) *IntakeService {
	return &IntakeService{
		dossierRepo: dossierRepo,
		fondsRepo:   fondsRepo,
		objetRepo:   objetRepo,
		userRepo:    userRepo,
		timer:       timer,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *IntakeService) clock() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// StartIntake 打开录入表单时记录开始时间
func (s *IntakeService) StartIntake(ctx context.Context, identity session.Identity) (*dto.IntakeStartResponse, error) {
	now := s.clock()
	if err := s.timer.MarkIntakeStart(ctx, identity.ID, now); err != nil {
		return nil, err
	}
	return &dto.IntakeStartResponse{StartedAt: now}, nil
}

// Submit 提交一条录入记录
// 校验顺序：analyse 非空，日期区间，引用的全宗/档案类型/用户存在
func (s *IntakeService) Submit(ctx context.Context, identity session.Identity, req *dto.SubmitDossierRequest) (*dto.SubmitDossierResponse, error) {
	if strings.TrimSpace(req.Analyse) == "" {
		return nil, ErrEmptyAnalysis
	}

	debut, err := time.Parse(models.DateLayout, req.DateDebut)
	if err != nil {
		return nil, fmt.Errorf("%w: date de début %q", ErrInvalidDateRange, req.DateDebut)
	}
	fin, err := time.Parse(models.DateLayout, req.DateFin)
	if err != nil {
		return nil, fmt.Errorf("%w: date de fin %q", ErrInvalidDateRange, req.DateFin)
	}
	if debut.After(fin) {
		return nil, ErrInvalidDateRange
	}

	if err := s.ensureReferences(identity.ID, req.FondsID, req.ObjetID); err != nil {
		return nil, err
	}

	now := s.clock()
	elapsed := s.elapsedMinutes(ctx, identity.ID, now)

	d := &models.Dossier{
		FondsID:        req.FondsID,
		ObjetID:        req.ObjetID,
		Analyse:        req.Analyse,
		MotsCles:       req.MotsCles,
		DateDebut:      debut.Format(models.DateLayout),
		DateFin:        fin.Format(models.DateLayout),
		ArchivisteID:   identity.ID,
		DateTraitement: now,
		TempsSaisie:    elapsed,
	}
	if err := s.dossierRepo.Create(d); err != nil {
		return nil, fmt.Errorf("保存录入记录失败: %w", err)
	}

	// 计时重新开始，下一条记录单独计时
	if err := s.timer.MarkIntakeStart(ctx, identity.ID, now); err != nil {
		s.logger.WithError(err).WithField("user_id", identity.ID).Warn("重置录入计时失败")
	}

	return &dto.SubmitDossierResponse{ID: d.ID, TempsSaisie: elapsed}, nil
}

func (s *IntakeService) ensureReferences(userID, fondsID, objetID uint) error {
	if _, err := s.fondsRepo.GetByID(fondsID); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("%w: fonds %d", ErrNotFound, fondsID)
		}
		return fmt.Errorf("查询全宗失败: %w", err)
	}
	if _, err := s.objetRepo.GetByID(objetID); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("%w: objet %d", ErrNotFound, objetID)
		}
		return fmt.Errorf("查询档案类型失败: %w", err)
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("%w: utilisateur %d", ErrNotFound, userID)
		}
		return fmt.Errorf("查询用户失败: %w", err)
	}
	return nil
}

// elapsedMinutes 从表单打开到提交的整分钟数，未记录开始时间时为 0
func (s *IntakeService) elapsedMinutes(ctx context.Context, userID uint, now time.Time) int {
	start, ok, err := s.timer.IntakeStart(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("读取录入计时失败")
		return 0
	}
	if !ok || !now.After(start) {
		return 0
	}
	return int(now.Sub(start) / time.Minute)
}

// Get 获取一条录入记录，非管理员只能查看自己的记录
func (s *IntakeService) Get(identity session.Identity, id uint) (*repository.DossierRow, error) {
	row, err := s.dossierRepo.GetRow(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询录入记录失败: %w", err)
	}
	if !identity.IsAdmin() && row.ArchivisteID != identity.ID {
		return nil, ErrNotFound
	}
	return row, nil
}
