package service

import (
	"fmt"
	"time"

	"cna-archives/internal/dto"
	"cna-archives/internal/export"
	"cna-archives/internal/models"
	"cna-archives/internal/period"
	"cna-archives/internal/repository"
	"cna-archives/internal/session"
	"cna-archives/internal/stats"
)

// StatsService 仪表盘、统计页与分析报告
type StatsService struct {
	dossierRepo *repository.DossierRepository
	userRepo    *repository.UserRepository
	fondsRepo   *repository.FondsRepository
	objetRepo   *repository.ObjetRepository
	objectifs   *ObjectifService
	loc         *time.Location
	now         func() time.Time
}

// NewStatsService 创建统计服务
func NewStatsService(
	dossierRepo *repository.DossierRepository,
	userRepo *repository.UserRepository,
	fondsRepo *repository.FondsRepository,
	objetRepo *repository.ObjetRepository,
	objectifs *ObjectifService,
	loc *time.Location,
) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{
		dossierRepo: dossierRepo,
		userRepo:    userRepo,
		fondsRepo:   fondsRepo,
		objetRepo:   objetRepo,
		objectifs:   objectifs,
		loc:         loc,
		now:         time.Now,
	}
}

func (s *StatsService) records(filter repository.DossierFilter) ([]stats.Record, error) {
	rows, err := s.dossierRepo.ListRows(filter, repository.SortDateAsc, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("查询统计数据失败: %w", err)
	}
	return toRecords(rows), nil
}

func (s *StatsService) fondsNames() ([]string, error) {
	items, err := s.fondsRepo.List()
	if err != nil {
		return nil, fmt.Errorf("查询全宗失败: %w", err)
	}
	names := make([]string, len(items))
	for i, f := range items {
		names[i] = f.Nom
	}
	return names, nil
}

func (s *StatsService) archivisteNames() ([]string, error) {
	users, err := s.userRepo.ListByRole(models.RoleArchiviste)
	if err != nil {
		return nil, fmt.Errorf("查询档案员失败: %w", err)
	}
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username
	}
	return names, nil
}

func rangeFilter(r period.Range) repository.DossierFilter {
	return repository.DossierFilter{TraitementFrom: r.From, TraitementTo: r.To}
}

// Dashboard 全局概况，外加当前用户今天的录入数
func (s *StatsService) Dashboard(identity session.Identity) (*dto.DashboardResponse, error) {
	now := s.now()
	total, err := s.dossierRepo.CountAll()
	if err != nil {
		return nil, fmt.Errorf("统计记录总数失败: %w", err)
	}

	today, _ := period.Resolve(period.Today, now, s.loc, "", "")
	todayCount, err := s.dossierRepo.Count(rangeFilter(today))
	if err != nil {
		return nil, fmt.Errorf("统计今日记录失败: %w", err)
	}
	mine := rangeFilter(today)
	owner := identity.ID
	mine.ArchivisteID = &owner
	mineCount, err := s.dossierRepo.Count(mine)
	if err != nil {
		return nil, fmt.Errorf("统计个人今日记录失败: %w", err)
	}

	goal, err := s.objectifs.CurrentGoal()
	if err != nil {
		return nil, err
	}

	week, err := s.records(rangeFilter(period.LastDays(7, now, s.loc)))
	if err != nil {
		return nil, err
	}
	all, err := s.records(repository.DossierFilter{})
	if err != nil {
		return nil, err
	}
	names, err := s.fondsNames()
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalDossiers:         total,
		DossiersAujourdhui:    todayCount,
		MesDossiersAujourdhui: mineCount,
		ObjectifQuotidien:     goal,
		TauxObjectif:          stats.Round(stats.Attainment(int(todayCount), goal), 1),
		Evolution7Jours:       stats.Daily(week, s.loc),
		RepartitionFonds:      stats.ByFonds(all, names),
	}, nil
}

// goalTracking 今日完成率、近7天日均与全年推算，不受统计时间段影响
func (s *StatsService) goalTracking(now time.Time, goal int) (dto.GoalTracking, error) {
	today, _ := period.Resolve(period.Today, now, s.loc, "", "")
	todayCount, err := s.dossierRepo.Count(rangeFilter(today))
	if err != nil {
		return dto.GoalTracking{}, fmt.Errorf("统计今日记录失败: %w", err)
	}
	week, err := s.records(rangeFilter(period.LastDays(7, now, s.loc)))
	if err != nil {
		return dto.GoalTracking{}, err
	}

	rate := stats.Attainment(int(todayCount), goal)
	// 只在有录入的日期上取平均
	mean := stats.ActiveDayMean(stats.Daily(week, s.loc))
	return dto.GoalTracking{
		DossiersAujourdhui: int(todayCount),
		ObjectifQuotidien:  goal,
		TauxObjectif:       stats.Round(rate, 1),
		Couleur:            stats.AttainmentBand(rate),
		Moyenne7Jours:      stats.Round(mean, 1),
		MoyenneVsObjectif:  stats.Round(stats.Ratio(mean, goal), 1),
		ProjectionAnnuelle: stats.AnnualProjection(mean),
	}, nil
}

// Statistics 管理员统计页，period 为空时统计全部数据
func (s *StatsService) Statistics(periodKey, from, to string) (*dto.StatisticsResponse, error) {
	preset, err := period.Parse(periodKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	now := s.now()
	rng, err := period.Resolve(preset, now, s.loc, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	records, err := s.records(rangeFilter(rng))
	if err != nil {
		return nil, err
	}
	goal, err := s.objectifs.CurrentGoal()
	if err != nil {
		return nil, err
	}
	archivistes, err := s.archivisteNames()
	if err != nil {
		return nil, err
	}
	fonds, err := s.fondsNames()
	if err != nil {
		return nil, err
	}
	tracking, err := s.goalTracking(now, goal)
	if err != nil {
		return nil, err
	}

	weekFrom := *period.LastDays(7, now, s.loc).From
	return &dto.StatisticsResponse{
		Periode:          string(preset),
		PeriodeLabel:     preset.Label(),
		Archivistes:      stats.ByArchiviste(records, archivistes, weekFrom, goal),
		ParJour:          stats.Daily(records, s.loc),
		RepartitionFonds: stats.ByFonds(records, fonds),
		Objectifs:        tracking,
	}, nil
}

// Report 文字报告与PDF报告的数据
func (s *StatsService) Report() (*dto.ReportData, error) {
	now := s.now()
	all, err := s.records(repository.DossierFilter{})
	if err != nil {
		return nil, err
	}
	goal, err := s.objectifs.CurrentGoal()
	if err != nil {
		return nil, err
	}
	archivistes, err := s.archivisteNames()
	if err != nil {
		return nil, err
	}
	fonds, err := s.fondsNames()
	if err != nil {
		return nil, err
	}

	week := period.LastDays(7, now, s.loc)
	month := period.LastDays(30, now, s.loc)
	var weekTimes, monthTimes []int
	for _, r := range all {
		if week.Contains(r.Traitement) {
			weekTimes = append(weekTimes, r.Temps)
		}
		if month.Contains(r.Traitement) {
			monthTimes = append(monthTimes, r.Temps)
		}
	}

	monthMean := stats.Mean(monthTimes)
	daily := stats.DailyMean(len(weekTimes), 7)
	return &dto.ReportData{
		GeneratedAt:        now.UTC().Truncate(time.Second),
		TotalDossiers:      int64(len(all)),
		ObjectifQuotidien:  goal,
		DossiersSemaine:    len(weekTimes),
		TempsMoyenSemaine:  stats.Round(stats.Mean(weekTimes), 1),
		DossiersMois:       len(monthTimes),
		TempsMoyenMois:     stats.Round(monthMean, 1),
		Archivistes:        stats.ByArchiviste(all, archivistes, *week.From, goal),
		RepartitionFonds:   stats.ByFonds(all, fonds),
		Recommandation:     stats.Recommendation(monthMean),
		MoyenneJour:        stats.Round(daily, 1),
		ProjectionAnnuelle: stats.AnnualProjection(daily),
	}, nil
}

// Narrative 生成 Markdown 文字报告
func (s *StatsService) Narrative() (*dto.NarrativeResponse, error) {
	data, err := s.Report()
	if err != nil {
		return nil, err
	}
	return &dto.NarrativeResponse{Markdown: export.Markdown(data, s.loc), Data: *data}, nil
}

// ReportPDF 生成PDF报告及下载文件名
func (s *StatsService) ReportPDF() ([]byte, string, error) {
	data, err := s.Report()
	if err != nil {
		return nil, "", err
	}
	content, err := export.PDF(data, s.loc)
	if err != nil {
		return nil, "", err
	}
	return content, export.Filename(export.PrefixReport, data.GeneratedAt, s.loc, "pdf"), nil
}

// Overview 系统概况
func (s *StatsService) Overview() (*dto.OverviewResponse, error) {
	dossiers, err := s.dossierRepo.CountAll()
	if err != nil {
		return nil, fmt.Errorf("统计记录总数失败: %w", err)
	}
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("统计用户总数失败: %w", err)
	}
	fonds, err := s.fondsRepo.List()
	if err != nil {
		return nil, fmt.Errorf("查询全宗失败: %w", err)
	}
	objets, err := s.objetRepo.List()
	if err != nil {
		return nil, fmt.Errorf("查询档案类型失败: %w", err)
	}
	goal, err := s.objectifs.CurrentGoal()
	if err != nil {
		return nil, err
	}
	return &dto.OverviewResponse{
		TotalDossiers:     dossiers,
		TotalUtilisateurs: users,
		TotalFonds:        len(fonds),
		TotalObjets:       len(objets),
		ObjectifQuotidien: goal,
	}, nil
}
