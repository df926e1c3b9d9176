package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cna-archives/internal/dto"
	"cna-archives/internal/export"
	"cna-archives/internal/period"
	"cna-archives/internal/repository"
	"cna-archives/internal/session"
	"cna-archives/internal/stats"
)

// DossierCriteria 查询条件：过滤器加上处理时间的时间段
type DossierCriteria struct {
	Filter repository.DossierFilter
	Period string
	From   string
	To     string
}

// CriteriaFromQuery 把请求参数转换为查询条件
func CriteriaFromQuery(q *dto.DossierQuery) DossierCriteria {
	return DossierCriteria{
		Filter: repository.DossierFilter{
			Text:          q.Q,
			Fonds:         splitValues(q.Fonds),
			Objets:        splitValues(q.Objets),
			Archivistes:   splitValues(q.Archivistes),
			DateDebutFrom: q.DateDebut,
			DateFinTo:     q.DateFin,
		},
		Period: q.Period,
		From:   q.From,
		To:     q.To,
	}
}

// splitValues 同时支持重复参数和逗号分隔
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// DossierService 录入记录的检索、列表、分析与导出
type DossierService struct {
	dossierRepo *repository.DossierRepository
	loc         *time.Location
	now         func() time.Time
}

// NewDossierService 创建检索服务
func NewDossierService(dossierRepo *repository.DossierRepository, loc *time.Location) *DossierService {
	if loc == nil {
		loc = time.UTC
	}
	return &DossierService{dossierRepo: dossierRepo, loc: loc, now: time.Now}
}

// scope 解析时间段，非管理员强制只看自己的记录
func (s *DossierService) scope(identity session.Identity, c DossierCriteria) (repository.DossierFilter, error) {
	f := c.Filter

	preset, err := period.Parse(c.Period)
	if err != nil {
		return f, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	rng, err := period.Resolve(preset, s.now(), s.loc, c.From, c.To)
	if err != nil {
		return f, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	f.TraitementFrom, f.TraitementTo = rng.From, rng.To

	if !identity.IsAdmin() {
		owner := identity.ID
		f.ArchivisteID = &owner
	}
	return f, nil
}

func parseSort(key string) (repository.DossierSort, error) {
	sort, ok := repository.ParseSort(key)
	if !ok {
		return "", fmt.Errorf("%w: tri %q", ErrInvalidFilter, key)
	}
	return sort, nil
}

// Search 检索页，每页固定 10 条，默认按处理时间倒序
func (s *DossierService) Search(identity session.Identity, c DossierCriteria, sortKey string, page int) (*dto.DossierPage, error) {
	filter, err := s.scope(identity, c)
	if err != nil {
		return nil, err
	}
	sort, err := parseSort(sortKey)
	if err != nil {
		return nil, err
	}

	total, err := s.dossierRepo.Count(filter)
	if err != nil {
		return nil, fmt.Errorf("统计检索结果失败: %w", err)
	}
	p := Paginate(total, page, SearchPageSize)

	items := make([]repository.DossierRow, 0)
	if total > 0 {
		items, err = s.dossierRepo.ListRows(filter, sort, p.Offset, p.Size)
		if err != nil {
			return nil, fmt.Errorf("检索录入记录失败: %w", err)
		}
	}

	return &dto.DossierPage{
		Items:   items,
		Total:   total,
		Page:    p.Page,
		PerPage: p.Size,
		Pages:   p.Pages,
	}, nil
}

// List 列表页：所选列、可选每页条数，并附带整体结果的快速统计
func (s *DossierService) List(identity session.Identity, c DossierCriteria, sortKey string, page, size int, columns []string) (*dto.DossierListing, error) {
	filter, err := s.scope(identity, c)
	if err != nil {
		return nil, err
	}
	sort, err := parseSort(sortKey)
	if err != nil {
		return nil, err
	}
	perPage, err := listingSize(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %d lignes par page", err, size)
	}
	cols, err := parseColumns(columns)
	if err != nil {
		return nil, err
	}

	totals, err := s.dossierRepo.Totals(filter)
	if err != nil {
		return nil, fmt.Errorf("统计列表结果失败: %w", err)
	}
	p := Paginate(totals.Total, page, perPage)

	rows := make([]repository.DossierRow, 0)
	if totals.Total > 0 {
		rows, err = s.dossierRepo.ListRows(filter, sort, p.Offset, p.Size)
		if err != nil {
			return nil, fmt.Errorf("查询列表失败: %w", err)
		}
	}

	quick := stats.Quick{
		Total:         int(totals.Total),
		TotalMinutes:  int(totals.TotalMinutes),
		DistinctFonds: int(totals.DistinctFonds),
	}
	if totals.Total > 0 {
		quick.MeanMinutes = stats.Round(float64(totals.TotalMinutes)/float64(totals.Total), 2)
	}

	return &dto.DossierListing{
		Columns: export.Info(cols),
		Rows:    export.Project(rows, cols, s.loc),
		Total:   totals.Total,
		Page:    p.Page,
		PerPage: p.Size,
		Pages:   p.Pages,
		Stats:   quick,
	}, nil
}

func parseColumns(keys []string) ([]export.Column, error) {
	cols, err := export.ParseColumns(keys)
	if err != nil {
		if errors.Is(err, export.ErrUnknownColumn) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		return nil, err
	}
	return cols, nil
}

// Analyze 对满足条件的全部记录做详细分析
func (s *DossierService) Analyze(identity session.Identity, c DossierCriteria) (*dto.DossierAnalysis, error) {
	filter, err := s.scope(identity, c)
	if err != nil {
		return nil, err
	}
	rows, err := s.dossierRepo.ListRows(filter, repository.SortDateAsc, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("查询分析数据失败: %w", err)
	}

	records := toRecords(rows)
	summary := stats.Describe(stats.Minutes(records))
	efficacite := ""
	if summary.Count > 0 {
		efficacite = stats.TimeEfficiency(summary.Mean)
	}

	return &dto.DossierAnalysis{
		Stats:            stats.QuickStats(records),
		Temps:            summary,
		Efficacite:       efficacite,
		RepartitionFonds: stats.ByFonds(records, nil),
		ParJour:          stats.Daily(records, s.loc),
	}, nil
}

// ExportSearch 导出检索结果的全部可选列
func (s *DossierService) ExportSearch(identity session.Identity, c DossierCriteria, sortKey string) ([]byte, string, error) {
	return s.export(identity, c, sortKey, export.ListingColumns(), export.PrefixSearch)
}

// ExportListing 按所选列导出列表结果
func (s *DossierService) ExportListing(identity session.Identity, c DossierCriteria, sortKey string, columns []string) ([]byte, string, error) {
	cols, err := parseColumns(columns)
	if err != nil {
		return nil, "", err
	}
	return s.export(identity, c, sortKey, cols, export.PrefixListing)
}

// ExportAll 管理员导出全部记录的全部字段，最新的在前
func (s *DossierService) ExportAll() ([]byte, string, error) {
	rows, err := s.dossierRepo.ListRows(repository.DossierFilter{}, repository.SortDateDesc, 0, 0)
	if err != nil {
		return nil, "", fmt.Errorf("查询导出数据失败: %w", err)
	}
	content, err := export.CSV(export.FullColumns(), rows, s.loc)
	if err != nil {
		return nil, "", err
	}
	return content, export.Filename(export.PrefixFull, s.now(), s.loc, "csv"), nil
}

func (s *DossierService) export(identity session.Identity, c DossierCriteria, sortKey string, cols []export.Column, prefix string) ([]byte, string, error) {
	filter, err := s.scope(identity, c)
	if err != nil {
		return nil, "", err
	}
	sort, err := parseSort(sortKey)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.dossierRepo.ListRows(filter, sort, 0, 0)
	if err != nil {
		return nil, "", fmt.Errorf("查询导出数据失败: %w", err)
	}
	content, err := export.CSV(cols, rows, s.loc)
	if err != nil {
		return nil, "", err
	}
	return content, export.Filename(prefix, s.now(), s.loc, "csv"), nil
}

func toRecords(rows []repository.DossierRow) []stats.Record {
	out := make([]stats.Record, len(rows))
	for i, r := range rows {
		out[i] = stats.Record{
			Fonds:      r.Fonds,
			Archiviste: r.Archiviste,
			Traitement: r.DateTraitement,
			Temps:      r.TempsSaisie,
		}
	}
	return out
}
