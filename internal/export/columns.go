// Package export 把录入记录和统计结果输出为 CSV、Markdown 与 PDF
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cna-archives/internal/dto"
	"cna-archives/internal/repository"
)

// ErrUnknownColumn 无法识别的列
var ErrUnknownColumn = errors.New("colonne inconnue")

// Column 可选列
type Column struct {
	Key   string
	Label string
	value func(r *repository.DossierRow, loc *time.Location) interface{}
}

// Value 列值，时间按 loc 时区显示
func (c Column) Value(r *repository.DossierRow, loc *time.Location) interface{} {
	if loc == nil {
		loc = time.UTC
	}
	return c.value(r, loc)
}

// Text 列值的文本形式
func (c Column) Text(r *repository.DossierRow, loc *time.Location) string {
	switch v := c.Value(r, loc).(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	default:
		return fmt.Sprint(v)
	}
}

func str(get func(r *repository.DossierRow) string) func(*repository.DossierRow, *time.Location) interface{} {
	return func(r *repository.DossierRow, _ *time.Location) interface{} { return get(r) }
}

var listingColumns = []Column{
	{Key: "fonds", Label: "Fonds", value: str(func(r *repository.DossierRow) string { return r.Fonds })},
	{Key: "objet", Label: "Objet", value: str(func(r *repository.DossierRow) string { return r.Objet })},
	{Key: "analyse", Label: "Analyse", value: str(func(r *repository.DossierRow) string { return r.Analyse })},
	{Key: "mots_cles", Label: "Mots-clés", value: str(func(r *repository.DossierRow) string { return r.MotsCles })},
	{Key: "date_debut", Label: "Date début", value: str(func(r *repository.DossierRow) string { return r.DateDebut })},
	{Key: "date_fin", Label: "Date fin", value: str(func(r *repository.DossierRow) string { return r.DateFin })},
	{Key: "archiviste", Label: "Archiviste", value: str(func(r *repository.DossierRow) string { return r.Archiviste })},
	{Key: "date_saisie", Label: "Date saisie", value: func(r *repository.DossierRow, loc *time.Location) interface{} {
		return r.DateTraitement.In(loc).Format("2006-01-02")
	}},
	{Key: "heure_saisie", Label: "Heure", value: func(r *repository.DossierRow, loc *time.Location) interface{} {
		return r.DateTraitement.In(loc).Format("15:04:05")
	}},
	{Key: "temps_saisie", Label: "Temps (min)", value: func(r *repository.DossierRow, _ *time.Location) interface{} {
		return r.TempsSaisie
	}},
}

// 完整导出在可选列之外包含全部ID和完整的处理时间
var fullColumns = []Column{
	{Key: "id", Label: "ID", value: func(r *repository.DossierRow, _ *time.Location) interface{} { return r.ID }},
	{Key: "fonds_id", Label: "ID fonds", value: func(r *repository.DossierRow, _ *time.Location) interface{} { return r.FondsID }},
	listingColumns[0],
	{Key: "objet_id", Label: "ID objet", value: func(r *repository.DossierRow, _ *time.Location) interface{} { return r.ObjetID }},
	listingColumns[1],
	listingColumns[2],
	listingColumns[3],
	listingColumns[4],
	listingColumns[5],
	{Key: "archiviste_id", Label: "ID archiviste", value: func(r *repository.DossierRow, _ *time.Location) interface{} { return r.ArchivisteID }},
	listingColumns[6],
	{Key: "date_traitement", Label: "Date de traitement", value: func(r *repository.DossierRow, loc *time.Location) interface{} {
		return r.DateTraitement.In(loc).Format("2006-01-02 15:04:05")
	}},
	listingColumns[9],
}

// DefaultColumnKeys 列表页默认显示的列
var DefaultColumnKeys = []string{"fonds", "objet", "analyse", "archiviste", "date_saisie", "temps_saisie"}

// ListingColumns 全部可选列
func ListingColumns() []Column {
	return append([]Column(nil), listingColumns...)
}

// FullColumns 完整导出的列
func FullColumns() []Column {
	return append([]Column(nil), fullColumns...)
}

// ParseColumns 按给定顺序解析列，支持逗号分隔；为空时使用默认列
func ParseColumns(keys []string) ([]Column, error) {
	var wanted []string
	for _, k := range keys {
		for _, part := range strings.Split(k, ",") {
			if part = strings.TrimSpace(part); part != "" {
				wanted = append(wanted, part)
			}
		}
	}
	if len(wanted) == 0 {
		wanted = DefaultColumnKeys
	}

	seen := make(map[string]bool, len(wanted))
	out := make([]Column, 0, len(wanted))
	for _, key := range wanted {
		if seen[key] {
			continue
		}
		col, ok := lookup(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
		}
		seen[key] = true
		out = append(out, col)
	}
	return out, nil
}

func lookup(key string) (Column, bool) {
	for _, c := range listingColumns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Info 列的键和显示名
func Info(cols []Column) []dto.ColumnInfo {
	out := make([]dto.ColumnInfo, len(cols))
	for i, c := range cols {
		out[i] = dto.ColumnInfo{Key: c.Key, Label: c.Label}
	}
	return out
}

// Project 只保留所选列
func Project(rows []repository.DossierRow, cols []Column, loc *time.Location) []map[string]interface{} {
	out := make([]map[string]interface{}, len(rows))
	for i := range rows {
		m := make(map[string]interface{}, len(cols)+1)
		m["id"] = rows[i].ID
		for _, c := range cols {
			m[c.Key] = c.Value(&rows[i], loc)
		}
		out[i] = m
	}
	return out
}
