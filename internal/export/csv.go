package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"cna-archives/internal/repository"
)

// 下载文件名前缀
const (
	PrefixListing = "saisies"
	PrefixSearch  = "recherche_archives"
	PrefixFull    = "export_complet_archives"
	PrefixReport  = "rapport_statistiques"
)

// CSV 输出表头为显示名的 CSV，字段按 RFC 4180 转义
func CSV(cols []Column, rows []repository.DossierRow, loc *time.Location) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Label
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("写入CSV表头失败: %w", err)
	}

	record := make([]string, len(cols))
	for i := range rows {
		for j, c := range cols {
			record[j] = c.Text(&rows[i], loc)
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("写入CSV数据失败: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV写入错误: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename 带时间戳的文件名，例如 saisies_20240601_101500.csv
func Filename(prefix string, now time.Time, loc *time.Location, ext string) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("%s_%s.%s", prefix, now.In(loc).Format("20060102_150405"), ext)
}
