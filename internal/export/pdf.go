package export

import (
	"fmt"
	"strconv"
	"time"

	"cna-archives/internal/dto"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	titleStyle   = props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}
	subtitle     = props.Text{Size: 10, Align: align.Center, Color: &props.Color{Red: 90, Green: 90, Blue: 90}}
	sectionStyle = props.Text{Size: 12, Style: fontstyle.Bold, Top: 3}
	headerStyle  = props.Text{Size: 9, Style: fontstyle.Bold}
	cellStyle    = props.Text{Size: 9}
)

// PDF 统计报告：标题、汇总指标、档案员和全宗两张表
func PDF(data *dto.ReportData, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRows(
		text.NewRow(12, "Centre National des Archives", titleStyle),
		text.NewRow(8, "Rapport statistique de saisie", props.Text{Size: 12, Align: align.Center}),
		text.NewRow(8, "Généré le "+data.GeneratedAt.In(loc).Format("02/01/2006 15:04"), subtitle),
	)

	m.AddRows(text.NewRow(10, "Synthèse", sectionStyle))
	m.AddRows(metricRows(data)...)

	m.AddRows(text.NewRow(10, "Performance des archivistes", sectionStyle))
	m.AddRows(tableRows(
		[]string{"Archiviste", "Total", "7 jours", "Temps moyen (min)", "Statut"},
		[]int{4, 2, 2, 2, 2},
		archivisteCells(data),
		"Aucun archiviste",
	)...)

	m.AddRows(text.NewRow(10, "Répartition par fonds", sectionStyle))
	m.AddRows(tableRows(
		[]string{"Fonds", "Dossiers", "Pourcentage", "Temps moyen (min)"},
		[]int{5, 2, 3, 2},
		fondsCells(data),
		"Aucun fonds",
	)...)

	m.AddRows(
		text.NewRow(10, "Recommandation", sectionStyle),
		text.NewRow(10, plain(data.Recommandation), cellStyle),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("生成PDF失败: %w", err)
	}
	return doc.GetBytes(), nil
}

func metricRows(data *dto.ReportData) []core.Row {
	metrics := [][2]string{
		{"Total des dossiers", Int(data.TotalDossiers)},
		{"Objectif quotidien", strconv.Itoa(data.ObjectifQuotidien) + " dossiers/jour"},
		{"Dossiers (7 jours)", strconv.Itoa(data.DossiersSemaine)},
		{"Temps moyen (7 jours)", Decimal(data.TempsMoyenSemaine) + " min"},
		{"Dossiers (30 jours)", strconv.Itoa(data.DossiersMois)},
		{"Temps moyen (30 jours)", Decimal(data.TempsMoyenMois) + " min"},
		{"Moyenne journalière", Decimal(data.MoyenneJour)},
		{"Projection annuelle", Int(int64(data.ProjectionAnnuelle))},
	}
	rows := make([]core.Row, 0, len(metrics))
	for _, kv := range metrics {
		rows = append(rows, row.New(6).Add(
			text.NewCol(6, kv[0], headerStyle),
			text.NewCol(6, plain(kv[1]), cellStyle),
		))
	}
	return rows
}

func archivisteCells(data *dto.ReportData) [][]string {
	out := make([][]string, 0, len(data.Archivistes))
	for _, a := range data.Archivistes {
		out = append(out, []string{
			a.Username,
			strconv.Itoa(a.Total),
			strconv.Itoa(a.LastSevenDay),
			Decimal(a.MeanMinutes),
			a.TierLabel,
		})
	}
	return out
}

func fondsCells(data *dto.ReportData) [][]string {
	out := make([][]string, 0, len(data.RepartitionFonds))
	for _, f := range data.RepartitionFonds {
		out = append(out, []string{
			f.Nom,
			strconv.Itoa(f.Count),
			Decimal(f.Percentage) + " %",
			Decimal(f.MeanMinutes),
		})
	}
	return out
}

// tableRows 表头加数据行，sizes 为 12 栅格宽度
func tableRows(header []string, sizes []int, cells [][]string, empty string) []core.Row {
	rows := make([]core.Row, 0, len(cells)+1)
	rows = append(rows, row.New(7).Add(textCols(header, sizes, headerStyle)...))
	if len(cells) == 0 {
		return append(rows, text.NewRow(6, empty, cellStyle))
	}
	for _, c := range cells {
		rows = append(rows, row.New(6).Add(textCols(c, sizes, cellStyle)...))
	}
	return rows
}

func textCols(values []string, sizes []int, style props.Text) []core.Col {
	cols := make([]core.Col, len(values))
	for i, v := range values {
		cols[i] = text.NewCol(sizes[i], plain(v), style)
	}
	return cols
}
