package stats

import (
	"sort"
	"time"
)

// Record 参与统计的一条录入记录
type Record struct {
	Fonds      string
	Archiviste string
	Traitement time.Time
	Temps      int
}

// FondsShare 全宗分布
type FondsShare struct {
	Nom         string  `json:"nom"`
	Count       int     `json:"count"`
	MeanMinutes float64 `json:"temps_moyen"`
	Percentage  float64 `json:"pourcentage"`
}

// ByFonds 按全宗统计数量、平均时长和占比
// names 中的全宗即使没有记录也会出现（数量为 0），结果按数量降序
func ByFonds(records []Record, names []string) []FondsShare {
	index := make(map[string]int)
	var out []FondsShare
	times := make(map[string][]int)

	add := func(nom string) int {
		if i, ok := index[nom]; ok {
			return i
		}
		index[nom] = len(out)
		out = append(out, FondsShare{Nom: nom})
		return len(out) - 1
	}

	for _, n := range names {
		add(n)
	}
	for _, r := range records {
		i := add(r.Fonds)
		out[i].Count++
		times[r.Fonds] = append(times[r.Fonds], r.Temps)
	}

	counts := make([]int, len(out))
	for i := range out {
		counts[i] = out[i].Count
		out[i].MeanMinutes = Round(Mean(times[out[i].Nom]), 2)
	}
	for i, s := range Shares(counts) {
		out[i].Percentage = s
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Nom < out[j].Nom
	})
	return out
}

// ArchivisteStats 档案员绩效
type ArchivisteStats struct {
	Username     string     `json:"username"`
	Total        int        `json:"total_dossiers"`
	MeanMinutes  float64    `json:"temps_moyen"`
	LastSevenDay int        `json:"dossiers_7j"`
	First        *time.Time `json:"premiere_saisie,omitempty"`
	Last         *time.Time `json:"derniere_saisie,omitempty"`
	Tier         Tier       `json:"efficacite"`
	TierLabel    string     `json:"efficacite_label"`
}

// ByArchiviste 按档案员统计
// names 中的档案员即使没有记录也会出现；weekFrom 之后（含）的记录计入最近7天
func ByArchiviste(records []Record, names []string, weekFrom time.Time, goal int) []ArchivisteStats {
	index := make(map[string]int)
	var out []ArchivisteStats
	times := make(map[string][]int)

	add := func(username string) int {
		if i, ok := index[username]; ok {
			return i
		}
		index[username] = len(out)
		out = append(out, ArchivisteStats{Username: username})
		return len(out) - 1
	}

	for _, n := range names {
		add(n)
	}
	for _, r := range records {
		i := add(r.Archiviste)
		s := &out[i]
		s.Total++
		times[r.Archiviste] = append(times[r.Archiviste], r.Temps)
		if !r.Traitement.Before(weekFrom) {
			s.LastSevenDay++
		}
		ts := r.Traitement
		if s.First == nil || ts.Before(*s.First) {
			first := ts
			s.First = &first
		}
		if s.Last == nil || ts.After(*s.Last) {
			last := ts
			s.Last = &last
		}
	}

	for i := range out {
		out[i].MeanMinutes = Round(Mean(times[out[i].Username]), 2)
		out[i].Tier = EfficiencyTier(out[i].LastSevenDay, goal)
		out[i].TierLabel = out[i].Tier.Label()
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Username < out[j].Username
	})
	return out
}

// DayPoint 某一日的数量与平均时长
type DayPoint struct {
	Date        string  `json:"date"`
	Count       int     `json:"count"`
	MeanMinutes float64 `json:"temps_moyen"`
}

// Daily 按 loc 时区的自然日分组，按日期升序
func Daily(records []Record, loc *time.Location) []DayPoint {
	if loc == nil {
		loc = time.UTC
	}
	times := make(map[string][]int)
	for _, r := range records {
		day := r.Traitement.In(loc).Format("2006-01-02")
		times[day] = append(times[day], r.Temps)
	}

	out := make([]DayPoint, 0, len(times))
	for day, ts := range times {
		out = append(out, DayPoint{Date: day, Count: len(ts), MeanMinutes: Round(Mean(ts), 2)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Quick 列表页的快速统计
type Quick struct {
	Total         int     `json:"total"`
	MeanMinutes   float64 `json:"temps_moyen"`
	TotalMinutes  int     `json:"temps_total"`
	DistinctFonds int     `json:"fonds_differents"`
}

// QuickStats 计算快速统计
func QuickStats(records []Record) Quick {
	values := make([]int, len(records))
	fonds := make(map[string]struct{})
	for i, r := range records {
		values[i] = r.Temps
		fonds[r.Fonds] = struct{}{}
	}
	d := Describe(values)
	return Quick{
		Total:         d.Count,
		MeanMinutes:   Round(d.Mean, 2),
		TotalMinutes:  d.Total,
		DistinctFonds: len(fonds),
	}
}

// Minutes 取出所有录入时长
func Minutes(records []Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Temps
	}
	return out
}

// CountSince 统计 from 之后（含）的记录数
func CountSince(records []Record, from time.Time) int {
	n := 0
	for _, r := range records {
		if !r.Traitement.Before(from) {
			n++
		}
	}
	return n
}
