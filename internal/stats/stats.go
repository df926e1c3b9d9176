// Package stats 录入记录的聚合统计，全部为纯函数
package stats

import (
	"math"
	"sort"
)

// Round 四舍五入到指定小数位
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Mean 平均值，空集合为 0
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values))
}

// Summary 描述统计
type Summary struct {
	Count  int     `json:"count"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	Total  int     `json:"total"`
}

// Describe 计算描述统计，空集合全部为 0
func Describe(values []int) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	total := 0
	for _, v := range sorted {
		total += v
	}

	n := len(sorted)
	var median float64
	if n%2 == 1 {
		median = float64(sorted[n/2])
	} else {
		median = float64(sorted[n/2-1]+sorted[n/2]) / 2
	}

	return Summary{
		Count:  n,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Median: median,
		Mean:   float64(total) / float64(n),
		Total:  total,
	}
}

// Shares 各项占总数的百分比，保留两位小数；总数为 0 时全部为 0
func Shares(counts []int) []float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	shares := make([]float64, len(counts))
	if total == 0 {
		return shares
	}
	for i, c := range counts {
		shares[i] = Round(float64(c)*100/float64(total), 2)
	}
	return shares
}

// Attainment 今日完成率 = 今日数量 / 目标 × 100
func Attainment(today, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return float64(today) * 100 / float64(goal)
}

// Ratio 日均数量相对目标的百分比
func Ratio(dailyMean float64, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return dailyMean * 100 / float64(goal)
}

// DailyMean 最近 days 天的日均数量
func DailyMean(count, days int) float64 {
	if days <= 0 {
		return 0
	}
	return float64(count) / float64(days)
}

// ActiveDayMean 有录入的日期上的平均日数量，没有记录的日期不计入
func ActiveDayMean(days []DayPoint) float64 {
	if len(days) == 0 {
		return 0
	}
	total := 0
	for _, d := range days {
		total += d.Count
	}
	return float64(total) / float64(len(days))
}

// AnnualProjection 按日均推算全年数量，小数部分舍去
func AnnualProjection(dailyMean float64) int {
	return int(dailyMean * 365)
}
