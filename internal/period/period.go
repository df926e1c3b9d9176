// Package period 把时间段预设转换为 date_traitement 的半开区间 [From, To)
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Preset 时间段预设
type Preset string

const (
	All    Preset = "all"
	Today  Preset = "today"
	Week   Preset = "week"
	Month  Preset = "month"
	Year   Preset = "year"
	Custom Preset = "custom"
)

const dateLayout = "2006-01-02"

// ErrInvalidPeriod 无法识别的时间段
var ErrInvalidPeriod = errors.New("période invalide")

var labels = map[Preset]string{
	All:    "Toutes les données",
	Today:  "Aujourd'hui",
	Week:   "7 derniers jours",
	Month:  "30 derniers jours",
	Year:   "Année en cours",
	Custom: "Période personnalisée",
}

// Label 显示名称
func (p Preset) Label() string {
	if l, ok := labels[p]; ok {
		return l
	}
	return string(p)
}

// Parse 解析预设，空字符串视为 all
func Parse(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return All, nil
	}
	if _, ok := labels[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return p, nil
}

// Range date_traitement 的半开区间，nil 表示不限
type Range struct {
	From *time.Time
	To   *time.Time
}

// Contains 判断时间是否落在区间内
func (r Range) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && !t.Before(*r.To) {
		return false
	}
	return true
}

// Resolve 计算预设对应的区间，日界按 loc 时区划分，结果为 UTC
// custom 需要 from/to 两个包含在内的日期（AAAA-MM-JJ）
func Resolve(p Preset, now time.Time, loc *time.Location, from, to string) (Range, error) {
	if loc == nil {
		loc = time.UTC
	}
	today := StartOfDay(now, loc)

	switch p {
	case "", All:
		return Range{}, nil
	case Today:
		return between(today, today.AddDate(0, 0, 1)), nil
	case Week:
		return since(today.AddDate(0, 0, -7)), nil
	case Month:
		return since(today.AddDate(0, 0, -30)), nil
	case Year:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return between(start, start.AddDate(1, 0, 0)), nil
	case Custom:
		start, err := time.ParseInLocation(dateLayout, strings.TrimSpace(from), loc)
		if err != nil {
			return Range{}, fmt.Errorf("%w: date de début %q", ErrInvalidPeriod, from)
		}
		end, err := time.ParseInLocation(dateLayout, strings.TrimSpace(to), loc)
		if err != nil {
			return Range{}, fmt.Errorf("%w: date de fin %q", ErrInvalidPeriod, to)
		}
		if end.Before(start) {
			return Range{}, fmt.Errorf("%w: la date de début est postérieure à la date de fin", ErrInvalidPeriod)
		}
		return between(start, end.AddDate(0, 0, 1)), nil
	default:
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, p)
	}
}

// LastDays 最近 n 天（含今天之前的 n 个完整日）
func LastDays(n int, now time.Time, loc *time.Location) Range {
	if loc == nil {
		loc = time.UTC
	}
	return since(StartOfDay(now, loc).AddDate(0, 0, -n))
}

// StartOfDay loc 时区下当天零点
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

func since(from time.Time) Range {
	f := from.UTC()
	return Range{From: &f}
}

func between(from, to time.Time) Range {
	f, t := from.UTC(), to.UTC()
	return Range{From: &f, To: &t}
}
