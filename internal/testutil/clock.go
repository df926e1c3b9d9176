package testutil

import (
	"time"
	_ "time/tzdata"
)

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FixedClock 返回固定时间的时钟函数
func FixedClock(rfc3339 string) func() time.Time {
	ts, err := parseRFC3339(rfc3339)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}

// Paris 测试使用的时区
func Paris() *time.Location {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		return time.UTC
	}
	return loc
}
