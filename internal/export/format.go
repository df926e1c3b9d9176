package export

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.French)

// 法语数字里的分组空格，PDF 字体不支持时换成普通空格
var spaceReplacer = strings.NewReplacer("\u202f", " ", "\u00a0", " ")

// Int 按法语习惯分组，例如 12 345
func Int(n int64) string {
	return printer.Sprintf("%d", n)
}

// Decimal 保留一位小数，小数点为逗号
func Decimal(x float64) string {
	return printer.Sprintf("%.1f", x)
}

func plain(s string) string {
	return spaceReplacer.Replace(s)
}
