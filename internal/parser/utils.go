package parser

import (
	"regexp"

	"golang.org/x/text/width"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// NormalizeText 规范化单元格文本：全角转半角，去除所有空白字符
// 用于列名与楼层标签的比较
func NormalizeText(text string) string {
	return whitespacePattern.ReplaceAllString(FoldWidth(text), "")
}

// FoldWidth 全角转半角，保留空白；资源名称与 Sheet 名按命名规则严格匹配
func FoldWidth(text string) string {
	return width.Fold.String(text)
}

// NormalizeColumnName 规范化列名
func NormalizeColumnName(name string) string {
	return NormalizeText(name)
}
