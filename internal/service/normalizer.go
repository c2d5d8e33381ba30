package service

import (
	"regexp"
	"strings"
)

var (
	trailingParenRe  = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	leadingArticleRe = regexp.MustCompile(`(?i)^(the|a|an)\s+`)
	nonAlnumRe       = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// NormalizeTitle 把展示标题转换为检索键，所有标题比较都先经过它
// 处理顺序固定：去掉结尾括号组 → 还原“, The/A/An”后缀冠词 →
// 去掉开头冠词 → 只保留 ASCII 字母数字并转小写
// 对已归一化的键再次调用返回原值（幂等）
func NormalizeTitle(title string) string {
	t := strings.TrimSpace(trailingParenRe.ReplaceAllString(title, ""))

	switch {
	case strings.HasSuffix(t, ", The"):
		t = "The " + t[:len(t)-5]
	case strings.HasSuffix(t, ", A"):
		t = "A " + t[:len(t)-3]
	case strings.HasSuffix(t, ", An"):
		t = "An " + t[:len(t)-4]
	}

	t = leadingArticleRe.ReplaceAllString(t, "")
	return strings.ToLower(nonAlnumRe.ReplaceAllString(t, ""))
}

// NormalizeArtist 歌手名检索键，不做冠词处理
func NormalizeArtist(name string) string {
	return strings.ToLower(nonAlnumRe.ReplaceAllString(name, ""))
}
