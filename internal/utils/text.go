package utils

import (
	"strings"
	"unicode/utf8"
)

// CleanText 合并连续空白并去掉首尾空白
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// UniqueNonEmpty 去重（大小写不敏感）并丢弃空串，保持原顺序
func UniqueNonEmpty(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = CleanText(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// Truncate 按字符数截断，超出时追加 "..."
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + "..."
}
