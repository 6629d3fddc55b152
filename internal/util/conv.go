package util

import (
	"strconv"
)

// ParseID 解析正整数 ID，非法或为 0 时返回 false
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Truncate 截取文本前 n 个字符（按 rune 计），n <= 0 时不截取
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
