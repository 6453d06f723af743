package dotenv

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// splitLines 按物理行切分输入，兼容 CRLF。
func splitLines(input string) []string {
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isComment 判断是否为注释行，是否忽略行首空白由 TrimStartComments 决定。
func (c *Config) isComment(line string) bool {
	if c.TrimStartComments {
		line = strings.TrimLeftFunc(line, unicode.IsSpace)
	}

	return strings.HasPrefix(line, string(c.CommentChar))
}

// splitPair 在第一个分隔符处切分，valueAt 为值在行内的字节偏移。
func (c *Config) splitPair(line string) (key, value string, valueAt int, ok bool) {
	idx := strings.IndexRune(line, c.Delimiter)
	if idx < 0 {
		return "", "", 0, false
	}
	valueAt = idx + utf8.RuneLen(c.Delimiter)

	return line[:idx], line[valueAt:], valueAt, true
}

func (c *Config) trimKey(key string) string {
	if c.TrimStartKeys {
		key = strings.TrimLeftFunc(key, unicode.IsSpace)
	}
	if c.TrimEndKeys {
		key = strings.TrimRightFunc(key, unicode.IsSpace)
	}
	if c.ExportPrefix {
		if rest, ok := strings.CutPrefix(key, "export "); ok {
			key = strings.TrimLeftFunc(rest, unicode.IsSpace)
		}
	}

	return key
}

// trimValueStart 去除值的前导空白，返回被去除的字节数。
func (c *Config) trimValueStart(value string) (string, int) {
	if !c.TrimStartValues {
		return value, 0
	}
	trimmed := strings.TrimLeftFunc(value, unicode.IsSpace)

	return trimmed, len(value) - len(trimmed)
}

func (c *Config) trimValueEnd(value string) string {
	if !c.TrimEndValues {
		return value
	}

	return strings.TrimRightFunc(value, unicode.IsSpace)
}

// stripInlineComment 截断行内注释：空格或制表符后紧跟注释字符。
// afterSpace 表示 value 之前的空白已被去除。
func (c *Config) stripInlineComment(value string, afterSpace bool) string {
	prev := rune(0)
	if afterSpace {
		prev = ' '
	}
	for i, r := range value {
		if r == c.CommentChar && (prev == ' ' || prev == '\t') {
			return value[:i]
		}
		prev = r
	}

	return value
}

// column 返回 line 中字节偏移 at 对应的列号 (从 1 开始，按字符计)。
func column(line string, at int) int {
	return utf8.RuneCountInString(line[:at]) + 1
}
