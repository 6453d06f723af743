package dotenv

import (
	"strings"
	"unicode/utf8"
)

// quoteMode 值的引号形式，决定转义与插值行为
type quoteMode int

const (
	unquoted quoteMode = iota
	doubleQuoted
	singleQuoted
)

func quoteModeOf(value string) quoteMode {
	switch {
	case strings.HasPrefix(value, `"`):
		return doubleQuoted
	case strings.HasPrefix(value, `'`):
		return singleQuoted
	default:
		return unquoted
	}
}

func (m quoteMode) quote() byte {
	if m == singleQuoted {
		return '\''
	}

	return '"'
}

// closingQuote 返回 s 中第一个未转义的结束引号位置，未找到返回 -1。
//
// 双引号内反斜杠转义任意字符；单引号内只有 \' 视为转义。
func (m quoteMode) closingQuote(s string) int {
	q := m.quote()
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && (m == doubleQuoted || s[i+1] == q):
			i++
		case s[i] == q:
			return i
		}
	}

	return -1
}

var doubleQuoteEscapes = map[byte]string{
	'n':  "\n",
	'r':  "\r",
	't':  "\t",
	'\\': `\`,
	'"':  `"`,
	'$':  "$",
	'!':  "!",
	'`':  "`",
}

// position 值首字符在输入中的位置
type position struct {
	line int
	col  int
}

// at 返回 value 中字节偏移 i 的位置。
func (p position) at(value string, i int) position {
	head := value[:i]
	nl := strings.LastIndexByte(head, '\n')
	if nl < 0 {
		return position{line: p.line, col: p.col + utf8.RuneCountInString(head)}
	}

	return position{
		line: p.line + strings.Count(head, "\n"),
		col:  utf8.RuneCountInString(head[nl+1:]) + 1,
	}
}

// expand 对值做转义解码与 ${NAME} 插值。
//
// 插值非贪婪且不支持嵌套：${${A}} 中的变量名为 "${A"。
// 空变量名与未定义变量都记录错误并替换为空串，扫描继续。
func (p *Parser) expand(value string, mode quoteMode, start position, file string, res *Result) string {
	var b strings.Builder
	b.Grow(len(value))

	for i := 0; i < len(value); {
		c := value[i]
		switch {
		case c == '\\' && i+1 < len(value) && mode == doubleQuoted:
			if s, ok := doubleQuoteEscapes[value[i+1]]; ok {
				b.WriteString(s)
			} else {
				b.WriteString(value[i : i+2])
			}
			i += 2

		case c == '\\' && i+1 < len(value) && mode == singleQuoted && value[i+1] == '\'':
			b.WriteByte('\'')
			i += 2

		case c == '$' && mode != singleQuoted && strings.HasPrefix(value[i:], "${"):
			end := strings.IndexByte(value[i+2:], '}')
			if end < 0 {
				b.WriteString(value[i:])
				i = len(value)
				continue
			}
			name := value[i+2 : i+2+end]
			b.WriteString(p.resolveRef(name, start.at(value, i), file, res))
			i += end + 3

		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

// resolveRef 查找被引用的变量，可见范围为当前 Store 中已写入的值。
func (p *Parser) resolveRef(name string, at position, file string, res *Result) string {
	name = strings.TrimSpace(name)
	if name == "" {
		res.add(&Issue{Kind: VariableIsAnEmptyString, File: file, Line: at.line, Column: at.col})
		return ""
	}

	value, ok := p.cfg.Store.Lookup(name)
	if !ok {
		res.add(&Issue{Kind: VariableNotFound, File: file, Line: at.line, Column: at.col, Actual: name})
		return ""
	}

	return value
}
