package dotenv

import "fmt"

// Parser 解析 KEY=VALUE 格式文本并写入 Store。
//
// 解析不会在首个错误处停止：错误累积在 Result 中，
// 仅当 FailOnError 开启时在结束后汇总为一个 error 返回。
type Parser struct {
	cfg Config
}

// NewParser 创建解析器，选项在此时固定。
func NewParser(opts ...Option) *Parser {
	return &Parser{cfg: newConfig(opts)}
}

// Config 返回解析配置的副本
func (p *Parser) Config() Config { return p.cfg }

// Store 返回解析结果写入的变量存储
func (p *Parser) Store() Store { return p.cfg.Store }

// Parse 解析 input。
//
// 返回的 Result 总是非 nil；FailOnError 开启且存在错误时同时返回 *AggregateError。
func (p *Parser) Parse(input string) (*Result, error) {
	res := newResult(p.cfg.Store)
	if err := p.parse(input, "", res); err != nil {
		return res, err
	}
	if p.cfg.FailOnError {
		return res, res.Err()
	}

	return res, nil
}

// MustParse 同 Parse，有错误时 panic。
func (p *Parser) MustParse(input string) *Result {
	res, err := p.Parse(input)
	if err != nil {
		panic(err)
	}

	return res
}

// Parse 使用给定选项解析 input。
func Parse(input string, opts ...Option) (*Result, error) {
	return NewParser(opts...).Parse(input)
}

// parse 将 input 解析进 res，file 仅用于错误信息。
//
// 返回的 error 只来自 Store 写入失败，解析错误记录在 res 中。
func (p *Parser) parse(input, file string, res *Result) error {
	if isBlank(input) {
		res.add(&Issue{Kind: DataSourceEmpty, File: file})
		return nil
	}

	lines := splitLines(input)
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		lineNo := i + 1

		if isBlank(line) || p.cfg.isComment(line) {
			continue
		}

		rawKey, rawValue, valueAt, ok := p.cfg.splitPair(line)
		if !ok {
			res.add(&Issue{Kind: LineHasNoKeyValuePair, File: file, Line: lineNo, Actual: line})
			continue
		}
		key := p.cfg.trimKey(rawKey)

		value, skipped := p.cfg.trimValueStart(rawValue)
		valueAt += skipped
		mode := quoteModeOf(value)

		var start position
		if mode == unquoted {
			value = p.cfg.trimValueEnd(p.cfg.stripInlineComment(value, skipped > 0))
			start = position{line: lineNo, col: column(line, valueAt)}
		} else {
			body, last, closed := p.readQuoted(lines, i, value[1:], mode)
			if !closed {
				kind := LineHasNoEndDoubleQuote
				if mode == singleQuoted {
					kind = LineHasNoEndSingleQuote
				}
				res.add(&Issue{Kind: kind, File: file, Line: lineNo, Actual: key})
				return nil
			}
			value = body
			start = position{line: lineNo, col: column(line, valueAt) + 1}
			i = last
		}

		if key == "" {
			res.add(&Issue{Kind: KeyIsAnEmptyString, File: file, Line: lineNo})
			continue
		}

		value = p.expand(value, mode, start, file, res)
		if err := p.assign(key, value); err != nil {
			return err
		}
	}

	return nil
}

// readQuoted 从 first 开始读取引号内的值，必要时跨越后续物理行 (保留换行)。
//
// 返回引号内内容、最后消耗的行下标，以及是否找到结束引号。
// 结束引号之后的内容被忽略。
func (p *Parser) readQuoted(lines []string, from int, first string, mode quoteMode) (string, int, bool) {
	body := first
	for last := from; ; {
		if end := mode.closingQuote(body); end >= 0 {
			return body[:end], last, true
		}
		last++
		if last >= len(lines) {
			return "", last, false
		}
		body += "\n" + lines[last]
	}
}

// assign 按覆盖/拼接规则写入变量，空值写为 EmptyValue。
func (p *Parser) assign(key, value string) error {
	if existing, ok := p.cfg.Store.Lookup(key); ok {
		if existing == EmptyValue {
			existing = ""
		}
		switch p.cfg.Concat {
		case ConcatEnd:
			value = existing + value
		case ConcatStart:
			value += existing
		default:
			if !p.cfg.Overwrite {
				return nil
			}
		}
	}
	if value == "" {
		value = EmptyValue
	}
	if err := p.cfg.Store.Set(key, value); err != nil {
		return fmt.Errorf("failed to assign %s: %w", key, err)
	}

	return nil
}
