package dotenv

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Kind 错误类别
type Kind int

const (
	DataSourceEmpty Kind = iota + 1
	LineHasNoKeyValuePair
	KeyIsAnEmptyString
	VariableIsAnEmptyString
	VariableNotFound
	LineHasNoEndSingleQuote
	LineHasNoEndDoubleQuote
	FileNotFound
	FileNotReadable
	FileNotPresentLoadEnv
	RequiredKeysNotPresent
)

// 各错误类别对应的哨兵错误，可配合 errors.Is 使用。
var (
	ErrDataSourceEmpty         = errors.New("data source is empty")
	ErrLineHasNoKeyValuePair   = errors.New("line has no key-value pair")
	ErrKeyIsAnEmptyString      = errors.New("key is an empty string")
	ErrVariableIsAnEmptyString = errors.New("interpolated variable is an empty string")
	ErrVariableNotFound        = errors.New("interpolated variable not found")
	ErrLineHasNoEndSingleQuote = errors.New("line has no closing single quote")
	ErrLineHasNoEndDoubleQuote = errors.New("line has no closing double quote")
	ErrFileNotFound            = errors.New("env file not found")
	ErrFileNotReadable         = errors.New("env file not readable")
	ErrFileNotPresentLoadEnv   = errors.New("no local env file present")
	ErrRequiredKeysNotPresent  = errors.New("required key not present")
)

var kindInfo = map[Kind]struct {
	name     string
	sentinel error
}{
	DataSourceEmpty:         {"DataSourceEmpty", ErrDataSourceEmpty},
	LineHasNoKeyValuePair:   {"LineHasNoKeyValuePair", ErrLineHasNoKeyValuePair},
	KeyIsAnEmptyString:      {"KeyIsAnEmptyString", ErrKeyIsAnEmptyString},
	VariableIsAnEmptyString: {"VariableIsAnEmptyString", ErrVariableIsAnEmptyString},
	VariableNotFound:        {"VariableNotFound", ErrVariableNotFound},
	LineHasNoEndSingleQuote: {"LineHasNoEndSingleQuote", ErrLineHasNoEndSingleQuote},
	LineHasNoEndDoubleQuote: {"LineHasNoEndDoubleQuote", ErrLineHasNoEndDoubleQuote},
	FileNotFound:            {"FileNotFound", ErrFileNotFound},
	FileNotReadable:         {"FileNotReadable", ErrFileNotReadable},
	FileNotPresentLoadEnv:   {"FileNotPresentLoadEnv", ErrFileNotPresentLoadEnv},
	RequiredKeysNotPresent:  {"RequiredKeysNotPresent", ErrRequiredKeysNotPresent},
}

func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Issue 解析或加载过程中记录的一条错误。
//
// Line 与 Column 从 1 开始，为 0 表示不适用。
type Issue struct {
	Kind   Kind
	File   string
	Line   int
	Column int
	Actual string // 触发错误的原始内容 (行文本、变量名、文件路径等)
}

// Error 按 "{file}:(line N, col C): error: {message}" 格式输出，
// 不适用的部分省略。
func (i *Issue) Error() string {
	var b strings.Builder
	if i.File != "" {
		b.WriteString(i.File)
		b.WriteByte(':')
	}
	switch {
	case i.Line > 0 && i.Column > 0:
		fmt.Fprintf(&b, "(line %d, col %d):", i.Line, i.Column)
	case i.Line > 0:
		fmt.Fprintf(&b, "(line %d):", i.Line)
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString("error: ")
	b.WriteString(i.message())

	return b.String()
}

func (i *Issue) Unwrap() error {
	if info, ok := kindInfo[i.Kind]; ok {
		return info.sentinel
	}

	return nil
}

func (i *Issue) message() string {
	switch i.Kind {
	case DataSourceEmpty:
		return "the data source is empty or consists only of whitespace"
	case LineHasNoKeyValuePair:
		return fmt.Sprintf("the line %q has no key-value pair", i.Actual)
	case KeyIsAnEmptyString:
		return "the key is an empty string"
	case VariableIsAnEmptyString:
		return "the interpolated variable name is an empty string"
	case VariableNotFound:
		return fmt.Sprintf("the interpolated variable %q is not set", i.Actual)
	case LineHasNoEndSingleQuote:
		return fmt.Sprintf("the value of %q has no closing single quote", i.Actual)
	case LineHasNoEndDoubleQuote:
		return fmt.Sprintf("the value of %q has no closing double quote", i.Actual)
	case FileNotFound:
		return fmt.Sprintf("the env file %q was not found", i.Actual)
	case FileNotReadable:
		return fmt.Sprintf("the env file could not be read: %s", i.Actual)
	case FileNotPresentLoadEnv:
		return fmt.Sprintf("none of the local env files were found: %s", i.Actual)
	case RequiredKeysNotPresent:
		return fmt.Sprintf("the required key %q is not present", i.Actual)
	default:
		return i.Actual
	}
}

// Result 一次 Parse / Load 调用的结果：被写入的 Store 与按顺序累积的错误。
//
// 错误只追加，不会在调用过程中清空。
type Result struct {
	store  Store
	issues []*Issue
}

func newResult(store Store) *Result { return &Result{store: store} }

// Store 返回本次调用写入的变量存储
func (r *Result) Store() Store { return r.store }

func (r *Result) add(issue *Issue) { r.issues = append(r.issues, issue) }

// HasError 是否记录了错误
func (r *Result) HasError() bool { return len(r.issues) > 0 }

// Len 返回错误数量
func (r *Result) Len() int { return len(r.issues) }

// Issues 返回错误列表的副本
func (r *Result) Issues() []*Issue { return slices.Clone(r.issues) }

// All 按记录顺序遍历错误
func (r *Result) All() iter.Seq[*Issue] { return slices.Values(r.issues) }

// Has 是否记录了指定类别的错误
func (r *Result) Has(kind Kind) bool { return r.Count(kind) > 0 }

// Count 返回指定类别的错误数量
func (r *Result) Count(kind Kind) int {
	n := 0
	for _, issue := range r.issues {
		if issue.Kind == kind {
			n++
		}
	}

	return n
}

// Message 以换行拼接全部错误信息
func (r *Result) Message() string {
	msgs := make([]string, len(r.issues))
	for i, issue := range r.issues {
		msgs[i] = issue.Error()
	}

	return strings.Join(msgs, "\n")
}

// Err 无错误时返回 nil，否则返回 *AggregateError。
func (r *Result) Err() error {
	if !r.HasError() {
		return nil
	}

	return &AggregateError{Issues: r.Issues()}
}

// AggregateError 将一次调用中的全部错误聚合为单个 error。
type AggregateError struct {
	Issues []*Issue
}

func (e *AggregateError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Error()
	}

	return strings.Join(msgs, "\n")
}

func (e *AggregateError) Unwrap() []error {
	errs := make([]error, len(e.Issues))
	for i, issue := range e.Issues {
		errs[i] = issue
	}

	return errs
}
