package tmpl

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/dotenv"
)

// ═══════════════════════════════════════════════════════════════════════════
// 模板函数 (参考: Taskfile 和 Sprig)
// ═══════════════════════════════════════════════════════════════════════════

// funcs 返回绑定到 s 的模板函数映射表，每次渲染独立创建。
func funcs(s dotenv.Store) template.FuncMap {
	return template.FuncMap{
		"env":      envFunc(s),
		"default":  defaultFunc,
		"coalesce": coalesceFunc,
		"required": requiredFunc(s),
	}
}

// lookup 读取变量，空值占位符视为空串。
func lookup(s dotenv.Store, key string) (string, bool) {
	val, ok := s.Lookup(key)
	if val == dotenv.EmptyValue {
		val = ""
	}

	return val, ok
}

// envFunc 获取变量，支持可选的默认值。
//
// 使用方式：
//   - {{env "VAR"}}           获取变量，未设置或为空时返回空字符串
//   - {{env "VAR" "default"}} 获取变量，未设置或为空时返回默认值
//   - {{env "VAR" | default "fallback"}} 管道语法
func envFunc(s dotenv.Store) func(key string, defaultVal ...string) string {
	return func(key string, defaultVal ...string) string {
		if val, _ := lookup(s, key); val != "" {
			return val
		}
		if len(defaultVal) > 0 {
			return defaultVal[0]
		}

		return ""
	}
}

// requiredFunc 获取变量，未设置或为空时中止渲染。
//
// 使用方式：
//   - {{required "API_KEY"}}
func requiredFunc(s dotenv.Store) func(key string) (string, error) {
	return func(key string) (string, error) {
		if val, _ := lookup(s, key); val != "" {
			return val, nil
		}

		return "", fmt.Errorf("required variable %s is not set", key)
	}
}

// defaultFunc 提供默认值（管道友好）。
//
// 参考 Sprig 实现，参数顺序：default(默认值, 实际值)
//
// 使用方式：
//   - {{env "VAR" | default "fallback"}}
//   - {{.VAR | default .OTHER | default "final"}}
func defaultFunc(defaultVal, value any) any {
	if value == nil {
		return defaultVal
	}
	if str, ok := value.(string); ok && str == "" {
		return defaultVal
	}

	return value
}

// coalesceFunc 返回第一个非空值（类似 Taskfile/Sprig）。
//
// 使用方式：
//   - {{coalesce .VAR1 .VAR2 "default"}}
//   - {{coalesce (env "OPENAI_API_KEY") (env "ANTHROPIC_API_KEY") "sk-xxx"}}
func coalesceFunc(values ...any) any {
	for _, v := range values {
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok && str == "" {
			continue
		}

		return v
	}

	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 模板数据对象 (与 Taskfile 设计对齐)
// ═══════════════════════════════════════════════════════════════════════════

// newTemplateData 创建模板数据对象。
//
// 返回 map[string]string，支持 Taskfile 风格的 {{.VAR}} 语法。
// Store 中的所有变量自动加载到顶级命名空间。
func newTemplateData(s dotenv.Store) map[string]string {
	vars := make(map[string]string)
	for key := range s.All() {
		vars[key], _ = lookup(s, key)
	}

	return vars
}

// ═══════════════════════════════════════════════════════════════════════════
// 模板渲染
// ═══════════════════════════════════════════════════════════════════════════

// Expand 以 s 中的变量渲染模板字符串。
//
// 支持的语法：
//   - {{.VAR}} - 直接访问变量（Taskfile 风格）
//   - {{env "VAR"}} - env 函数方式
//   - {{env "VAR" "default"}} - 带默认值
//   - {{.VAR | default "fallback"}} - 管道式默认值
//   - {{coalesce .VAR1 .VAR2 "default"}} - 多级 fallback
//   - {{required "VAR"}} - 变量缺失时返回 error
//
// 返回展开后的字符串。如果模板语法错误或执行失败，返回 error。
func Expand(text string, s dotenv.Store) (string, error) {
	tmpl, err := template.New("config").Funcs(funcs(s)).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newTemplateData(s)); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// ExpandTemplate 以进程环境变量渲染模板字符串，语法同 [Expand]。
func ExpandTemplate(text string) (string, error) {
	return Expand(text, dotenv.NewProcessStore())
}

// ExpandFile 读取 path 并以 s 中的变量渲染。
func ExpandFile(path string, s dotenv.Store) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the caller
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", path, err)
	}

	return Expand(string(data), s)
}
