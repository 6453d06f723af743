package dotenv

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding 默认文件编码
const DefaultEncoding = "utf-8"

// EnvFile 一个待加载的 env 文件。
//
// Path 在解析过程中会与 basePath、默认文件名组合；Exists 在查找后设置。
type EnvFile struct {
	Path     string
	Encoding string // 编码名称 (WHATWG 标签)，空值即 utf-8
	Optional bool   // 为 true 时文件缺失不视为错误
	Exists   bool
}

// FileOption EnvFile 选项
type FileOption func(*EnvFile)

// Optional 标记文件为可选
func Optional() FileOption {
	return func(f *EnvFile) { f.Optional = true }
}

// Encoding 设置文件编码，如 "utf-16le"、"gbk"、"latin1"
func Encoding(name string) FileOption {
	return func(f *EnvFile) { f.Encoding = name }
}

// NewEnvFile 创建 EnvFile
func NewEnvFile(path string, opts ...FileOption) *EnvFile {
	f := &EnvFile{Path: path, Encoding: DefaultEncoding}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// readFile 按文件编码读取全文，并去除 BOM。
func readFile(path, encoding string) (string, error) {
	if strings.TrimSpace(encoding) == "" {
		encoding = DefaultEncoding
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return "", fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the caller's env file list
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(transform.NewReader(f, unicode.BOMOverride(enc.NewDecoder())))
	if err != nil {
		return "", fmt.Errorf("failed to decode %s as %s: %w", path, encoding, err)
	}

	return string(data), nil
}
