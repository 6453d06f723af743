package dotenv

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ErrKeyNotFound 读取的 key 不存在
var ErrKeyNotFound = errors.New("key not found")

// Reader 在 Store 之上提供类型化读取。
type Reader struct {
	store Store
}

// NewReader 创建 Reader
func NewReader(s Store) *Reader { return &Reader{store: s} }

// Has 报告 key 是否存在
func (r *Reader) Has(key string) bool {
	_, ok := r.store.Lookup(key)
	return ok
}

// String 返回原始值 (空值为 EmptyValue)
func (r *Reader) String(key string) (string, error) {
	v, ok := r.store.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	return v, nil
}

// StringOr 返回值，key 不存在时返回 def
func (r *Reader) StringOr(key, def string) string {
	if v, ok := r.store.Lookup(key); ok {
		return v
	}

	return def
}

func (r *Reader) Int(key string) (int, error) {
	return convert(r, key, cast.ToIntE)
}

func (r *Reader) Int64(key string) (int64, error) {
	return convert(r, key, cast.ToInt64E)
}

func (r *Reader) Bool(key string) (bool, error) {
	return convert(r, key, cast.ToBoolE)
}

func (r *Reader) Float64(key string) (float64, error) {
	return convert(r, key, cast.ToFloat64E)
}

// Duration 支持 "1m30s" 形式，纯数字按纳秒处理。
func (r *Reader) Duration(key string) (time.Duration, error) {
	return convert(r, key, cast.ToDurationE)
}

// Strings 按 sep 切分值，忽略空元素。
func (r *Reader) Strings(key, sep string) ([]string, error) {
	v, err := r.String(key)
	if err != nil {
		return nil, err
	}

	var out []string
	for part := range strings.SplitSeq(v, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out, nil
}

func convert[T any](r *Reader, key string, fn func(any) (T, error)) (T, error) {
	var zero T
	v, err := r.String(key)
	if err != nil {
		return zero, err
	}
	out, err := fn(strings.TrimSpace(v))
	if err != nil {
		return zero, fmt.Errorf("failed to convert %s: %w", key, err)
	}

	return out, nil
}
