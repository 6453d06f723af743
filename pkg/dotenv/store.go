package dotenv

import (
	"fmt"
	"iter"
	"maps"
	"os"
	"strings"
)

// EmptyValue 空值占位符。
//
// 语法上为空的值 (如 KEY=) 以单个空格写入 Store，
// 使 "已设置为空" 与 "未设置" 在查找时可区分。
const EmptyValue = " "

// Store 变量存储抽象，可由进程环境变量或内存 map 承载。
//
// Lookup 的 ok=false 即 "未找到"，与任何实际值 (包括空串) 都不同。
type Store interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
	All() iter.Seq2[string, string]
}

// ProcessStore 代理到当前进程的环境变量。
type ProcessStore struct{}

// NewProcessStore 返回进程环境变量存储
func NewProcessStore() *ProcessStore { return &ProcessStore{} }

func (*ProcessStore) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

func (*ProcessStore) Set(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("failed to set environment variable %s: %w", key, err)
	}

	return nil
}

func (*ProcessStore) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, kv := range os.Environ() {
			key, value, ok := strings.Cut(kv, "=")
			if !ok || key == "" {
				continue
			}
			if !yield(key, value) {
				return
			}
		}
	}
}

// MemoryStore 隔离的内存存储，不会修改进程环境变量。
//
// 非并发安全，仅供单个调用方使用。
type MemoryStore struct {
	vars map[string]string
}

// NewMemoryStore 返回空的内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{vars: make(map[string]string)}
}

// NewMemoryStoreFrom 以 m 的副本初始化内存存储
func NewMemoryStoreFrom(m map[string]string) *MemoryStore {
	s := NewMemoryStore()
	maps.Copy(s.vars, m)

	return s
}

func (s *MemoryStore) Lookup(key string) (string, bool) {
	v, ok := s.vars[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.vars[key] = value
	return nil
}

func (s *MemoryStore) All() iter.Seq2[string, string] { return maps.All(s.vars) }

// Len 返回变量数量
func (s *MemoryStore) Len() int { return len(s.vars) }

// Map 返回全部变量的副本
func (s *MemoryStore) Map() map[string]string { return maps.Clone(s.vars) }

// Get 返回 key 的值，未设置时返回空串。
func Get(s Store, key string) string {
	v, _ := s.Lookup(key)
	return v
}

// ToMap 将 Store 的全部内容复制到新 map。
func ToMap(s Store) map[string]string {
	return maps.Collect(s.All())
}
