// Author: lwmacct (https://github.com/lwmacct)

package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/dotenv"
	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/envkoanf"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
)

// generateEnvBindings 为每个配置 key 生成 "前缀变量名 -> key" 的绑定，
// 使包含 "-" 的 key 也能通过前缀变量设置。
func generateEnvBindings(prefix string, keys []string) map[string]string {
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[envkoanf.EncodeKey(prefix, key)] = key
	}

	return bindings
}

// loadEnvBindings 将 Store 中已设置的绑定变量合并到 k
func loadEnvBindings(k *koanf.Koanf, s dotenv.Store, bindings map[string]string) error {
	if len(bindings) == 0 {
		return nil
	}

	m := make(map[string]any)
	for name, key := range bindings {
		if v, ok := s.Lookup(name); ok {
			m[key] = envkoanf.Value(v)
		}
	}
	if len(m) == 0 {
		return nil
	}

	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return fmt.Errorf("failed to load env bindings: %w", err)
	}

	return nil
}

// collectKoanfKeys 收集配置结构体的所有叶子 key
func collectKoanfKeys(cfg any) []string {
	var keys []string
	walkKoanfFields(reflect.TypeOf(cfg), "", func(key string, _ reflect.StructField) {
		keys = append(keys, key)
	})

	return keys
}

// walkKoanfFields 递归遍历带 koanf tag 的字段，对每个叶子字段调用 fn。
// time.Duration 与 time.Time 视为叶子。
func walkKoanfFields(typ reflect.Type, prefix string, fn func(key string, field reflect.StructField)) {
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		tag := field.Tag.Get("koanf")
		if tag == "" || tag == "-" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct && field.Type != durationType && field.Type != timeType {
			walkKoanfFields(field.Type, key, fn)
			continue
		}
		fn(key, field)
	}
}
