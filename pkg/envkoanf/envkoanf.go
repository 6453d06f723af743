package envkoanf

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	kmaps "github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/dotenv"
)

// DotEnv 实现 koanf.Parser，按 env 文件语法解析与输出。
//
// 默认键名原样保留；调用 WithPrefix 或 WithBindings 后，
// 变量名被转换为 koanf 路径 (APP_SERVER_URL -> server.url) 并展开为嵌套结构。
type DotEnv struct {
	opts     []dotenv.Option
	keyed    bool
	prefix   string
	bindings map[string]string
}

// Parser 返回 env 文件解析器，opts 作用于每次 Unmarshal。
//
// 解析总是写入独立的内存存储，任何解析错误都会导致 Unmarshal 失败。
func Parser(opts ...dotenv.Option) *DotEnv {
	return &DotEnv{opts: opts}
}

// WithPrefix 返回只接受带 prefix 变量的解析器副本，变量名解码为 koanf 路径。
func (p *DotEnv) WithPrefix(prefix string) *DotEnv {
	c := p.clone()
	c.keyed = true
	c.prefix = prefix

	return c
}

// WithBindings 返回带显式映射 (变量名 -> koanf 路径) 的解析器副本，
// 映射优先于前缀解码。
func (p *DotEnv) WithBindings(bindings map[string]string) *DotEnv {
	c := p.clone()
	c.keyed = true
	c.bindings = maps.Clone(bindings)

	return c
}

func (p *DotEnv) clone() *DotEnv {
	c := *p
	c.opts = slices.Clone(p.opts)

	return &c
}

// Unmarshal 解析 env 文本为 map，空值占位符还原为空串。
func (p *DotEnv) Unmarshal(b []byte) (map[string]any, error) {
	out := make(map[string]any)
	if strings.TrimSpace(string(b)) == "" {
		return out, nil
	}

	store := dotenv.NewMemoryStore()
	res, err := dotenv.Parse(string(b), append(slices.Clone(p.opts), dotenv.WithStore(store))...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env data: %w", err)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse env data: %w", err)
	}

	for name, value := range store.All() {
		key, ok := p.decodeKey(name)
		if !ok {
			continue
		}
		out[key] = Value(value)
	}
	if p.keyed {
		return kmaps.Unflatten(out, "."), nil
	}

	return out, nil
}

// Marshal 将 map 输出为 env 文本，嵌套键以 "_" (或编码规则) 展平，按键名排序。
func (p *DotEnv) Marshal(m map[string]any) ([]byte, error) {
	delim := "_"
	if p.keyed {
		delim = "."
	}
	flat, _ := kmaps.Flatten(m, nil, delim)

	names := make(map[string]string, len(p.bindings))
	for name, key := range p.bindings {
		names[key] = name
	}

	env := make(map[string]string, len(flat))
	for key, v := range flat {
		name := key
		if p.keyed {
			if bound, ok := names[key]; ok {
				name = bound
			} else {
				name = EncodeKey(p.prefix, key)
			}
		}
		env[name] = formatValue(v)
	}

	text, err := godotenv.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal env data: %w", err)
	}
	if text != "" {
		text += "\n"
	}

	return []byte(text), nil
}

func (p *DotEnv) decodeKey(name string) (string, bool) {
	if !p.keyed {
		return name, true
	}
	if key, ok := p.bindings[name]; ok {
		return key, true
	}
	if !strings.HasPrefix(name, p.prefix) {
		return "", false
	}

	return KeyDecoder(p.prefix, ".")(name), true
}

// Provider 返回读取 Store 的 koanf provider。
//
// 只读取带 prefix 的变量；delim 非空时变量名经 KeyDecoder 解码并按 delim 展开，
// delim 为空时去掉 prefix 后原样保留。
func Provider(s dotenv.Store, prefix, delim string) *confmap.Confmap {
	decode := KeyDecoder(prefix, delim)
	m := make(map[string]any)
	for name, value := range s.All() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.TrimPrefix(name, prefix)
		if delim != "" {
			key = decode(name)
		}
		if key == "" {
			continue
		}
		m[key] = Value(value)
	}

	return confmap.Provider(m, delim)
}

// KeyDecoder 返回变量名到 koanf 路径的解码函数：
// 去掉 prefix、转小写、"_" 替换为 delim。
//
//	KeyDecoder("APP_", ".")("APP_SERVER_URL") // server.url
func KeyDecoder(prefix, delim string) func(string) string {
	return func(name string) string {
		key := strings.ToLower(strings.TrimPrefix(name, prefix))
		if delim == "" {
			return key
		}

		return strings.ReplaceAll(key, "_", delim)
	}
}

// EncodeKey 将 koanf 路径编码为变量名："." 与 "-" 替换为 "_" 并转大写。
//
//	EncodeKey("APP_", "client.server-password") // APP_CLIENT_SERVER_PASSWORD
func EncodeKey(prefix, key string) string {
	return prefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// Value 将空值占位符还原为空串。
func Value(v string) string {
	if v == dotenv.EmptyValue {
		return ""
	}

	return v
}

// LoadFile 按 env 语法将文件合并到 k。
func LoadFile(k *koanf.Koanf, path string, opts ...dotenv.Option) error {
	if err := k.Load(file.Provider(path), Parser(opts...)); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	return nil
}

// LoadBytes 按 env 语法将 data 合并到 k。
func LoadBytes(k *koanf.Koanf, data []byte, opts ...dotenv.Option) error {
	if err := k.Load(rawbytes.Provider(data), Parser(opts...)); err != nil {
		return fmt.Errorf("failed to load env data: %w", err)
	}

	return nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprint(item)
		}

		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}
