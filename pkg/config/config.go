// Author: lwmacct (https://github.com/lwmacct)

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/dotenv"
	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/envkoanf"
)

// 配置格式
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatEnv  = "env"
)

// DefaultPaths 返回默认配置文件搜索路径
// appName 可选，若提供则包含当前目录、用户主目录和系统配置目录下的应用专属文件
func DefaultPaths(appName ...string) []string {
	paths := []string{
		"config.yaml",
		"config/config.yaml",
	}

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	return paths
}

// options Load 选项
type options struct {
	configPaths  []string
	configData   []byte
	configFormat string
	envPrefix    string
	envPrefixSet bool
	envBindings  map[string]string
	envBindKey   string
	store        dotenv.Store
	dotenvOpts   []dotenv.Option
	cmd          *cli.Command
}

// Option 配置加载选项
type Option func(*options)

// WithConfigPaths 设置配置文件搜索路径，使用第一个存在的文件。
//
// 格式由扩展名决定：.yaml/.yml、.json，以及 .env 或以 .env 开头的文件名。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) { o.configPaths = append(o.configPaths, paths...) }
}

// WithConfigData 直接提供配置内容，优先级高于配置文件。
func WithConfigData(data []byte, format string) Option {
	return func(o *options) {
		o.configData = data
		o.configFormat = format
	}
}

// WithEnvPrefix 启用环境变量(前缀)，为每个配置 key 自动生成绑定：
// prefix + 大写 key，"." 与 "-" 转为 "_"。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
		o.envPrefixSet = true
	}
}

// WithEnvBinding 绑定单个环境变量到配置 key
func WithEnvBinding(envName, key string) Option {
	return func(o *options) { o.envBindings[envName] = key }
}

// WithEnvBindings 批量绑定环境变量 (变量名 -> 配置 key)
func WithEnvBindings(bindings map[string]string) Option {
	return func(o *options) {
		for name, key := range bindings {
			o.envBindings[name] = key
		}
	}
}

// WithEnvBindKey 从配置文件的 key 节点读取环境变量绑定，优先级低于代码绑定。
func WithEnvBindKey(key string) Option {
	return func(o *options) { o.envBindKey = key }
}

// WithStore 设置环境变量来源，默认为进程环境变量。
//
// 可传入 dotenv.Loader 加载后的内存存储，使 .env 文件参与配置而不修改进程环境。
func WithStore(s dotenv.Store) Option {
	return func(o *options) { o.store = s }
}

// WithDotenvOptions 设置解析 env 格式配置文件时使用的解析选项
func WithDotenvOptions(opts ...dotenv.Option) Option {
	return func(o *options) { o.dotenvOpts = append(o.dotenvOpts, opts...) }
}

// WithCommand 设置 CLI 命令，仅应用用户明确指定的 flags。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) { o.cmd = cmd }
}

// Load 加载配置，按优先级合并 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - 按 WithConfigPaths 顺序搜索，找到第一个即停止
//  3. 配置数据 - WithConfigData
//  4. 环境变量(前缀) - WithEnvPrefix
//  5. 环境变量(绑定) - 先配置文件 (WithEnvBindKey)，再代码 (WithEnvBinding)
//  6. CLI flags - WithCommand
//
// 泛型参数 T 为配置结构体类型，必须使用 koanf tag 标记字段。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	o := &options{envBindings: make(map[string]string)}
	for _, opt := range opts {
		opt(o)
	}
	if o.store == nil {
		o.store = dotenv.NewProcessStore()
	}

	k := koanf.New(".")
	keys := collectKoanfKeys(defaultConfig)

	// 1️⃣ 默认值 (最低优先级)
	if err := k.Load(structs.Provider(defaultConfig, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	// 2️⃣ 配置文件
	if err := loadConfigFile(k, o, keys); err != nil {
		return nil, err
	}

	// 3️⃣ 配置数据
	if o.configData != nil {
		parser, err := parserFor(o.configFormat, o, keys)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(o.configData), parser); err != nil {
			return nil, fmt.Errorf("failed to load config data: %w", err)
		}
	}

	// 4️⃣ 环境变量(前缀)
	if o.envPrefixSet {
		if err := loadEnvBindings(k, o.store, generateEnvBindings(o.envPrefix, keys)); err != nil {
			return nil, err
		}
	}

	// 5️⃣ 环境变量(绑定)
	if o.envBindKey != "" {
		if err := loadEnvBindings(k, o.store, k.StringMap(o.envBindKey)); err != nil {
			return nil, err
		}
	}
	if err := loadEnvBindings(k, o.store, o.envBindings); err != nil {
		return nil, err
	}

	// 6️⃣ CLI flags (最高优先级，仅当用户明确指定时)
	if o.cmd != nil {
		applyCLIFlags(o.cmd, k, reflect.TypeOf(defaultConfig))
	}

	var cfg T
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// MustLoad 同 Load，有错误时 panic。
func MustLoad[T any](defaultConfig T, opts ...Option) *T {
	cfg, err := Load(defaultConfig, opts...)
	if err != nil {
		panic(err)
	}

	return cfg
}

// loadConfigFile 加载第一个存在的配置文件，文件存在但无法解析时返回 error。
func loadConfigFile(k *koanf.Koanf, o *options, keys []string) error {
	for _, path := range o.configPaths {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		parser, err := parserFor(FormatOf(path), o, keys)
		if err != nil {
			return err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		slog.Debug("Loaded config from file", "path", path)

		return nil
	}
	slog.Debug("No config file found, using defaults")

	return nil
}

// FormatOf 根据文件名推断配置格式
func FormatOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".yaml" || ext == ".yml":
		return FormatYAML
	case ext == ".json":
		return FormatJSON
	case ext == ".env" || strings.HasPrefix(filepath.Base(path), ".env"):
		return FormatEnv
	default:
		return strings.TrimPrefix(ext, ".")
	}
}

// parserFor 返回格式对应的 koanf 解析器。
//
// env 格式的变量名按与环境变量(前缀)相同的规则映射到配置 key。
func parserFor(format string, o *options, keys []string) (koanf.Parser, error) {
	switch format {
	case FormatYAML, "yml":
		return yaml.Parser(), nil
	case FormatJSON:
		return json.Parser(), nil
	case FormatEnv:
		return envkoanf.Parser(o.dotenvOpts...).
			WithBindings(generateEnvBindings(o.envPrefix, keys)).
			WithPrefix(o.envPrefix), nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}
