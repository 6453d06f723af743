// Package config 提供 dotenv 命令行工具的配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - config.yaml、.dotenv.yaml 等 (DefaultPaths)
//  3. 环境变量 - DOTENV_ 前缀，如 DOTENV_LOADER_ENVIRONMENT
//  4. CLI flags - 如 --loader-environment
package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v3"

	pkgconfig "github.com/lwmacct/251207-go-pkg-dotenv/pkg/config"
	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/dotenv"
)

// EnvPrefix 配置项的环境变量前缀
const EnvPrefix = "DOTENV_"

var validate = validator.New()

// Config 应用配置
type Config struct {
	Parser ParserConfig `koanf:"parser" desc:"解析配置"`
	Loader LoaderConfig `koanf:"loader" desc:"加载配置"`
	Output OutputConfig `koanf:"output" desc:"输出配置"`
}

// ParserConfig 解析配置
type ParserConfig struct {
	CommentChar string `koanf:"comment_char" desc:"注释字符" validate:"len=1"`
	Delimiter   string `koanf:"delimiter" desc:"键值分隔符" validate:"len=1"`
	Overwrite   bool   `koanf:"overwrite" desc:"重复键时后写入者覆盖"`
	Concat      string `koanf:"concat" desc:"重复键拼接方式: none, start, end" validate:"oneof=none start end"`
	TrimKeys    bool   `koanf:"trim_keys" desc:"去除键首尾空白"`
	TrimValues  bool   `koanf:"trim_values" desc:"去除值首尾空白"`
	Export      bool   `koanf:"export" desc:"允许键带 export 前缀"`
	Strict      bool   `koanf:"strict" desc:"存在解析错误时命令失败"`
}

// LoaderConfig 加载配置
type LoaderConfig struct {
	BasePath      string   `koanf:"base_path" desc:"env 文件所在目录"`
	Files         []string `koanf:"files" desc:"按顺序加载的 env 文件，为空时按环境约定加载"`
	Environment   string   `koanf:"environment" desc:"环境名称，为空时读取 env_var"`
	EnvVar        string   `koanf:"env_var" desc:"确定环境名称的环境变量" validate:"required"`
	Encoding      string   `koanf:"encoding" desc:"files 的文件编码" validate:"required"`
	IgnoreMissing bool     `koanf:"ignore_missing" desc:"忽略不存在的文件"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	Format string `koanf:"format" desc:"输出格式: env, json, yaml" validate:"oneof=env json yaml"`
}

// DefaultConfig 返回默认配置
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Parser: ParserConfig{
			CommentChar: "#",
			Delimiter:   "=",
			Concat:      "none",
			TrimKeys:    true,
			TrimValues:  true,
		},
		Loader: LoaderConfig{
			EnvVar:   dotenv.DefaultEnvironmentVariable,
			Encoding: dotenv.DefaultEncoding,
		},
		Output: OutputConfig{
			Format: "env",
		},
	}
}

// Load 加载并校验配置
func Load(cmd *cli.Command, appName string, opts ...pkgconfig.Option) (*Config, error) {
	cfg, err := pkgconfig.Load(
		DefaultConfig(),
		append([]pkgconfig.Option{
			pkgconfig.WithCommand(cmd),
			pkgconfig.WithConfigPaths(pkgconfig.DefaultPaths(appName)...),
			pkgconfig.WithEnvPrefix(EnvPrefix),
		}, opts...)...,
	)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ParserOptions 返回解析选项，不包含 Store。
//
// 错误总是记录在 Result 中，由调用方根据 Strict 决定是否失败。
func (c *Config) ParserOptions() []dotenv.Option {
	p := c.Parser
	opts := []dotenv.Option{dotenv.WithoutFailOnError()}

	if r, _ := utf8.DecodeRuneInString(p.CommentChar); r != utf8.RuneError {
		opts = append(opts, dotenv.WithCommentChar(r))
	}
	if r, _ := utf8.DecodeRuneInString(p.Delimiter); r != utf8.RuneError {
		opts = append(opts, dotenv.WithDelimiter(r))
	}
	if p.Overwrite {
		opts = append(opts, dotenv.WithOverwrite())
	}
	switch p.Concat {
	case "start":
		opts = append(opts, dotenv.WithConcat(dotenv.ConcatStart))
	case "end":
		opts = append(opts, dotenv.WithConcat(dotenv.ConcatEnd))
	}
	if !p.TrimKeys {
		opts = append(opts, dotenv.WithoutTrimStartKeys(), dotenv.WithoutTrimEndKeys())
	}
	if !p.TrimValues {
		opts = append(opts, dotenv.WithoutTrimStartValues(), dotenv.WithoutTrimEndValues())
	}
	if p.Export {
		opts = append(opts, dotenv.WithExportPrefix())
	}

	return opts
}

// LoaderOptions 返回加载选项，变量写入 s。
func (c *Config) LoaderOptions(s dotenv.Store) []dotenv.LoaderOption {
	l := c.Loader
	opts := []dotenv.LoaderOption{
		dotenv.WithParserOptions(append(c.ParserOptions(), dotenv.WithStore(s))...),
		dotenv.WithBasePath(l.BasePath),
		dotenv.WithEnvironmentVariable(l.EnvVar),
	}
	if l.Environment != "" {
		opts = append(opts, dotenv.WithEnvironment(l.Environment))
	}
	if l.IgnoreMissing {
		opts = append(opts, dotenv.WithMissingFilesIgnored())
	}
	for _, f := range l.Files {
		opts = append(opts, dotenv.WithFile(f, dotenv.Encoding(l.Encoding)))
	}

	return opts
}
