package dotenv

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultFileName 默认 env 文件名
	DefaultFileName = ".env"

	// DefaultEnvironmentVariable 用于确定当前环境名称的环境变量
	DefaultEnvironmentVariable = "GO_ENV"
)

// Loader 按顺序查找并解析多个 env 文件。
//
// 文件严格按注册 (或环境约定) 的顺序依次处理，后处理的文件可以看到
// 先前文件已写入的变量，默认先写入者优先。
type Loader struct {
	files           []*EnvFile
	basePath        string
	defaultFileName string
	environment     string
	envVar          string
	ignoreMissing   bool
	workDir         string
	cfg             Config

	last []*EnvFile
}

// LoaderOption 加载器选项
type LoaderOption func(*Loader)

// WithFile 注册一个 env 文件，可多次调用，处理顺序即注册顺序。
func WithFile(path string, opts ...FileOption) LoaderOption {
	return func(l *Loader) { l.files = append(l.files, NewEnvFile(path, opts...)) }
}

// WithBasePath 设置所有文件路径的前缀目录
func WithBasePath(path string) LoaderOption {
	return func(l *Loader) { l.basePath = path }
}

// WithDefaultFileName 设置默认文件名 (默认 ".env")，
// 也是 LoadEnv 生成文件名的基础。
func WithDefaultFileName(name string) LoaderOption {
	return func(l *Loader) { l.defaultFileName = name }
}

// WithEnvironment 显式指定环境名称，优先于环境变量。
func WithEnvironment(name string) LoaderOption {
	return func(l *Loader) { l.environment = name }
}

// WithEnvironmentVariable 设置读取环境名称的环境变量 (默认 GO_ENV)
func WithEnvironmentVariable(name string) LoaderOption {
	return func(l *Loader) { l.envVar = name }
}

// WithMissingFilesIgnored 不将缺失文件记录为错误
func WithMissingFilesIgnored() LoaderOption {
	return func(l *Loader) { l.ignoreMissing = true }
}

// WithWorkDir 设置相对路径查找的起始目录，默认当前工作目录。
func WithWorkDir(dir string) LoaderOption {
	return func(l *Loader) { l.workDir = dir }
}

// WithParserOptions 设置解析选项 (Store、FailOnError 等同样作用于加载器)
func WithParserOptions(opts ...Option) LoaderOption {
	return func(l *Loader) { l.cfg = newConfig(opts) }
}

// NewLoader 创建加载器
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		defaultFileName: DefaultFileName,
		envVar:          DefaultEnvironmentVariable,
		cfg:             DefaultConfig(),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Store 返回加载结果写入的变量存储
func (l *Loader) Store() Store { return l.cfg.Store }

// EnvFiles 返回最近一次加载处理过的文件 (Path 为组合后的路径，Exists 已设置)。
func (l *Loader) EnvFiles() []*EnvFile { return l.last }

// Load 依次加载注册的文件，未注册时加载 basePath 下的默认文件。
//
// 单个文件的解析错误不会中断其余文件；非可选文件缺失记录为 FileNotFound。
func (l *Loader) Load() (*Result, error) {
	files := l.files
	if len(files) == 0 {
		files = []*EnvFile{NewEnvFile(l.defaultFileName)}
	}

	res := newResult(l.cfg.Store)
	if err := l.process(files, res); err != nil {
		return res, err
	}

	return l.finish(res)
}

// LoadEnv 按环境约定加载文件，优先级从高到低：
//  1. .env.{environment}.local (未设置环境时为 .env.development.local、.env.dev.local)
//  2. .env.local
//  3. .env.{environment} (未设置环境时为 .env.development、.env.dev)
//  4. .env
//
// 所有文件均为可选；若 1、2 两级文件都不存在，记录 FileNotPresentLoadEnv。
func (l *Loader) LoadEnv() (*Result, error) {
	base := l.defaultFileName
	envs := []string{l.environmentName()}
	if envs[0] == "" {
		envs = []string{"development", "dev"}
	}

	var local, shared []*EnvFile
	for _, env := range envs {
		local = append(local, NewEnvFile(base+"."+env+".local", Optional()))
		shared = append(shared, NewEnvFile(base+"."+env, Optional()))
	}
	local = append(local, NewEnvFile(base+".local", Optional()))
	shared = append(shared, NewEnvFile(base, Optional()))

	res := newResult(l.cfg.Store)
	if err := l.process(append(local, shared...), res); err != nil {
		return res, err
	}

	if tier := l.last[:len(local)]; !l.ignoreMissing && !anyExists(tier) {
		names := make([]string, len(tier))
		for i, f := range tier {
			names[i] = f.Path
		}
		res.add(&Issue{Kind: FileNotPresentLoadEnv, Actual: strings.Join(names, ", ")})
	}

	return l.finish(res)
}

// MustLoad 同 Load，有错误时 panic。
func (l *Loader) MustLoad() *Result {
	res, err := l.Load()
	if err != nil {
		panic(err)
	}

	return res
}

// MustLoadEnv 同 LoadEnv，有错误时 panic。
func (l *Loader) MustLoadEnv() *Result {
	res, err := l.LoadEnv()
	if err != nil {
		panic(err)
	}

	return res
}

func (l *Loader) finish(res *Result) (*Result, error) {
	if l.cfg.FailOnError {
		return res, res.Err()
	}

	return res, nil
}

func (l *Loader) environmentName() string {
	if l.environment != "" {
		return l.environment
	}

	return strings.TrimSpace(os.Getenv(l.envVar))
}

// process 依次查找并解析文件，返回的 error 只来自 Store 写入失败。
func (l *Loader) process(files []*EnvFile, res *Result) error {
	parser := &Parser{cfg: l.cfg}
	l.last = make([]*EnvFile, 0, len(files))

	for _, src := range files {
		f := *src
		f.Path = joinPath(l.basePath, f.Path)
		if filepath.Ext(f.Path) == "" {
			f.Path = filepath.Join(f.Path, l.defaultFileName)
		}
		l.last = append(l.last, &f)

		path, ok := l.resolve(f.Path)
		f.Exists = ok
		if !ok {
			slog.Debug("Env file not found", "path", f.Path, "optional", f.Optional)
			if !f.Optional && !l.ignoreMissing {
				res.add(&Issue{Kind: FileNotFound, Actual: f.Path})
			}
			continue
		}

		content, err := readFile(path, f.Encoding)
		if err != nil {
			res.add(&Issue{Kind: FileNotReadable, File: path, Actual: err.Error()})
			continue
		}

		before := res.Len()
		if err := parser.parse(content, path, res); err != nil {
			return err
		}
		slog.Debug("Loaded env file", "path", path, "issues", res.Len()-before)
	}

	return nil
}

func (l *Loader) resolve(name string) (string, bool) {
	if l.workDir != "" {
		return ResolveFrom(l.workDir, name, "")
	}

	return Resolve(name, "")
}

func anyExists(files []*EnvFile) bool {
	for _, f := range files {
		if f.Exists {
			return true
		}
	}

	return false
}

// Load 依次加载 paths (为空时加载 .env) 到进程环境变量。
func Load(paths ...string) error {
	opts := make([]LoaderOption, 0, len(paths))
	for _, p := range paths {
		opts = append(opts, WithFile(p))
	}
	_, err := NewLoader(opts...).Load()

	return err
}

// LoadEnv 按环境约定加载 env 文件到进程环境变量。
func LoadEnv() error {
	_, err := NewLoader().LoadEnv()
	return err
}
