package dotenv

// ConcatMode 重复键拼接模式
type ConcatMode int

const (
	ConcatNone  ConcatMode = iota // 不拼接
	ConcatStart                   // 新值拼接在已有值之前
	ConcatEnd                     // 新值拼接在已有值之后
)

func (m ConcatMode) String() string {
	switch m {
	case ConcatStart:
		return "start"
	case ConcatEnd:
		return "end"
	default:
		return "none"
	}
}

// Config 解析配置，在解析开始前构建，解析期间不可变。
type Config struct {
	TrimStartKeys     bool
	TrimEndKeys       bool
	TrimStartValues   bool
	TrimEndValues     bool
	TrimStartComments bool

	CommentChar rune
	Delimiter   rune

	Concat       ConcatMode
	Overwrite    bool
	FailOnError  bool
	ExportPrefix bool

	Store Store
}

// DefaultConfig 返回默认解析配置，Store 为进程环境变量。
func DefaultConfig() Config {
	return Config{
		TrimStartKeys:     true,
		TrimEndKeys:       true,
		TrimStartValues:   true,
		TrimEndValues:     true,
		TrimStartComments: true,
		CommentChar:       '#',
		Delimiter:         '=',
		FailOnError:       true,
		Store:             NewProcessStore(),
	}
}

// Option 解析配置选项
type Option func(*Config)

func newConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Store == nil {
		cfg.Store = NewProcessStore()
	}

	return cfg
}

func WithoutTrimStartKeys() Option     { return func(c *Config) { c.TrimStartKeys = false } }
func WithoutTrimEndKeys() Option       { return func(c *Config) { c.TrimEndKeys = false } }
func WithoutTrimStartValues() Option   { return func(c *Config) { c.TrimStartValues = false } }
func WithoutTrimEndValues() Option     { return func(c *Config) { c.TrimEndValues = false } }
func WithoutTrimStartComments() Option { return func(c *Config) { c.TrimStartComments = false } }

// WithCommentChar 设置注释字符，默认 '#'
func WithCommentChar(r rune) Option {
	return func(c *Config) { c.CommentChar = r }
}

// WithDelimiter 设置键值分隔符，默认 '='
func WithDelimiter(r rune) Option {
	return func(c *Config) { c.Delimiter = r }
}

// WithConcat 启用重复键拼接，无论是否允许覆盖都会生效。
func WithConcat(mode ConcatMode) Option {
	return func(c *Config) { c.Concat = mode }
}

// WithOverwrite 允许覆盖已存在的变量 (默认先写入者优先)
func WithOverwrite() Option {
	return func(c *Config) { c.Overwrite = true }
}

// WithoutFailOnError 有错误时不返回 error，由调用方检查 Result。
func WithoutFailOnError() Option {
	return func(c *Config) { c.FailOnError = false }
}

// WithExportPrefix 允许 "export KEY=VALUE" 形式，去除键名前的 export。
func WithExportPrefix() Option {
	return func(c *Config) { c.ExportPrefix = true }
}

// WithStore 指定写入的变量存储
func WithStore(s Store) Option {
	return func(c *Config) { c.Store = s }
}

// WithMemoryStore 使用新的内存存储，不修改进程环境变量。
func WithMemoryStore() Option {
	return func(c *Config) { c.Store = NewMemoryStore() }
}
