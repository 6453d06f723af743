// Package envbind 将 [dotenv.Store] 中的变量绑定到带 env 标签的结构体，并执行校验。
//
// 标签语法来自 github.com/caarlos0/env，校验规则来自 github.com/go-playground/validator：
//
//	type DBConfig struct {
//	    Host string `env:"HOST" envDefault:"localhost" validate:"required,hostname"`
//	    Port int    `env:"PORT" envDefault:"5432"      validate:"min=1,max=65535"`
//	    User string `env:"USER,required"`
//	}
//
//	res, _ := dotenv.NewLoader(dotenv.WithParserOptions(dotenv.WithMemoryStore())).LoadEnv()
//	cfg, err := envbind.Bind[DBConfig](res.Store(), envbind.WithPrefix("DB_"))
//
// 空值占位符 [dotenv.EmptyValue] 在绑定时视为空串。
package envbind

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/dotenv"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type options struct {
	prefix          string
	validate        bool
	requiredIfNoDef bool
}

// Option 绑定选项
type Option func(*options)

// WithPrefix 只读取带 prefix 的变量，标签中的名称不含前缀。
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithoutValidation 跳过 validate 标签校验
func WithoutValidation() Option {
	return func(o *options) { o.validate = false }
}

// WithRequiredIfNoDef 没有 envDefault 的字段都视为必需
func WithRequiredIfNoDef() Option {
	return func(o *options) { o.requiredIfNoDef = true }
}

// Bind 创建 T 并从 s 绑定。
func Bind[T any](s dotenv.Store, opts ...Option) (T, error) {
	var v T
	err := BindTo(s, &v, opts...)

	return v, err
}

// MustBind 同 Bind，有错误时 panic。
func MustBind[T any](s dotenv.Store, opts ...Option) T {
	v, err := Bind[T](s, opts...)
	if err != nil {
		panic(err)
	}

	return v
}

// BindTo 从 s 绑定到 v (必须是结构体指针)。
//
// 绑定错误为 env.AggregateError，校验错误为 validator.ValidationErrors。
func BindTo(s dotenv.Store, v any, opts ...Option) error {
	o := options{validate: true}
	for _, opt := range opts {
		opt(&o)
	}

	environ := make(map[string]string)
	for key, value := range s.All() {
		if value == dotenv.EmptyValue {
			value = ""
		}
		environ[key] = value
	}

	if err := env.ParseWithOptions(v, env.Options{
		Environment:     environ,
		Prefix:          o.prefix,
		RequiredIfNoDef: o.requiredIfNoDef,
	}); err != nil {
		return fmt.Errorf("failed to bind environment: %w", err)
	}

	if !o.validate {
		return nil
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	return nil
}
