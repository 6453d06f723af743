// Author: lwmacct (https://github.com/lwmacct)

// Package config 提供通用的分层配置加载，环境变量可来自进程或 env 文件。
//
// # 加载优先级
//
// 使用泛型支持任意配置结构体类型，优先级 (从低到高)：
//  1. 默认值 - defaultConfig 参数
//  2. 配置文件 - [WithConfigPaths]，使用第一个存在的文件
//  3. 配置数据 - [WithConfigData]
//  4. 环境变量(前缀) - [WithEnvPrefix]
//  5. 环境变量(绑定) - [WithEnvBindKey] (配置文件)，其后 [WithEnvBinding] (代码)
//  6. CLI flags - [WithCommand]，仅用户明确指定的 flag
//
// # 快速开始
//
//	type Config struct {
//	    Name    string        `koanf:"name"    desc:"应用名称"`
//	    Timeout time.Duration `koanf:"timeout" desc:"超时时间"`
//	}
//
//	cfg, err := config.Load(Config{Name: "default", Timeout: 30 * time.Second},
//	    config.WithConfigPaths(config.DefaultPaths("myapp")...),
//	    config.WithEnvPrefix("MYAPP_"),
//	    config.WithEnvBindKey("envbind"),
//	    config.WithCommand(cmd),
//	)
//
// # 配置文件格式
//
// 格式由扩展名决定：.yaml/.yml、.json，以及 .env 或以 .env 开头的文件。
// env 格式的变量名按环境变量(前缀)的规则映射到 key，可使用插值：
//
//	# .env
//	MYAPP_HOST=db.internal
//	MYAPP_DATABASE_URL=postgres://${MYAPP_HOST}:5432/app
//
// # 环境变量来源
//
// 默认读取进程环境变量。[WithStore] 可改为任意 [dotenv.Store]，
// 例如 [dotenv.Loader.LoadEnv] 加载到内存的结果，不修改进程环境：
//
//	res, err := dotenv.NewLoader(dotenv.WithParserOptions(dotenv.WithMemoryStore())).LoadEnv()
//	cfg, err := config.Load(defaults, config.WithEnvPrefix("MYAPP_"), config.WithStore(res.Store()))
//
// 空值占位符 [dotenv.EmptyValue] 视为空串。
//
// # 环境变量(前缀)
//
// 为每个配置 key 自动生成绑定：前缀 + 大写 key，"." 与 "-" 转为 "_"。
//   - MYAPP_DEBUG → debug
//   - MYAPP_SERVER_URL → server.url
//   - MYAPP_CLIENT_SERVER_PASSWORD → client.server-password
//
// # 环境变量(绑定)
//
//	config.WithEnvBindings(map[string]string{"REDIS_URL": "redis.url"})
//
//	# config.yaml
//	envbind:
//	  REDIS_URL: redis.url
//
// 代码中的绑定优先级高于配置文件中的绑定。
//
// # CLI Flag 映射
//
// flag 名称为 kebab-case 的配置 key ([FlagName])，"." 与 "_" 转为 "-"：
//   - server.url → --server-url
//   - tls.skip_verify → --tls-skip-verify
//
// # 生成配置示例
//
// [ExampleYAML] 根据 desc tag 生成带注释的 YAML，[Marshal] 输出 yaml、json 或 env 格式。
// [ConfigTestHelper] 在测试中生成示例文件并校验配置文件的 key。
package config
