// Package envkoanf 将 env 文件语法接入 koanf。
//
// [Parser] 实现 koanf.Parser，可与任意 koanf provider 组合：
//
//	k := koanf.New(".")
//	k.Load(file.Provider(".env"), envkoanf.Parser())
//
// 需要映射到嵌套配置时，使用前缀或显式绑定：
//
//	k.Load(file.Provider("app.env"), envkoanf.Parser().WithPrefix("APP_"))
//	// APP_SERVER_URL=http://x  ->  server.url = "http://x"
//
// [Provider] 把任意 [dotenv.Store] (如 Loader 加载后的内存存储) 作为 koanf provider：
//
//	res, _ := dotenv.NewLoader(dotenv.WithParserOptions(dotenv.WithMemoryStore())).LoadEnv()
//	k.Load(envkoanf.Provider(res.Store(), "APP_", "."), nil)
//
// Marshal 使用 github.com/joho/godotenv 输出，结果可被本包与 godotenv 重新读取。
package envkoanf
