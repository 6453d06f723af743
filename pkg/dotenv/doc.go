// Author: lwmacct (https://github.com/lwmacct)

// Package dotenv 解析 KEY=VALUE 格式的 env 文件，并按环境约定加载多个文件。
//
// # 文件格式
//
//	# 注释行 (注释字符可配置，默认 '#')
//	DB_HOST=localhost
//	DB_USER=root             # 行内注释：空格或制表符后紧跟注释字符
//	CONN=server=${DB_HOST};user=${DB_USER};
//	MULTI="第一行
//	第二行"
//	LITERAL='${NOT_EXPANDED}'
//	EMPTY=
//
// 规则：
//   - 在第一个分隔符 (默认 '=') 处切分键与值，键、值的首尾空白按配置去除
//   - 以引号开头的值可跨越多行，直到匹配的未转义结束引号
//   - 双引号内解码 \n \t \" \\ \$ 等转义并进行插值；单引号内仅解码 \' 且不插值
//   - ${NAME} 引用当前 Store 中已写入的变量，不支持嵌套
//   - 空值以单个空格 [EmptyValue] 写入，以区分 "已设置为空" 与 "未设置"
//
// # 重复键
//
// 默认先写入者优先；[WithOverwrite] 允许覆盖；
// [WithConcat] 将新值拼接到已有值之前 ([ConcatStart]) 或之后 ([ConcatEnd])。
//
// # 变量存储
//
// [Store] 可以是进程环境变量 ([ProcessStore]，默认) 或隔离的内存 map ([MemoryStore])：
//
//	res, err := dotenv.Parse(text, dotenv.WithMemoryStore())
//	host := dotenv.Get(res.Store(), "DB_HOST")
//
// # 错误处理
//
// 解析与加载都会累积错误而不是在首个错误处停止，
// 每条错误格式为 "{file}:(line N, col C): error: {message}"。
// 默认存在错误时返回 [*AggregateError]，使用 [WithoutFailOnError] 后
// 只在 [Result] 中记录，由调用方自行检查：
//
//	res, _ := dotenv.Parse(text, dotenv.WithMemoryStore(), dotenv.WithoutFailOnError())
//	for issue := range res.All() {
//	    fmt.Println(issue)
//	}
//
// 错误可通过 errors.Is 匹配哨兵错误，如 [ErrVariableNotFound]。
//
// # 加载文件
//
// [Loader.Load] 依次加载显式注册的文件：
//
//	loader := dotenv.NewLoader(
//	    dotenv.WithBasePath("config"),
//	    dotenv.WithFile(".env"),
//	    dotenv.WithFile(".env.extra", dotenv.Optional()),
//	)
//	res, err := loader.Load()
//
// [Loader.LoadEnv] 按环境约定加载 (环境名称来自 GO_ENV 或 [WithEnvironment])，
// 优先级从高到低：
//  1. .env.{environment}.local
//  2. .env.local
//  3. .env.{environment}
//  4. .env
//
// 相对路径从工作目录开始查找，未找到时逐级向上查找父目录。
package dotenv
