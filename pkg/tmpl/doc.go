// Package tmpl 以 env 变量渲染 text/template 模板。
//
// 与 Taskfile 模板语法对齐，支持灵活的环境变量访问。
//
// # 设计参考
//
//   - Taskfile 模板语法: https://taskfile.dev/docs/reference/templating
//   - Taskfile 环境变量: https://taskfile.dev/docs/reference/environment
//   - Sprig 模板函数: https://github.com/Masterminds/sprig
//
// # 核心设计原则
//
//  1. 变量通过 {{.VAR}} 自动可用（Taskfile 风格），来源为任意 dotenv.Store
//  2. env 函数可选，在变量名冲突时使用
//  3. 管道友好：{{.VAR | default "fallback"}}
//  4. 多级 fallback：coalesce 函数支持优雅降级链
//
// # 支持的函数
//
//   - env: 获取变量 {{env "VAR"}} 或 {{env "VAR" "default"}}
//   - default: 管道默认值 {{.VAR | default "fallback"}}
//   - coalesce: 返回第一个非空值 {{coalesce .VAR1 .VAR2 "default"}}
//   - required: 变量缺失时中止渲染 {{required "VAR"}}
//
// 详见 [Expand] 文档。[ExpandTemplate] 使用进程环境变量。
package tmpl
