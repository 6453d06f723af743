// Package app 提供 dotenv 命令行工具。
//
// 全局 flags 与配置 key 一一对应 (kebab-case)，例如 loader.environment → --loader-environment。
package app

import (
	"github.com/lwmacct/251207-go-pkg-version/pkg/version"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-dotenv/internal/command"
)

// Command 根命令，默认行为同 export
var Command = New()

// New 创建命令树
func New() *cli.Command {
	return &cli.Command{
		Name:      "dotenv",
		Usage:     "解析、校验并加载 env 文件",
		ArgsUsage: "[file...]",
		Flags:     globalFlags(),
		Action:    exportAction,
		Commands: []*cli.Command{
			newExportCommand(),
			newGetCommand(),
			newCheckCommand(),
			newRenderCommand(),
			newExecCommand(),
			newConfigCommand(),
			version.Command,
		},
	}
}

func globalFlags() []cli.Flag {
	d := command.Defaults

	return []cli.Flag{
		// parser
		&cli.StringFlag{
			Name:  "parser-comment-char",
			Value: d.Parser.CommentChar,
			Usage: "注释字符",
		},
		&cli.StringFlag{
			Name:  "parser-delimiter",
			Value: d.Parser.Delimiter,
			Usage: "键值分隔符",
		},
		&cli.BoolFlag{
			Name:  "parser-overwrite",
			Value: d.Parser.Overwrite,
			Usage: "重复键时后写入者覆盖",
		},
		&cli.StringFlag{
			Name:  "parser-concat",
			Value: d.Parser.Concat,
			Usage: "重复键拼接方式: none, start, end",
		},
		&cli.BoolFlag{
			Name:  "parser-trim-keys",
			Value: d.Parser.TrimKeys,
			Usage: "去除键首尾空白",
		},
		&cli.BoolFlag{
			Name:  "parser-trim-values",
			Value: d.Parser.TrimValues,
			Usage: "去除值首尾空白",
		},
		&cli.BoolFlag{
			Name:  "parser-export",
			Value: d.Parser.Export,
			Usage: "允许键带 export 前缀",
		},
		&cli.BoolFlag{
			Name:  "parser-strict",
			Value: d.Parser.Strict,
			Usage: "存在解析错误时命令失败",
		},
		// loader
		&cli.StringFlag{
			Name:    "loader-base-path",
			Aliases: []string{"C"},
			Value:   d.Loader.BasePath,
			Usage:   "env 文件所在目录",
		},
		&cli.StringSliceFlag{
			Name:    "loader-files",
			Aliases: []string{"f"},
			Value:   d.Loader.Files,
			Usage:   "按顺序加载的 env 文件，为空时按环境约定加载",
		},
		&cli.StringFlag{
			Name:    "loader-environment",
			Aliases: []string{"e"},
			Value:   d.Loader.Environment,
			Usage:   "环境名称",
		},
		&cli.StringFlag{
			Name:  "loader-env-var",
			Value: d.Loader.EnvVar,
			Usage: "确定环境名称的环境变量",
		},
		&cli.StringFlag{
			Name:  "loader-encoding",
			Value: d.Loader.Encoding,
			Usage: "文件编码",
		},
		&cli.BoolFlag{
			Name:  "loader-ignore-missing",
			Value: d.Loader.IgnoreMissing,
			Usage: "忽略不存在的文件",
		},
		// output
		&cli.StringFlag{
			Name:    "output-format",
			Aliases: []string{"o"},
			Value:   d.Output.Format,
			Usage:   "输出格式: env, json, yaml",
		},
	}
}
