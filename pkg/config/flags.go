// Author: lwmacct (https://github.com/lwmacct)

package config

import (
	"reflect"
	"strings"

	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"
)

// FlagName 返回配置 key 对应的 CLI flag 名称 (kebab-case)
//
//	server.url → server-url
//	tls.skip_verify → tls-skip-verify
func FlagName(key string) string {
	return strings.NewReplacer(".", "-", "_", "-").Replace(key)
}

// applyCLIFlags 将用户明确指定的 CLI flags 应用到 koanf 实例。
//
// flag 名称由配置 key 经 [FlagName] 转换而来，值取 flag 自身的类型，
// 由 koanf.Unmarshal 转换为字段类型。子命令可读取父命令的 flags。
func applyCLIFlags(cmd *cli.Command, k *koanf.Koanf, typ reflect.Type) {
	walkKoanfFields(typ, "", func(key string, _ reflect.StructField) {
		name := FlagName(key)
		if !cmd.IsSet(name) {
			return
		}
		_ = k.Set(key, cmd.Value(name))
	})
}
