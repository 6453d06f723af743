// Package command 提供 dotenv 命令行工具的公共定义。
package command

import "github.com/lwmacct/251207-go-pkg-dotenv/internal/config"

// Defaults 默认配置 - 单一来源 (Single Source of Truth)
var Defaults = config.DefaultConfig()
