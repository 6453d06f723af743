package config_test

import (
	"fmt"
	"time"

	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/config"
	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/dotenv"
)

// ExampleDefaultPaths 演示默认配置文件搜索路径
func ExampleDefaultPaths() {
	fmt.Println(len(config.DefaultPaths()), len(config.DefaultPaths("myapp")))

	// Output:
	// 2 5
}

// ExampleExampleYAML 演示根据 desc tag 生成带注释的 YAML 示例
func ExampleExampleYAML() {
	type ServerConfig struct {
		Host string `koanf:"host" desc:"服务器主机地址"`
		Port int    `koanf:"port" desc:"服务器端口"`
	}
	type AppConfig struct {
		Name    string        `koanf:"name" desc:"应用名称"`
		Timeout time.Duration `koanf:"timeout" desc:"超时时间"`
		Server  ServerConfig  `koanf:"server" desc:"服务器配置"`
	}

	fmt.Print(string(config.ExampleYAML(AppConfig{
		Name:    "example-app",
		Timeout: 30 * time.Second,
		Server:  ServerConfig{Host: "localhost", Port: 8080},
	})))

	// Output:
	// # 配置示例文件, 复制此文件为 config.yaml 并根据需要修改
	// name: "example-app" # 应用名称
	// timeout: 30s # 超时时间
	//
	// # 服务器配置
	// server:
	//   host: "localhost" # 服务器主机地址
	//   port: 8080 # 服务器端口
}

// ExampleLoad 演示以 env 文本作为环境变量来源加载配置
func ExampleLoad() {
	type Config struct {
		Name string `koanf:"name"`
		DSN  string `koanf:"dsn"`
	}

	res, _ := dotenv.Parse("APP_HOST=db\nAPP_DSN=postgres://${APP_HOST}/app", dotenv.WithMemoryStore())

	cfg, err := config.Load(Config{Name: "demo"},
		config.WithEnvPrefix("APP_"),
		config.WithStore(res.Store()),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(cfg.Name, cfg.DSN)

	// Output:
	// demo postgres://db/app
}

// ExampleMarshal 演示将配置输出为 env 格式
func ExampleMarshal() {
	type Config struct {
		Name  string `koanf:"name"`
		Debug bool   `koanf:"debug"`
	}

	data, _ := config.Marshal(Config{Name: "demo app", Debug: true}, config.FormatEnv)
	fmt.Print(string(data))

	// Output:
	// DEBUG="true"
	// NAME="demo app"
}
