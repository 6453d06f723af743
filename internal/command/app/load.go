package app

import (
	"fmt"
	"log/slog"

	"github.com/lwmacct/251207-go-pkg-version/pkg/version"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-dotenv/internal/config"
	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/dotenv"
)

// session 一次命令执行的配置与加载结果
type session struct {
	cfg   *config.Config
	store *dotenv.MemoryStore
	res   *dotenv.Result
}

// load 加载配置并将 env 文件解析到内存存储。
//
// 显式文件 (flags、配置或位置参数) 按顺序加载，否则按环境约定加载。
// 问题输出到 stderr，仅在 --parser-strict 时返回错误。
func load(cmd *cli.Command, files ...string) (*session, error) {
	cfg, err := config.Load(cmd, version.GetAppRawName())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Loader.Files = append(cfg.Loader.Files, files...)

	store := dotenv.NewMemoryStore()
	loader := dotenv.NewLoader(cfg.LoaderOptions(store)...)

	var res *dotenv.Result
	if len(cfg.Loader.Files) > 0 {
		res, err = loader.Load()
	} else {
		res, err = loader.LoadEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	for _, f := range loader.EnvFiles() {
		slog.Debug("Env file", "path", f.Path, "exists", f.Exists)
	}
	for issue := range res.All() {
		_, _ = fmt.Fprintln(cmd.Root().ErrWriter, issue)
	}
	if cfg.Parser.Strict {
		if err := res.Err(); err != nil {
			return nil, err
		}
	}

	return &session{cfg: cfg, store: store, res: res}, nil
}
