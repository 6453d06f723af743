package app

import (
	"context"

	"github.com/lwmacct/251207-go-pkg-version/pkg/version"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-dotenv/internal/config"
	pkgconfig "github.com/lwmacct/251207-go-pkg-dotenv/pkg/config"
)

func newConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "输出配置示例，或使用 --effective 输出当前生效的配置",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "effective",
				Usage: "按 --output-format 输出合并后的配置",
			},
		},
		Action: configAction,
	}
}

func configAction(_ context.Context, cmd *cli.Command) error {
	if !cmd.Bool("effective") {
		_, err := cmd.Root().Writer.Write(pkgconfig.ExampleYAML(config.DefaultConfig()))
		return err
	}

	cfg, err := config.Load(cmd, version.GetAppRawName())
	if err != nil {
		return err
	}
	out, err := pkgconfig.Marshal(*cfg, cfg.Output.Format)
	if err != nil {
		return err
	}
	_, err = cmd.Root().Writer.Write(out)

	return err
}
