package app

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/envkoanf"
)

func newExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "输出 env 文件定义的变量",
		ArgsUsage: "[file...]",
		Action:    exportAction,
	}
}

func exportAction(_ context.Context, cmd *cli.Command) error {
	s, err := load(cmd, cmd.Args().Slice()...)
	if err != nil {
		return err
	}

	k := koanf.New(".")
	if err := k.Load(envkoanf.Provider(s.store, "", ""), nil); err != nil {
		return fmt.Errorf("failed to read variables: %w", err)
	}

	var parser koanf.Parser
	switch s.cfg.Output.Format {
	case "json":
		parser = json.Parser()
	case "yaml":
		parser = yaml.Parser()
	default:
		parser = envkoanf.Parser()
	}

	out, err := k.Marshal(parser)
	if err != nil {
		return fmt.Errorf("failed to format variables: %w", err)
	}
	_, err = cmd.Root().Writer.Write(out)

	return err
}
