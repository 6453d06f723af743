package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/tmpl"
)

func newRenderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "以加载的变量渲染模板文件",
		ArgsUsage: "<template>",
		Action:    renderAction,
	}
}

func renderAction(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("missing template argument")
	}

	s, err := load(cmd)
	if err != nil {
		return err
	}

	out, err := tmpl.ExpandFile(path, s.store)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.Root().Writer, out)

	return err
}
