package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/dotenv"
	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/envkoanf"
)

func newGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "输出单个变量的值",
		ArgsUsage: "<key>",
		Action:    getAction,
	}
}

func getAction(_ context.Context, cmd *cli.Command) error {
	key := cmd.Args().First()
	if key == "" {
		return errors.New("missing key argument")
	}

	s, err := load(cmd)
	if err != nil {
		return err
	}

	v, ok := s.store.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", dotenv.ErrKeyNotFound, key)
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, envkoanf.Value(v))

	return err
}

func newCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "校验 env 文件可解析且包含必需的变量",
		ArgsUsage: "[key...]",
		Action:    checkAction,
	}
}

func checkAction(_ context.Context, cmd *cli.Command) error {
	s, err := load(cmd)
	if err != nil {
		return err
	}

	res := dotenv.Validate(s.store, cmd.Args().Slice()...)
	for issue := range res.All() {
		_, _ = fmt.Fprintln(cmd.Root().ErrWriter, issue)
	}
	if s.res.HasError() || res.HasError() {
		return fmt.Errorf("check failed with %d issue(s)", s.res.Len()+res.Len())
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "ok: %d variable(s)\n", s.store.Len())

	return err
}
