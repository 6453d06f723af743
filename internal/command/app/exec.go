package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/envkoanf"
)

func newExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "以加载的变量运行命令",
		ArgsUsage: "-- <command> [args...]",
		Action:    execAction,
	}
}

// execAction 运行命令，进程环境变量优先，--parser-overwrite 时由 env 文件覆盖。
func execAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return errors.New("missing command argument")
	}

	s, err := load(cmd)
	if err != nil {
		return err
	}

	env := os.Environ()
	for k, v := range s.store.All() {
		if _, ok := os.LookupEnv(k); ok && !s.cfg.Parser.Overwrite {
			continue
		}
		env = append(env, k+"="+envkoanf.Value(v))
	}

	c := exec.CommandContext(ctx, args[0], args[1:]...)
	c.Env = env
	c.Stdin = os.Stdin
	c.Stdout = cmd.Root().Writer
	c.Stderr = cmd.Root().ErrWriter
	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", args[0], err)
	}

	return nil
}
