package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	pkgconfig "github.com/lwmacct/251207-go-pkg-dotenv/pkg/config"
	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/dotenv"
)

var helper = pkgconfig.ConfigTestHelper[Config]{
	ExamplePath: "config/config.example.yaml",
	ConfigPath:  "config/config.yaml",
}

func TestWriteExample(t *testing.T)    { helper.WriteExampleFile(t, DefaultConfig()) }
func TestConfigKeysValid(t *testing.T) { helper.ValidateKeys(t) }

// loadWith 在命令 Action 中加载配置，环境变量来自 env
func loadWith(t *testing.T, env map[string]string, args ...string) (*Config, error) {
	t.Helper()

	var (
		cfg     *Config
		loadErr error
	)
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "loader-environment"},
			&cli.StringSliceFlag{Name: "loader-files"},
			&cli.StringFlag{Name: "output-format"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, loadErr = Load(cmd, "", pkgconfig.WithStore(dotenv.NewMemoryStoreFrom(env)))
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))

	return cfg, loadErr
}

func TestLoad(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadWith(t, map[string]string{
		"DOTENV_LOADER_ENVIRONMENT": "staging",
		"DOTENV_PARSER_OVERWRITE":   "true",
		"DOTENV_PARSER_CONCAT":      "end",
	}, "--loader-environment", "production", "--loader-files", ".env", "--loader-files", ".env.extra")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Loader.Environment, "flag > env")
	assert.Equal(t, []string{".env", ".env.extra"}, cfg.Loader.Files)
	assert.True(t, cfg.Parser.Overwrite)
	assert.Equal(t, "end", cfg.Parser.Concat)
	assert.Equal(t, "env", cfg.Output.Format)
	assert.Equal(t, dotenv.DefaultEnvironmentVariable, cfg.Loader.EnvVar)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "output format", args: []string{"--output-format", "toml"}},
		{name: "concat mode", env: map[string]string{"DOTENV_PARSER_CONCAT": "middle"}},
		{name: "comment char", env: map[string]string{"DOTENV_PARSER_COMMENT_CHAR": "//"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadWith(t, tt.env, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestParserOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parser.CommentChar = ";"
	cfg.Parser.Delimiter = ":"
	cfg.Parser.Concat = "start"
	cfg.Parser.Export = true

	res, err := dotenv.Parse("export A: 1 ; note\nA: 2\n", append(cfg.ParserOptions(), dotenv.WithMemoryStore())...)
	require.NoError(t, err)
	assert.False(t, res.HasError())
	assert.Equal(t, "21", dotenv.Get(res.Store(), "A"))

	cfg = DefaultConfig()
	res, err = dotenv.Parse("URL=${MISSING}\n", append(cfg.ParserOptions(), dotenv.WithMemoryStore())...)
	require.NoError(t, err, "issues are reported through the result")
	assert.True(t, res.Has(dotenv.VariableNotFound))
}

func TestLoaderOptions(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg := DefaultConfig()
	cfg.Loader.Files = []string{"missing.env"}
	cfg.Loader.IgnoreMissing = true

	store := dotenv.NewMemoryStore()
	res, err := dotenv.NewLoader(cfg.LoaderOptions(store)...).Load()
	require.NoError(t, err)
	assert.False(t, res.HasError())
	assert.Same(t, store, res.Store())
}
