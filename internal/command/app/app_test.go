package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-dotenv/pkg/dotenv"
)

// setup 在临时工作目录写入文件
func setup(t *testing.T, files map[string]string) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	t.Chdir(dir)
}

// run 执行命令并返回 stdout、stderr
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := New()
	cmd.Writer = &stdout
	cmd.ErrWriter = &stderr
	err := cmd.Run(context.Background(), append([]string{"dotenv"}, args...))

	return stdout.String(), stderr.String(), err
}

const baseEnv = "HOST=localhost\nPORT=5432\nURL=postgres://${HOST}:${PORT}\n"

func TestExport(t *testing.T) {
	setup(t, map[string]string{".env": baseEnv, ".env.extra": "HOST=ignored\nNAME=\"my app\"\n"})

	stdout, stderr, err := run(t, "-f", ".env", "export", ".env.extra")
	require.NoError(t, err)

	assert.Empty(t, stderr)
	assert.Equal(t, "HOST=\"localhost\"\nNAME=\"my app\"\nPORT=5432\nURL=\"postgres://localhost:5432\"\n", stdout)
}

func TestExport_Formats(t *testing.T) {
	setup(t, map[string]string{".env": baseEnv})

	stdout, _, err := run(t, "-f", ".env", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"HOST":"localhost","PORT":"5432","URL":"postgres://localhost:5432"}`, stdout)

	stdout, _, err = run(t, "-f", ".env", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "URL: postgres://localhost:5432")
}

func TestExport_LoadEnv(t *testing.T) {
	setup(t, map[string]string{
		".env":            "A=shared\nB=shared\nC=shared\n",
		".env.test":       "B=env\nC=env\n",
		".env.test.local": "C=local\n",
	})

	stdout, stderr, err := run(t, "-e", "test", "-o", "json")
	require.NoError(t, err)

	assert.Empty(t, stderr)
	assert.JSONEq(t, `{"A":"shared","B":"env","C":"local"}`, stdout)
}

func TestExport_Issues(t *testing.T) {
	setup(t, map[string]string{".env": "A=${NOPE}\nB=ok\n"})

	stdout, stderr, err := run(t, "-f", ".env")
	require.NoError(t, err, "issues are advisory without --parser-strict")
	assert.Contains(t, stderr, `"NOPE"`)
	assert.Equal(t, "A=\"\"\nB=\"ok\"\n", stdout)

	_, _, err = run(t, "-f", ".env", "--parser-strict")
	require.ErrorIs(t, err, dotenv.ErrVariableNotFound)
}

func TestExport_ParserFlags(t *testing.T) {
	setup(t, map[string]string{".env": "PATHS=a\nPATHS=b\n"})

	stdout, _, err := run(t, "-f", ".env", "--parser-concat", "end", "--parser-delimiter", "=")
	require.NoError(t, err)
	assert.Equal(t, "PATHS=\"ab\"\n", stdout)

	stdout, _, err = run(t, "-f", ".env", "--parser-overwrite")
	require.NoError(t, err)
	assert.Equal(t, "PATHS=\"b\"\n", stdout)
}

func TestGet(t *testing.T) {
	setup(t, map[string]string{".env": baseEnv})

	stdout, _, err := run(t, "-f", ".env", "get", "URL")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost:5432\n", stdout)

	_, _, err = run(t, "-f", ".env", "get", "MISSING")
	require.ErrorIs(t, err, dotenv.ErrKeyNotFound)

	_, _, err = run(t, "-f", ".env", "get")
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	setup(t, map[string]string{".env": baseEnv, "bad.env": "JUSTTEXT\n"})

	stdout, _, err := run(t, "-f", ".env", "check", "HOST", "PORT")
	require.NoError(t, err)
	assert.Equal(t, "ok: 3 variable(s)\n", stdout)

	_, stderr, err := run(t, "-f", ".env", "check", "HOST", "MISSING")
	require.Error(t, err)
	assert.Contains(t, stderr, `the required key "MISSING" is not present`)

	_, stderr, err = run(t, "-f", "bad.env", "check")
	require.Error(t, err)
	assert.Contains(t, stderr, "has no key-value pair")
}

func TestRender(t *testing.T) {
	setup(t, map[string]string{".env": baseEnv, "app.tmpl": "dsn={{.URL}}/{{env \"DB\" \"app\"}}\n"})

	stdout, _, err := run(t, "-f", ".env", "render", "app.tmpl")
	require.NoError(t, err)
	assert.Equal(t, "dsn=postgres://localhost:5432/app\n", stdout)
}

func TestExec(t *testing.T) {
	setup(t, map[string]string{".env": "APP_EXEC_TEST_VALUE=from-file\n"})

	stdout, _, err := run(t, "-f", ".env", "exec", "--", "sh", "-c", `printf %s "$APP_EXEC_TEST_VALUE"`)
	require.NoError(t, err)
	assert.Equal(t, "from-file", stdout)

	t.Setenv("APP_EXEC_TEST_VALUE", "from-process")

	stdout, _, err = run(t, "-f", ".env", "exec", "--", "sh", "-c", `printf %s "$APP_EXEC_TEST_VALUE"`)
	require.NoError(t, err)
	assert.Equal(t, "from-process", stdout, "process environment wins")

	stdout, _, err = run(t, "-f", ".env", "--parser-overwrite", "exec", "--", "sh", "-c", `printf %s "$APP_EXEC_TEST_VALUE"`)
	require.NoError(t, err)
	assert.Equal(t, "from-file", stdout)

	_, _, err = run(t, "-f", ".env", "exec", "--", "sh", "-c", "exit 3")
	require.Error(t, err)
}

func TestConfig(t *testing.T) {
	setup(t, nil)

	stdout, _, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# 解析配置")
	assert.Contains(t, stdout, `comment_char: "#"`)

	stdout, _, err = run(t, "-e", "staging", "config", "--effective")
	require.NoError(t, err)
	assert.Contains(t, stdout, `LOADER_ENVIRONMENT="staging"`)
	assert.Contains(t, stdout, `OUTPUT_FORMAT="env"`)

	t.Setenv("DOTENV_OUTPUT_FORMAT", "json")
	stdout, _, err = run(t, "config", "--effective")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"format":"json"`)
}
