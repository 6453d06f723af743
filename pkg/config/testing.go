// Author: lwmacct (https://github.com/lwmacct)

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigTestHelper 配置测试辅助工具
//
//	var helper = config.ConfigTestHelper[Config]{
//	    ExamplePath: "config/config.example.yaml",
//	    ConfigPath:  "config/config.yaml",
//	}
//
//	func TestWriteExample(t *testing.T) { helper.WriteExampleFile(t, DefaultConfig()) }
//	func TestConfigKeysValid(t *testing.T) { helper.ValidateKeys(t) }
type ConfigTestHelper[T any] struct {
	ExamplePath string // 示例文件路径 (相对于 go.mod 所在目录)
	ConfigPath  string // 配置文件路径 (相对于 go.mod 所在目录)
}

// WriteExampleFile 将 ExampleYAML 生成的示例配置写入 ExamplePath
func (h *ConfigTestHelper[T]) WriteExampleFile(t *testing.T, defaultConfig T) {
	t.Helper()

	root, err := FindProjectRoot(1)
	if err != nil {
		t.Fatalf("无法找到项目根目录: %v", err)
	}

	out := filepath.Join(root, h.ExamplePath)
	if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := os.WriteFile(out, ExampleYAML(defaultConfig), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	t.Logf("已生成配置示例文件: %s", out)
}

// ValidateKeys 校验 ConfigPath 中的 key 都在 ExamplePath 中定义，ConfigPath 不存在时跳过
func (h *ConfigTestHelper[T]) ValidateKeys(t *testing.T) {
	t.Helper()

	root, err := FindProjectRoot(1)
	if err != nil {
		t.Fatalf("无法找到项目根目录: %v", err)
	}

	configPath := filepath.Join(root, h.ConfigPath)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Skipf("%s 不存在，跳过验证", h.ConfigPath)
	}

	exampleKeys, err := loadConfigKeys(filepath.Join(root, h.ExamplePath))
	if err != nil {
		t.Fatalf("无法加载 %s: %v", h.ExamplePath, err)
	}
	configKeys, err := loadConfigKeys(configPath)
	if err != nil {
		t.Fatalf("无法加载 %s: %v", h.ConfigPath, err)
	}

	for _, key := range configKeys {
		if !slices.Contains(exampleKeys, key) {
			t.Errorf("%s 包含无效配置项: %s", h.ConfigPath, key)
		}
	}
}

// FindProjectRoot 从调用者源文件所在目录向上查找 go.mod，返回其所在目录。
//
// skip 为跳过的调用栈层数，0 表示调用者。
func FindProjectRoot(skip int) (string, error) {
	_, filename, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", errors.New("无法获取当前文件路径")
	}

	for dir := filepath.Dir(filename); ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("未找到 go.mod")
		}
		dir = parent
	}
}

// loadConfigKeys 加载配置文件并返回所有 key，格式由扩展名决定
func loadConfigKeys(path string) ([]string, error) {
	parser, err := parserFor(FormatOf(path), &options{}, nil)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("加载文件失败: %w", err)
	}

	return k.Keys(), nil
}
