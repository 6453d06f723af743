package dotenv

import (
	"os"
	"path/filepath"
)

// Resolve 以当前工作目录为起点查找 basePath/fileName。
//
// 绝对路径直接检查；相对路径先在工作目录下查找，
// 未找到则逐级向上查找父目录，直到文件系统根目录。
func Resolve(fileName, basePath string) (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}

	return ResolveFrom(wd, fileName, basePath)
}

// ResolveFrom 同 Resolve，以 dir 为查找起点。
func ResolveFrom(dir, fileName, basePath string) (string, bool) {
	name := joinPath(basePath, fileName)
	if filepath.IsAbs(name) {
		return name, isRegularFile(name)
	}

	for {
		candidate := filepath.Join(dir, name)
		if isRegularFile(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// joinPath 将 path 拼接到 base 之后，path 为绝对路径时原样返回。
func joinPath(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(base, path)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
