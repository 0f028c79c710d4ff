package common

import (
	"os"
	"path/filepath"
)

func IsFullPath(path string) bool {
	l := len(path)
	if l == 0 {
		return false
	}
	if path[0] == '/' || path[0] == '\\' {
		return true
	}
	if l >= 2 && path[1] == ':' {
		// Windows
		return true
	}
	return false
}

func Join(dir, subpath string) string {
	if IsFullPath(subpath) {
		return subpath
	}
	return filepath.Join(dir, subpath)
}

// DefaultToExecutable returns a full path. If the input path is relative, it is considered relative to
// the folder of the executable
func DefaultToExecutable(path string) string {
	ex, _ := os.Executable()
	return Join(filepath.Dir(ex), path)
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
