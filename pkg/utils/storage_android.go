//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// prefsDirName is the subdirectory of the app data dir that gdata writes
// the viewer preferences (split preset, window size) into.
const prefsDirName = "saves"

// EnsureStorageDir 在 gdata 打开前创建偏好设置目录并检查可写
//
// gdata 在 Android 上使用 /data/data/{package}/，但不会创建子目录。
func EnsureStorageDir() error {
	dir, err := prefsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create preferences dir %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".hero_write_test")
	if err := os.WriteFile(testFile, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("preferences dir %s is not writable: %w", dir, err)
	}
	return os.Remove(testFile)
}

// GetStoragePath returns the app data dir, or "" when the package name is unknown.
func GetStoragePath() string {
	pkg, err := androidPackage()
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}

func prefsDir() (string, error) {
	pkg, err := androidPackage()
	if err != nil {
		return "", fmt.Errorf("detect Android package: %w", err)
	}
	return filepath.Join("/data/data", pkg, prefsDirName), nil
}

// androidPackage reads the package name from /proc/self/cmdline.
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	name := strings.Map(func(r rune) rune {
		if r == 0 || r == '\n' {
			return -1
		}
		return r
	}, string(data))
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}
