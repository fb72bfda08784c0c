package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/scriptgen/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// defaultDirMode is the permission mode for created directories.
const defaultDirMode os.FileMode = 0o700

// basePrefix returns the name used for the configuration and cache
// directories. It is the executable's base name without extension, with
// a debugger's default binary name replaced by [pkg.Name] and leading dots
// removed.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))

		id = regexp.MustCompile(`^__debug_bin\d*$`).ReplaceAllString(id, pkg.Name)
		id = strings.TrimLeft(id, ".")

		if id == "" {
			return pkg.Name
		}

		return id
	},
)

// userDir returns the directory chosen by primary, falling back to fallback
// under the home directory and finally to the working directory.
func userDir(primary func() (string, error), fallback string) string {
	if dir, err := primary(); err == nil {
		return filepath.Join(dir, basePrefix())
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, fallback, basePrefix())
	}

	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, basePrefix())
	}

	return basePrefix()
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// cacheDir returns the directory for transient files such as profiles.
var cacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// configPath joins elem onto the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
