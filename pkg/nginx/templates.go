// Package nginx bundles the default server configuration the managed
// container is started with. Files are only materialized when missing, so
// operator edits survive.
package nginx

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

//go:embed templates/nginx.conf
var mainConf []byte

//go:embed templates/default.conf
var defaultConf []byte

//go:embed templates/index.html
var indexPage []byte

// EnsureMainConf writes the bundled nginx.conf to path unless it already
// exists.
func EnsureMainConf(path string) error {
	return writeIfMissing(path, mainConf)
}

// EnsureConfDir creates the conf.d directory and seeds it with the bundled
// default server block when it does not exist yet.
func EnsureConfDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking conf dir %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating conf dir %s: %w", dir, err)
	}

	return writeIfMissing(filepath.Join(dir, "default.conf"), defaultConf)
}

// EnsureWebRoot creates the web root with a placeholder page when the
// directory does not exist yet.
func EnsureWebRoot(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking web root %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating web root %s: %w", dir, err)
	}

	return writeIfMissing(filepath.Join(dir, "index.html"), indexPage)
}

func writeIfMissing(path string, content []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}

	log.Info("Created default file", "path", path)
	return nil
}
