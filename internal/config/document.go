// Package config loads configuration documents and resolves them, together
// with run-time overrides, into one effective configuration per checker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Document is a loaded configuration file: a mapping from checker code or
// category prefix to a table of fields. An absent file yields an empty
// document, in which case compiled-in defaults apply.
type Document struct {
	Checkers map[string]map[string]any `yaml:"checkers" toml:"checkers"`
}

// Load reads a configuration document from disk. The format is picked by
// extension: .toml is TOML, everything else is YAML. A missing file is not an
// error.
func Load(path string) (*Document, error) {
	// Pick up .env the same way the rest of the tool's env handling does.
	_ = godotenv.Load()

	if env := os.Getenv("FERROLINT_CONFIG"); env != "" {
		path = env
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var doc Document
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	}
	return &doc, nil
}
