package configutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// candidates returns the file paths merged into a single config, in
// ascending priority: <name>.<ext> first, then <name>.local.<ext>.
func candidates(name string) []string {
	ext := filepath.Ext(name)
	prefix := strings.TrimSuffix(name, ext)
	return []string{
		name,
		prefix + ".local" + ext,
	}
}

// Read parses a json5 config file, layering a `.local` variant of the
// same name on top of it when one exists. Returns os.ErrNotExist when
// neither file is present.
func Read[T any](name string) (T, error) {
	var out T
	found := false

	for i, path := range candidates(name) {
		contents, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return out, err
		}

		var layer T
		if err := json5.Unmarshal(contents, &layer); err != nil {
			return out, err
		}
		if err := mergo.Merge(&out, layer, mergo.WithOverride); err != nil {
			return out, err
		}
		if i > 0 {
			slog.Info("merging config with local overrides", "local", path)
		}
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively walks from the working directory up to the
// filesystem root looking for a config file matching `name`, reading
// the first one found.
func ReadRecursively[T any](name string) (T, error) {
	var zero T

	dir, err := os.Getwd()
	if err != nil {
		return zero, err
	}

	for {
		config, err := Read[T](filepath.Join(dir, name))
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return zero, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return zero, os.ErrNotExist
		}
		dir = parent
	}
}
