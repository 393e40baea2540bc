package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DomasM/AutoConstructor/internal/autoconstructor"
)

// WriteFiles writes one source file per constructor under dir and returns
// the written paths.
func WriteFiles(dir string, constructors []*autoconstructor.Constructor) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	paths := make([]string, 0, len(constructors))
	for _, c := range constructors {
		path := filepath.Join(dir, c.Identity)
		if err := writeFile(path, c); err != nil {
			return paths, err
		}

		slog.Debug("Generated constructor", "type", c.Type, "file", path)
		paths = append(paths, path)
	}

	slog.Info("Wrote generated files", "dir", dir, "count", len(paths))
	return paths, nil
}

func writeFile(path string, c *autoconstructor.Constructor) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file %s: %w", path, err)
	}
	defer f.Close()

	return WriteCSharp(f, c)
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
