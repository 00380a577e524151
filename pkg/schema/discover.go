package schema

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Info summarizes one discovered schema without retaining the parsed tree.
type Info struct {
	ID      string
	Name    string
	Version string
	Path    string
}

// DiscoverFS walks the provided filesystem and indexes every parseable
// schema definition by id. Files that fail to parse are skipped; callers that
// care about a specific schema should Parse it directly to see the error.
// Later files never displace an id discovered earlier in walk order.
func DiscoverFS(fsys fs.FS) (map[string]Info, error) {
	index := make(map[string]Info)
	if fsys == nil {
		return index, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}

		parsed, err := Parse(raw)
		if err != nil {
			return nil
		}
		if _, exists := index[parsed.ID]; exists {
			return nil
		}
		index[parsed.ID] = Info{
			ID:      parsed.ID,
			Name:    parsed.Name,
			Version: parsed.Version,
			Path:    path,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return index, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
