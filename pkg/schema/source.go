package schema

import "path/filepath"

// Source identifies where schema definition text originated so loaders can
// operate on files, fs.FS entries, or in-memory text without leaking
// implementation details. The engine itself never fetches anything; callers
// hand in the bytes alongside the source.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindText SourceKind = "text"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }

func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }

func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type textSource struct {
	label string
}

func (s textSource) Location() string { return s.label }

func (s textSource) Kind() SourceKind { return SourceKindText }

// SourceFromText returns a Source for schema text handed in directly, e.g.
// pasted by a user or supplied by a host bridge. The label is informational.
func SourceFromText(label string) Source {
	if label == "" {
		label = "inline"
	}
	return textSource{label: label}
}
