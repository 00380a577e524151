package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/ccirone2/docx-builder/pkg/exchange"
	"github.com/ccirone2/docx-builder/pkg/schema"
)

// loadSchema reads and parses the schema at path.
func loadSchema(path string) (*schema.Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	s, err := schema.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}
	return s, nil
}

// loadData reads a snapshot file and imports it against the schema. An empty
// path yields an empty mapping.
func loadData(s *schema.Schema, path string) (schema.Data, []string, error) {
	if path == "" {
		return schema.Data{}, nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read data: %w", err)
	}
	data, warnings := exchange.Import(s, raw)
	return data, warnings, nil
}

// writeOutput writes bytes to the path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, b []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintln(w, "Warning:", warning)
	}
}
