package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccirone2/docx-builder/pkg/exchange"
	"github.com/ccirone2/docx-builder/pkg/testsupport"
)

func executeCommand(args ...string) (stdout, stderr string, err error) {
	var out, errBuf bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errBuf.String(), err
}

// writeFixtures lays the fixture schema and a full sample snapshot into a
// temp dir and returns their paths.
func writeFixtures(t *testing.T) (schemaFile, dataFile string) {
	t.Helper()

	dir := t.TempDir()
	schemaFile = filepath.Join(dir, "rfq_electric_utility.yaml")
	require.NoError(t, os.WriteFile(schemaFile, testsupport.SchemaBytes(), 0o644))

	s := testsupport.MustSchema(t)
	snapshot, err := exchange.Export(s, testsupport.SampleData(), false)
	require.NoError(t, err)

	dataFile = filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(dataFile, snapshot, 0o644))
	return schemaFile, dataFile
}

func TestValidateCommand(t *testing.T) {
	schemaFile, dataFile := writeFixtures(t)

	stdout, _, err := executeCommand("validate", "--schema", schemaFile, "--data", dataFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "SUMMARY")
	assert.Contains(t, stdout, "All required fields are valid.")
}

func TestValidateCommand_Failure(t *testing.T) {
	schemaFile, _ := writeFixtures(t)
	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("{}\n"), 0o644))

	stdout, _, err := executeCommand("validate", "--schema", schemaFile, "--data", empty)
	require.Error(t, err)
	assert.Contains(t, stdout, "ERROR")
	assert.Contains(t, err.Error(), "validation failed")
}

func TestExportCommand(t *testing.T) {
	schemaFile, dataFile := writeFixtures(t)

	stdout, _, err := executeCommand("export", "--schema", schemaFile, "--data", dataFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "issuing_organization:")
	assert.Contains(t, stdout, "issuer_name: Ozark Electric Cooperative")
}

func TestExportCommand_Redacted(t *testing.T) {
	schemaFile, dataFile := writeFixtures(t)

	stdout, _, err := executeCommand("export", "--schema", schemaFile, "--data", dataFile, "--redact")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Ozark Electric Cooperative")
	assert.Contains(t, stdout, "[REDACTED]")

	// Reset for later runs since flag state persists on the package vars.
	exportRedact = false
}

func TestExportCommand_OutFile(t *testing.T) {
	schemaFile, dataFile := writeFixtures(t)
	outFile := filepath.Join(t.TempDir(), "out.yaml")

	_, _, err := executeCommand("export", "--schema", schemaFile, "--data", dataFile, "--out", outFile)
	require.NoError(t, err)

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "_meta:")

	exportOutPath = ""
}

func TestImportCommand_WarnsOnUnknownFields(t *testing.T) {
	schemaFile, _ := writeFixtures(t)
	snapshot := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(snapshot, []byte("rfq_details:\n  rfq_number: RFQ-9\n  bogus: x\n"), 0o644))

	stdout, stderr, err := executeCommand("import", "--schema", schemaFile, "--data", snapshot)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Skipped unknown field: 'bogus'")
	assert.Contains(t, stdout, "rfq_number: RFQ-9")
}

func TestPromptCommand(t *testing.T) {
	schemaFile, dataFile := writeFixtures(t)

	stdout, _, err := executeCommand("prompt", "--schema", schemaFile, "--data", dataFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# --- START YAML ---")
	// Redacted by default.
	assert.NotContains(t, stdout, "Ozark Electric Cooperative")
	assert.Contains(t, stdout, "[REDACTED]")
}

func TestReferenceCommand(t *testing.T) {
	schemaFile, _ := writeFixtures(t)

	stdout, _, err := executeCommand("reference", "--schema", schemaFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Schema Reference: Electric Utility RFQ")
}

func TestJSONSchemaCommand(t *testing.T) {
	schemaFile, _ := writeFixtures(t)

	stdout, _, err := executeCommand("json-schema", "--schema", schemaFile)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "Electric Utility RFQ", decoded["title"])
	assert.Contains(t, decoded["properties"], "_meta")
}

func TestSchemasCommand(t *testing.T) {
	schemaFile, _ := writeFixtures(t)

	stdout, _, err := executeCommand("schemas", "--dir", filepath.Dir(schemaFile))
	require.NoError(t, err)
	assert.Contains(t, stdout, "rfq_electric_utility")
	assert.Contains(t, stdout, "Electric Utility RFQ")
}

func TestMissingSchemaFlag(t *testing.T) {
	schemaPath = ""
	dataFile := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(dataFile, []byte("{}\n"), 0o644))

	t.Setenv("RFQGEN_SCHEMA", "")
	_, _, err := executeCommand("validate", "--data", dataFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema given")
}

func TestLoadSchemaErrors(t *testing.T) {
	_, err := loadSchema(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("core_fields: []\n"), 0o644))
	_, err = loadSchema(bad)
	require.Error(t, err)
}
