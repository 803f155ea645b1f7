package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExport_JSONToStdout(t *testing.T) {
	inTempDir(t)
	writeSample(t, "spectrum.DSC")

	var buf bytes.Buffer
	require.NoError(t, RunExport(&buf, "spectrum.DSC", "json", ""))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	sections, ok := out["sections"].([]any)
	require.True(t, ok)
	assert.Len(t, sections, 3)
}

func TestExport_YAMLToFile(t *testing.T) {
	inTempDir(t)
	writeSample(t, "spectrum.DSC")

	var buf bytes.Buffer
	require.NoError(t, RunExport(&buf, "spectrum.DSC", "yaml", "out.yaml"))
	assert.Contains(t, buf.String(), "wrote out.yaml")

	data, err := os.ReadFile("out.yaml")
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, yaml.Unmarshal(data, &out))
	sections, ok := out["sections"].([]any)
	require.True(t, ok)
	assert.Len(t, sections, 3)
}

func TestExport_UnknownFormat(t *testing.T) {
	inTempDir(t)
	writeSample(t, "spectrum.DSC")

	var buf bytes.Buffer
	err := RunExport(&buf, "spectrum.DSC", "xml", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestExport_MalformedFileFails(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("broken.DSC", []byte("XPTS   1024\n"), 0o644))

	var buf bytes.Buffer
	err := RunExport(&buf, "broken.DSC", "json", "")
	require.Error(t, err)
}
