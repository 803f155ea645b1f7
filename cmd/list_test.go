package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runList(t *testing.T, tagFilter string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunList(&buf, tagFilter))
	return buf.String()
}

func TestList_ShowsImportedDescriptors(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSample(t, "spectrum.DSC")
	runImport(t, "spectrum.DSC")

	out := runList(t, "")

	assert.Contains(t, out, "spectrum.DSC")
	assert.Contains(t, out, "Room temperature test sample")
	assert.Contains(t, out, "3 sections")
}

func TestList_EmptyCatalog(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := runList(t, "")
	assert.Empty(t, out)
}

func TestList_TagFilter(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSample(t, "full.DSC")
	require.NoError(t, os.WriteFile("bare.DSC", []byte("#DESC 1.2 * DESCRIPTOR\nXPTS   1024\n"), 0o644))
	runImport(t, "full.DSC", "bare.DSC")

	out := runList(t, "DSL")

	assert.Contains(t, out, "full.DSC")
	assert.NotContains(t, out, "bare.DSC")
}

func TestList_WithoutInitFails(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunList(&buf, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eprdesc init")
}
