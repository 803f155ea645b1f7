package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = `#DESC	1.2 * DESCRIPTOR INFORMATION ***********************
TITL	'Room temperature test sample'
XPTS	1024
XMIN	3350.000000
XWID	100.000000
XUNI	'G'
XNAM	'Field'
#SPL	1.2 * STANDARD PARAMETER LAYER
MWFQ    9.385e+09
MWPW    0.002
AVGS    1
CMNT
#DSL	1.0 * DEVICE SPECIFIC LAYER
.DVC     fieldCtrl, 1.0
AllegroMode        True
CenterField        3390.00 G
.DVC     signalChannel, 1.0
AllegroMode        True
ConvTime           40.96 ms
`

func flattenSample(t *testing.T) *ParsedDescriptor {
	t.Helper()
	doc, err := Parse("sample.DSC", []byte(sampleText))
	require.NoError(t, err)
	return Flatten(doc, "sample.DSC")
}

func TestFlatten_NameFromTitle(t *testing.T) {
	pd := flattenSample(t)
	assert.Equal(t, "Room temperature test sample", pd.Name)
}

func TestFlatten_NameFallsBackToFilename(t *testing.T) {
	doc, err := Parse("runs/spectrum_01.DSC", []byte("#DESC 1.2 * DESCRIPTOR\nXPTS   1024\n"))
	require.NoError(t, err)
	pd := Flatten(doc, "runs/spectrum_01.DSC")
	assert.Equal(t, "spectrum_01", pd.Name)
}

func TestFlatten_DocumentOrderPreserved(t *testing.T) {
	pd := flattenSample(t)

	var keys []string
	for _, ref := range pd.Params {
		keys = append(keys, ref.Key)
	}
	assert.Equal(t, []string{
		"TITL", "XPTS", "XMIN", "XWID", "XUNI", "XNAM",
		"MWFQ", "MWPW", "AVGS", "CMNT",
		"AllegroMode", "CenterField", "AllegroMode", "ConvTime",
	}, keys)
}

func TestFlatten_DeviceContext(t *testing.T) {
	pd := flattenSample(t)

	refs := pd.All("AllegroMode")
	require.Len(t, refs, 2)
	assert.Equal(t, "fieldCtrl", refs[0].Device)
	assert.Equal(t, "signalChannel", refs[1].Device)
	assert.Equal(t, "DSL", refs[0].Section)

	conv := pd.All("ConvTime")
	require.Len(t, conv, 1)
	assert.Equal(t, "40.96 ms", conv[0].Value)
}

func TestInSection(t *testing.T) {
	pd := flattenSample(t)

	spl := pd.InSection("SPL")
	require.Len(t, spl, 4)
	assert.Equal(t, "MWFQ", spl[0].Key)
	assert.Equal(t, "CMNT", spl[3].Key)
	assert.Empty(t, pd.InSection("MHL"))
}

func TestLookup_FirstMatchWins(t *testing.T) {
	pd := flattenSample(t)

	v, ok := pd.Lookup("AllegroMode")
	require.True(t, ok)
	assert.Equal(t, "True", v)

	_, ok = pd.Lookup("NOPE")
	assert.False(t, ok)
}

func TestString_Unquotes(t *testing.T) {
	pd := flattenSample(t)

	v, ok := pd.String("XUNI")
	require.True(t, ok)
	assert.Equal(t, "G", v)

	// Unquoted values pass through.
	v, ok = pd.String("AVGS")
	require.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestFloat_ValueAndUnit(t *testing.T) {
	pd := flattenSample(t)

	f, unit, err := pd.Float("CenterField")
	require.NoError(t, err)
	assert.Equal(t, 3390.0, f)
	assert.Equal(t, "G", unit)

	f, unit, err = pd.Float("MWFQ")
	require.NoError(t, err)
	assert.Equal(t, 9.385e+09, f)
	assert.Empty(t, unit)
}

func TestFloat_Errors(t *testing.T) {
	pd := flattenSample(t)

	_, _, err := pd.Float("NOPE")
	assert.ErrorContains(t, err, "not present")

	_, _, err = pd.Float("CMNT")
	assert.ErrorContains(t, err, "no value")

	_, _, err = pd.Float("AllegroMode")
	assert.ErrorContains(t, err, "not numeric")
}

func TestInt(t *testing.T) {
	pd := flattenSample(t)

	n, err := pd.Int("XPTS")
	require.NoError(t, err)
	assert.Equal(t, 1024, n)

	_, err = pd.Int("CenterField")
	assert.ErrorContains(t, err, "not an integer")
}

func TestAxis(t *testing.T) {
	pd := flattenSample(t)

	ax, err := pd.Axis()
	require.NoError(t, err)
	assert.Equal(t, Axis{
		Name:   "Field",
		Unit:   "G",
		Points: 1024,
		Min:    3350.0,
		Width:  100.0,
	}, ax)
}

func TestAxis_MissingPoints(t *testing.T) {
	doc, err := Parse("sample.DSC", []byte("#DESC 1.2 * DESCRIPTOR\nXMIN   3350.0\n"))
	require.NoError(t, err)
	pd := Flatten(doc, "sample.DSC")

	_, err = pd.Axis()
	assert.ErrorContains(t, err, "XPTS")
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "Field", Unquote("'Field'"))
	assert.Equal(t, "", Unquote("''"))
	assert.Equal(t, "'", Unquote("'"))
	assert.Equal(t, "plain", Unquote("plain"))
}
