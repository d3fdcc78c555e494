package ingest

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNeos(t *testing.T) {
	neos, err := LoadNeos(filepath.Join("testdata", "neos.csv"))
	require.NoError(t, err)
	require.Len(t, neos, 4)

	eros := neos[0]
	require.NotNil(t, eros.Designation)
	assert.Equal(t, "433", *eros.Designation)
	require.NotNil(t, eros.Name)
	assert.Equal(t, "Eros", *eros.Name)
	assert.Equal(t, 16.84, eros.Diameter)
	assert.False(t, eros.Hazardous)

	albert := neos[1]
	assert.True(t, math.IsNaN(albert.Diameter)) // empty diameter cell

	icarus := neos[2]
	assert.True(t, icarus.Hazardous)

	unnamed := neos[3]
	assert.Nil(t, unnamed.Name) // empty name cell, never the empty string
	require.NotNil(t, unnamed.Designation)
	assert.Equal(t, "2015 CL", *unnamed.Designation)
}

func TestLoadNeos_MissingFile(t *testing.T) {
	_, err := LoadNeos(filepath.Join("testdata", "does-not-exist.csv"))
	assert.Error(t, err)
}

func TestLoadNeos_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("pdes,name\n433,Eros\n"), 0o644))

	_, err := LoadNeos(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing column "diameter"`)
}

func TestLoadNeos_MalformedDiameter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "pdes,name,pha,diameter\n433,Eros,N,large\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadNeos(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadApproaches(t *testing.T) {
	approaches, err := LoadApproaches(filepath.Join("testdata", "cad.json"))
	require.NoError(t, err)
	require.Len(t, approaches, 4)

	first := approaches[0]
	require.NotNil(t, first.Designation)
	assert.Equal(t, "433", *first.Designation)
	assert.Equal(t, "1900-12-27 01:30", first.TimeStr())
	assert.InDelta(t, 0.0922, first.Distance, 0.0001)
	assert.InDelta(t, 5.5786, first.Velocity, 0.0001)

	// Null cells read as absent fields: nil time, NaN velocity.
	last := approaches[3]
	assert.Nil(t, last.Time)
	assert.Equal(t, "Undefined", last.TimeStr())
	assert.True(t, math.IsNaN(last.Velocity))
	assert.False(t, math.IsNaN(last.Distance))
}

func TestLoadApproaches_MissingFile(t *testing.T) {
	_, err := LoadApproaches(filepath.Join("testdata", "does-not-exist.json"))
	assert.Error(t, err)
}

func TestLoadApproaches_MissingField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	content := `{"fields": ["des", "cd"], "data": []}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadApproaches(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing field "dist"`)
}

func TestLoadApproaches_MalformedDistance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	content := `{"fields": ["des", "cd", "dist", "v_rel"], "data": [["433", "1900-Dec-27 01:30", "close", "5.59"]]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadApproaches(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0")
}
