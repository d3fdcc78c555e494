package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/neowatch/internal/models"
	"github.com/xuri/excelize/v2"
)

// linkedApproaches builds two linked close approaches, one carrying unknown
// numeric values, for exercising the writers.
func linkedApproaches(t *testing.T) []*models.CloseApproach {
	t.Helper()

	eros, err := models.NewNearEarthObject(models.NeoRecord{
		Designation: "433", Name: "Eros", Diameter: "16.84", Hazardous: "N",
	})
	require.NoError(t, err)
	unknown, err := models.NewNearEarthObject(models.NeoRecord{
		Designation: "2015 CL", Hazardous: "Y",
	})
	require.NoError(t, err)

	first, err := models.NewCloseApproach(models.ApproachRecord{
		Designation: "433", Calendar: "1900-Dec-27 01:30", Distance: "0.0966", Velocity: "5.59",
	})
	require.NoError(t, err)
	second, err := models.NewCloseApproach(models.ApproachRecord{
		Designation: "2015 CL",
	})
	require.NoError(t, err)

	first.Neo = eros
	eros.Approaches = append(eros.Approaches, first)
	second.Neo = unknown
	unknown.Approaches = append(unknown.Approaches, second)

	return []*models.CloseApproach{first, second}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, linkedApproaches(t)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"datetime_utc", "distance_au", "velocity_km_s",
		"designation", "name", "diameter_km", "potentially_hazardous",
	}, rows[0])

	assert.Equal(t, []string{
		"1900-12-27 01:30", "0.0966", "5.59", "433", "433 (Eros)", "16.84", "false",
	}, rows[1])

	// Unknown values export as their sentinel spellings, never failing.
	assert.Equal(t, []string{
		"Undefined", "NaN", "NaN", "2015 CL", "2015 CL", "NaN", "true",
	}, rows[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, linkedApproaches(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, "1900-12-27 01:30", first["datetime_utc"])
	assert.Equal(t, 0.0966, first["distance_au"])
	neo, ok := first["neo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "433", neo["designation"])
	assert.Equal(t, "433 (Eros)", neo["name"])
	assert.Equal(t, 16.84, neo["diameter_km"])
	assert.Equal(t, false, neo["potentially_hazardous"])

	// NaN is not representable in JSON; unknowns become null.
	second := out[1]
	assert.Equal(t, "Undefined", second["datetime_utc"])
	assert.Nil(t, second["distance_au"])
	assert.Nil(t, second["velocity_km_s"])
	secondNeo, ok := second["neo"].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, secondNeo["diameter_km"])
	assert.Equal(t, true, secondNeo["potentially_hazardous"])
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, linkedApproaches(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "datetime_utc", rows[0][0])
	assert.Equal(t, "1900-12-27 01:30", rows[1][0])
	assert.Equal(t, "433", rows[1][3])

	// Unknown numeric cells are left empty.
	value, err := f.GetCellValue(sheetName, "B3")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestWrite_ByExtension(t *testing.T) {
	dir := t.TempDir()
	approaches := linkedApproaches(t)

	require.NoError(t, Write(filepath.Join(dir, "out.csv"), approaches))
	require.NoError(t, Write(filepath.Join(dir, "out.json"), approaches))
	require.NoError(t, Write(filepath.Join(dir, "out.xlsx"), approaches))

	err := Write(filepath.Join(dir, "out.txt"), approaches)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}
