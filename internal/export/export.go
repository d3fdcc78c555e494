package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stwalsh4118/neowatch/internal/models"
)

// Columns of the flat export formats, in order: the close approach's own
// fields followed by its NEO's fields.
var columns = []string{
	"datetime_utc", "distance_au", "velocity_km_s",
	"designation", "name", "diameter_km", "potentially_hazardous",
}

// Write saves the given close approaches to path, choosing the format by
// file extension: .csv, .json, or .xlsx.
func Write(path string, approaches []*models.CloseApproach) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSV(path, approaches)
	case ".json":
		return WriteJSON(path, approaches)
	case ".xlsx":
		return WriteXLSX(path, approaches)
	default:
		return fmt.Errorf("unsupported export format %q (want .csv, .json, or .xlsx)", filepath.Ext(path))
	}
}

// WriteCSV saves close approaches as flat CSV rows. Unknown numeric values
// are written as NaN, matching their in-memory sentinel.
func WriteCSV(path string, approaches []*models.CloseApproach) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, ca := range approaches {
		row := flatRow(ca)
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatCell(row[col])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}
	return nil
}

// jsonApproach is the nested JSON export shape: the approach's own fields
// with the owning NEO's fields under "neo".
type jsonApproach struct {
	DatetimeUTC string         `json:"datetime_utc"`
	DistanceAU  *float64       `json:"distance_au"`
	VelocityKmS *float64       `json:"velocity_km_s"`
	Neo         map[string]any `json:"neo"`
}

// WriteJSON saves close approaches as a JSON array. JSON has no NaN, so
// unknown numeric values are emitted as null.
func WriteJSON(path string, approaches []*models.CloseApproach) error {
	out := make([]jsonApproach, 0, len(approaches))
	for _, ca := range approaches {
		neo := map[string]any{
			"designation":           "None",
			"name":                  "None",
			"diameter_km":           nil,
			"potentially_hazardous": false,
		}
		if ca.Neo != nil {
			for k, v := range ca.Neo.Serialize() {
				neo[k] = v
			}
			neo["diameter_km"] = nanToNil(ca.Neo.Diameter)
		}

		out = append(out, jsonApproach{
			DatetimeUTC: ca.TimeStr(),
			DistanceAU:  nanToNil(ca.Distance),
			VelocityKmS: nanToNil(ca.Velocity),
			Neo:         neo,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal close approaches: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}

// flatRow merges an approach's serialization with its NEO's. Unlinked
// approaches export with placeholder NEO fields.
func flatRow(ca *models.CloseApproach) map[string]any {
	row := ca.Serialize()
	if ca.Neo != nil {
		for k, v := range ca.Neo.Serialize() {
			row[k] = v
		}
	} else {
		row["designation"] = "None"
		row["name"] = ca.FullName()
		row["diameter_km"] = math.NaN()
		row["potentially_hazardous"] = false
	}
	return row
}

func formatCell(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func nanToNil(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
