package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/stwalsh4118/neowatch/internal/models"
)

// NEO CSV columns consumed by the loader. The source file carries many more;
// everything else is ignored.
const (
	colDesignation = "pdes"
	colName        = "name"
	colDiameter    = "diameter"
	colHazardous   = "pha"
)

// Close-approach JSON fields consumed by the loader.
const (
	fieldDesignation = "des"
	fieldCalendar    = "cd"
	fieldDistance    = "dist"
	fieldVelocity    = "v_rel"
)

// LoadNeos reads the NEO CSV file and constructs one NearEarthObject per
// row. Coercion failures propagate with the row number attached.
func LoadNeos(path string) ([]*models.NearEarthObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open NEO file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read NEO header from %s: %w", path, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, required := range []string{colDesignation, colName, colDiameter, colHazardous} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("NEO file %s is missing column %q", path, required)
		}
	}

	var neos []*models.NearEarthObject
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read NEO row %d in %s: %w", row, path, err)
		}

		neo, err := models.NewNearEarthObject(models.NeoRecord{
			Designation: record[columns[colDesignation]],
			Name:        record[columns[colName]],
			Diameter:    record[columns[colDiameter]],
			Hazardous:   record[columns[colHazardous]],
		})
		if err != nil {
			return nil, fmt.Errorf("invalid NEO row %d in %s: %w", row, path, err)
		}
		neos = append(neos, neo)
	}

	return neos, nil
}

// cadDocument is the close-approach file shape: a field-name list plus
// positional data rows, as served by the NASA close-approach data API.
type cadDocument struct {
	Fields []string             `json:"fields"`
	Data   [][]*json.RawMessage `json:"data"`
}

// LoadApproaches reads the close-approach JSON file and constructs one
// CloseApproach per data row.
func LoadApproaches(path string) ([]*models.CloseApproach, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open close-approach file: %w", err)
	}

	var doc cadDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse close-approach file %s: %w", path, err)
	}

	fields := make(map[string]int, len(doc.Fields))
	for i, name := range doc.Fields {
		fields[name] = i
	}
	for _, required := range []string{fieldDesignation, fieldCalendar, fieldDistance, fieldVelocity} {
		if _, ok := fields[required]; !ok {
			return nil, fmt.Errorf("close-approach file %s is missing field %q", path, required)
		}
	}

	approaches := make([]*models.CloseApproach, 0, len(doc.Data))
	for i, row := range doc.Data {
		rec := models.ApproachRecord{
			Designation: cell(row, fields[fieldDesignation]),
			Calendar:    cell(row, fields[fieldCalendar]),
			Distance:    cell(row, fields[fieldDistance]),
			Velocity:    cell(row, fields[fieldVelocity]),
		}

		ca, err := models.NewCloseApproach(rec)
		if err != nil {
			return nil, fmt.Errorf("invalid close-approach row %d in %s: %w", i, path, err)
		}
		approaches = append(approaches, ca)
	}

	return approaches, nil
}

// cell extracts a positional value as its raw string, mapping null (and any
// out-of-range index) to the empty string so it reads as an absent field.
func cell(row []*json.RawMessage, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(*row[idx], &s); err != nil {
		// Non-string values (bare numbers) pass through verbatim; the model
		// constructors decide whether they parse.
		return string(*row[idx])
	}
	return s
}
