// Package dataset parses uploaded abundance tables and validates them
// against the gene catalog before any scoring happens.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/resistlab/amrburden/internal/interfaces"
	"github.com/resistlab/amrburden/internal/model"
)

// Table is a parsed upload: samples as rows, gene names as columns. The
// first column of the file is the sample identifier.
type Table struct {
	IDColumn string
	Columns  []string
	Rows     []Row
}

// Row is one unvalidated sample row.
type Row struct {
	SampleID string
	Values   map[string]float64
}

// ReadTable parses a CSV abundance table. Cells must parse as floats; a
// malformed cell fails the whole table with the offending row and column
// named, since silently skipping values could misalign the feature vector.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading table header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("table header has %d columns, want a sample ID column plus gene columns", len(header))
	}

	t := &Table{
		IDColumn: strings.TrimSpace(header[0]),
		Columns:  make([]string, 0, len(header)-1),
	}
	for _, col := range header[1:] {
		t.Columns = append(t.Columns, strings.TrimSpace(col))
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading table line %d: %w", line, err)
		}
		row := Row{
			SampleID: strings.TrimSpace(rec[0]),
			Values:   make(map[string]float64, len(t.Columns)),
		}
		if row.SampleID == "" {
			return nil, fmt.Errorf("line %d: empty sample identifier", line)
		}
		for i, col := range t.Columns {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %q: %q is not a number", line, col, rec[i+1])
			}
			row.Values[col] = v
		}
		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("table contains no sample rows")
	}
	return t, nil
}

// Validate checks the table's columns against the catalog. When every
// required gene is present, each row becomes a SampleInput with its values
// restricted to the catalog's genes (extra columns dropped). When any gene is
// absent the whole table is rejected with a *model.MissingFeaturesError,
// since the missing columns apply to every row alike.
func Validate(t *Table, cat interfaces.Catalog) ([]model.SampleInput, error) {
	present := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		present[col] = true
	}

	var missing []string
	for _, g := range cat.Genes() {
		if !present[g.Name] {
			missing = append(missing, g.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &model.MissingFeaturesError{Missing: missing}
	}

	samples := make([]model.SampleInput, 0, len(t.Rows))
	for _, row := range t.Rows {
		s := model.SampleInput{
			SampleID:  row.SampleID,
			RawValues: make(map[string]float64, cat.Size()),
		}
		for _, g := range cat.Genes() {
			s.RawValues[g.Name] = row.Values[g.Name]
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// Read parses and validates in one step.
func Read(r io.Reader, cat interfaces.Catalog) ([]model.SampleInput, error) {
	t, err := ReadTable(r)
	if err != nil {
		return nil, err
	}
	return Validate(t, cat)
}

// Vector lays out a validated sample's raw values in catalog order, ready
// for the scaler. The validator guarantees completeness, so a missing gene
// here would be a programming error and surfaces as a zero value.
func Vector(s model.SampleInput, cat interfaces.Catalog) []float64 {
	genes := cat.Genes()
	vec := make([]float64, len(genes))
	for i, g := range genes {
		vec[i] = s.RawValues[g.Name]
	}
	return vec
}
