package forecast

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Table is one parsed submission file. Columns preserves the header exactly
// as read; Rows holds the typed records. Cells under unrecognized columns
// are not retained -- an unexpected header is a schema finding, not a parse
// failure.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the header contains the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// HasColumns reports whether the header contains every named column.
func (t *Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if !t.HasColumn(n) {
			return false
		}
	}
	return true
}

// ReadTable parses a delimited submission file. A header row is required;
// records with a field count differing from the header make the whole file
// unparseable. Missing or extra columns are left to the schema check.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		if _, dup := idx[col]; !dup {
			idx[col] = i
		}
	}

	cell := func(record []string, col string) string {
		if i, ok := idx[col]; ok {
			return record[i]
		}
		return ""
	}

	t := &Table{Columns: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		t.Rows = append(t.Rows, Row{
			Location:      cell(record, ColLocation),
			AgeGroup:      cell(record, ColAgeGroup),
			ForecastDate:  NewDateValue(cell(record, ColForecastDate)),
			TargetEndDate: NewDateValue(cell(record, ColTargetEndDate)),
			Horizon:       NewIntValue(cell(record, ColHorizon)),
			Type:          cell(record, ColType),
			Quantile:      NewFloatValue(cell(record, ColQuantile)),
			Value:         cell(record, ColValue),
		})
	}
	return t, nil
}
