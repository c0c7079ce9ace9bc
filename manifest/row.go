package manifest

// Row is one data record of a manifest, keyed by header column
type Row struct {
	values map[string]string
}

// NewRow builds a Row from parallel column and value slices. Missing
// values read as empty strings; extra values are dropped.
func NewRow(columns []string, values []string) Row {
	r := Row{values: make(map[string]string, len(columns))}
	// a repeated column name keeps its last cell
	for i, col := range columns {
		r.values[col] = cell(values, i)
	}
	return r
}

// RowFromMap builds a row holding the given keys of fields
func RowFromMap(keys []string, fields map[string]string) Row {
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = fields[k]
	}
	return NewRow(keys, values)
}

func cell(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// Value returns the raw cell for column, or "" when the column is absent
func (r Row) Value(column string) string {
	return r.values[column]
}

func (r Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}
