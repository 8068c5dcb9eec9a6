package output

// Table is a pre-rendered table for the table output format. Types that
// already know their columns implement Tabular and return one.
type Table struct {
	Headers []string   `json:"headers,omitempty" yaml:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// NewTable returns an empty table with the given headers.
func NewTable(headers ...string) Table {
	return Table{Headers: headers}
}

// AddRow appends a row, padding or truncating it to the header width.
func (t *Table) AddRow(cells ...string) {
	if len(t.Headers) > 0 && len(cells) != len(t.Headers) {
		row := make([]string, len(t.Headers))
		copy(row, cells)
		cells = row
	}
	t.Rows = append(t.Rows, cells)
}
