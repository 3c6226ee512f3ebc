package schema

// TabularData is the public result of an analysis: an ordered header plus
// ordered rows of cell values. Writing it to a terminal, CSV file, JSON
// document or database is the output layer's responsibility.
type TabularData struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// NumRows returns the number of data rows.
func (t TabularData) NumRows() int {
	return len(t.Rows)
}
