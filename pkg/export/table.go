// Package export renders tabular datasets as CSV or PDF for download.
package export

// Table defines tabular export content: ordered columns and rows of cells
// aligned to them.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}
