package tradeimport

import "strings"

// Columns maps the named trade fields to zero-based positions within a data
// row, and carries the minimum field count a line must have to be considered
// a data row at all.
type Columns struct {
	Symbol      int
	Description int
	Quantity    int
	Price       int
	Date        int
	Time        int
	MinFields   int
}

// ColumnMapper resolves named trade fields to column positions for one known
// export layout. Broker exports are unvalidated text, so locating where the
// tabular data begins is part of the mapping: IsHeader reports whether a line
// is the header sentinel that marks the start of data rows.
type ColumnMapper interface {
	Columns() Columns
	IsHeader(line string) bool
}

// defaultMapper implements the fixed-position layout used by the supported
// broker exports: symbol, description, quantity, price, date, time. The
// header sentinel is any line mentioning a symbol or description column
// label. This is a heuristic and only works for known export formats.
type defaultMapper struct{}

// DefaultMapper returns the fixed-position mapper for the supported exports.
func DefaultMapper() ColumnMapper {
	return defaultMapper{}
}

func (defaultMapper) Columns() Columns {
	return Columns{
		Symbol:      0,
		Description: 1,
		Quantity:    2,
		Price:       3,
		Date:        4,
		Time:        5,
		MinFields:   6,
	}
}

func (defaultMapper) IsHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "symbol") || strings.Contains(lower, "description")
}
