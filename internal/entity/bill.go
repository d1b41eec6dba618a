package entity

import "github.com/joseph-ayodele/payroll-parser/constants"

// DocumentMeta is what the classifier learns about a bill document. Kind is
// mandatory; the rest is best-effort and left empty when not found.
type DocumentMeta struct {
	Kind       constants.DocKind
	MonthLabel string
	BillNumber string
	OfficeName string
}

// Column is one resolved header column: the raw label from the catalogue and
// the x-position its header token was found at.
type Column struct {
	Label string
	X     float64
}

// ColumnSchema is the ordered column list established once from the first
// page's header zone and reused for every data row of the document. Columns
// are sorted ascending by X; the order defines how trailing numeric values on
// each data line are assigned to fields.
type ColumnSchema struct {
	Kind    constants.DocKind
	Columns []Column
	Valid   bool // false when the header zone yielded zero tokens
}

// EmployeeBlock is the bounded line group around one anchor line.
type EmployeeBlock struct {
	Serial int
	ID     string // 8-digit employee identifier
	Lines  []Line // block lines in document order, anchor included
	Anchor Line   // the data line itself
	Page   int
}

// ParsedEmployee is the block parser's output: positional raw values, not yet
// zipped with the column schema.
type ParsedEmployee struct {
	ID          string
	Name        string
	Designation string
	Values      []float64
}

// NormalizedRecord carries one employee's fields from a single document, keyed
// by canonical field key.
type NormalizedRecord struct {
	ID          string
	Name        string
	Designation string
	Fields      map[string]float64
	Category    constants.FieldCategory
}
