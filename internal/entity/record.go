package entity

// PayrollRecord is the merged per-employee output: one row per distinct
// identifier across the earning and deduction documents of a batch.
type PayrollRecord struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Designation string             `json:"designation,omitempty"`
	Earnings    map[string]float64 `json:"earnings"`
	Deductions  map[string]float64 `json:"deductions"`
	Gross       float64            `json:"gross"`
	TotalDed    float64            `json:"totalDeductions"`
	NetPay      float64            `json:"netPay"`
}

// ValidationResult aggregates per-record diagnostics and batch totals.
type ValidationResult struct {
	Valid         bool     `json:"valid"`
	ValidRecords  int      `json:"validRecords"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	TotalGross    float64  `json:"totalGross"`
	TotalDed      float64  `json:"totalDeductions"`
	TotalNetPay   float64  `json:"totalNetPay"`
	EarningKeys   []string `json:"earningKeys"`
	DeductionKeys []string `json:"deductionKeys"`
}

// DocumentResult is what one source document contributes to a batch: its
// normalized records plus metadata, or the reason it was excluded.
type DocumentResult struct {
	Path    string             `json:"path"`
	Meta    DocumentMeta       `json:"-"`
	Records []NormalizedRecord `json:"-"`
	Count   int                `json:"recordCount"`
	Err     string             `json:"error,omitempty"`
}

// BatchResult is the full output for one batch of source documents.
type BatchResult struct {
	Records    []PayrollRecord  `json:"records"`
	Validation ValidationResult `json:"validation"`
	MonthLabel string           `json:"monthLabel,omitempty"`
	BillNumber string           `json:"billNumber,omitempty"`
	OfficeName string           `json:"officeName,omitempty"`
	Documents  []DocumentResult `json:"documents"`
}
