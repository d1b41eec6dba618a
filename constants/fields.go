package constants

// FieldCategory tags a canonical field key as belonging to the earning or
// the deduction side of a bill.
type FieldCategory string

const (
	CategoryEarning   FieldCategory = "EARNING"
	CategoryDeduction FieldCategory = "DEDUCTION"
)

// Canonical earning field keys. These are the contract surface consumed by
// storage and export; raw column wording in the source bills maps onto them.
const (
	BasicPay             = "basicPay"
	DearnessAllowance    = "dearnessAllowance"
	HouseRentAllowance   = "houseRentAllowance"
	CityAllowance        = "cityAllowance"
	MedicalAllowance     = "medicalAllowance"
	TransportAllowance   = "transportAllowance"
	BookAllowance        = "bookAllowance"
	NonPracticeAllowance = "nonPracticeAllowance"
	ESISAllowance        = "esisAllowance"
	WashingAllowance     = "washingAllowance"
	NursingAllowance     = "nursingAllowance"
	UniformAllowance     = "uniformAllowance"
	SpecialPay           = "specialPay"
	RecoveryOfPay        = "recoveryOfPay"
	Gross                = "gross"
	SLO                  = "slo"
)

// Canonical deduction field keys.
const (
	IncomeTax       = "incomeTax"
	ProfessionalTax = "professionalTax"
	GPFClass4       = "gpfClass4"
	GPF             = "gpf"
	PensionScheme   = "pensionScheme"
	RAndB           = "rAndB"
	GIS             = "gis"
	GLI             = "gli"
	TotalDeductions = "totalDeductions"
	NetPay          = "netPay"
)

// ReservedDeductionKeys are lifted out of the per-field deduction map at merge
// time and carried as summary scalars on the merged record.
var ReservedDeductionKeys = map[string]struct{}{
	TotalDeductions: {},
	NetPay:          {},
}

// EarningSumExclusions are earning keys skipped when cross-checking the sum of
// earning columns against the gross column.
var EarningSumExclusions = map[string]struct{}{
	Gross: {},
	SLO:   {},
}
