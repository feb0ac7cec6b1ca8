package entities

// CostCategory classifies an operating cost of the workshop.

type CostCategory string

const (
	CostCategoryParts     CostCategory = "parts"
	CostCategoryLabor     CostCategory = "labor"
	CostCategoryUtilities CostCategory = "utilities"
	CostCategoryOther     CostCategory = "other"
)

// Label returns the Spanish display label used on exports.
func (c CostCategory) Label() string {
	switch c {
	case CostCategoryParts:
		return "Repuestos"
	case CostCategoryLabor:
		return "Mano de Obra"
	case CostCategoryUtilities:
		return "Servicios"
	default:
		return "Otros"
	}
}

// CostCategoryFromLabel resolves a display label back to its category code.
// Unknown labels default to other.
func CostCategoryFromLabel(label string) CostCategory {
	switch label {
	case "Repuestos":
		return CostCategoryParts
	case "Mano de Obra":
		return CostCategoryLabor
	case "Servicios":
		return CostCategoryUtilities
	default:
		return CostCategoryOther
	}
}

// Cost is a dated operating expense. Amount needs no derivation.
type Cost struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Amount      int64        `json:"amount"`
	Date        string       `json:"date"`
	Category    CostCategory `json:"category"`
}
