package entities

// ServiceStatus represents the lifecycle of a work order (servicio).
//
// Domain notes:
//   - pending and in-progress services are the active workshop queue.
//   - completed/cancelled services live in the history view.

type ServiceStatus string

const (
	ServiceStatusPending    ServiceStatus = "pending"
	ServiceStatusInProgress ServiceStatus = "in-progress"
	ServiceStatusCompleted  ServiceStatus = "completed"
	ServiceStatusCancelled  ServiceStatus = "cancelled"
)

// Label returns the Spanish display label used on exports and messages.
func (s ServiceStatus) Label() string {
	switch s {
	case ServiceStatusCompleted:
		return "Completado"
	case ServiceStatusInProgress:
		return "En Proceso"
	case ServiceStatusCancelled:
		return "Cancelado"
	default:
		return "Pendiente"
	}
}

// ServiceStatusFromLabel resolves a display label back to its status code.
// Unknown labels default to pending.
func ServiceStatusFromLabel(label string) ServiceStatus {
	switch label {
	case "Completado":
		return ServiceStatusCompleted
	case "En Proceso":
		return ServiceStatusInProgress
	case "Cancelado":
		return ServiceStatusCancelled
	default:
		return ServiceStatusPending
	}
}

// PaymentType distinguishes the two cash inflows a service can record.

type PaymentType string

const (
	PaymentTypeAdvance PaymentType = "advance"
	PaymentTypeFinal   PaymentType = "final"
)

// LineItem is one billable labor or expense entry with a flat amount.
// Identifiers are opaque, unique within the parent list and never reused.
type LineItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// PaymentEvent is a dated, typed cash inflow tied to exactly one service.
// Ordering within Payments is insertion order, not necessarily chronological.
type PaymentEvent struct {
	ID          string      `json:"id"`
	Amount      int64       `json:"amount"`
	Date        string      `json:"date"`
	Type        PaymentType `json:"type"`
	Description string      `json:"description"`
}

// Service is a work order tracked from intake to completion/cancellation.
//
// Two historical data shapes coexist and are never migrated in place:
//   - legacy: Price (base labor) and Advance scalars;
//   - current: LaborItems/Expenses lists and the Payments event list.
//
// Every consumer must apply the same precedence: prefer the structured list,
// fall back to the legacy scalar. That rule lives in EffectiveLabor, Total and
// AdvancePaid below; call sites must not re-derive it.
type Service struct {
	ID         string         `json:"id"`
	ClientName string         `json:"clientName"`
	Phone      string         `json:"phone,omitempty"`
	Plate      string         `json:"plate"`
	Brand      string         `json:"brand"`
	Model      string         `json:"model"`
	Reason     string         `json:"reason"`
	Price      int64          `json:"price"`
	LaborItems []LineItem     `json:"laborItems,omitempty"`
	Expenses   []LineItem     `json:"expenses,omitempty"`
	Advance    int64          `json:"advance,omitempty"`
	Payments   []PaymentEvent `json:"payments,omitempty"`
	Photos     []string       `json:"photos,omitempty"`
	EntryDate  string         `json:"entryDate"`
	Status     ServiceStatus  `json:"status"`
}

// EffectiveLabor returns the labor portion of the total. A non-empty
// LaborItems list is authoritative; Price is only a fallback for legacy
// records that never itemized labor.
func (s Service) EffectiveLabor() int64 {
	if len(s.LaborItems) > 0 {
		var sum int64
		for _, it := range s.LaborItems {
			sum += it.Amount
		}
		return sum
	}
	if s.Price > 0 {
		return s.Price
	}
	return 0
}

// ExpensesTotal sums the parts/supplies entries.
func (s Service) ExpensesTotal() int64 {
	var sum int64
	for _, it := range s.Expenses {
		sum += it.Amount
	}
	return sum
}

// Total derives the amount owed for the service. Pure; re-invoke after every
// edit instead of caching, line items mutate independently of any stored value.
func (s Service) Total() int64 {
	return s.EffectiveLabor() + s.ExpensesTotal()
}

// AdvancePaid returns what the client already paid up front: the sum of
// advance-typed payment events, or the legacy Advance scalar when the service
// predates payment tracking.
func (s Service) AdvancePaid() int64 {
	if len(s.Payments) == 0 {
		return s.Advance
	}
	var sum int64
	for _, p := range s.Payments {
		if p.Type == PaymentTypeAdvance {
			sum += p.Amount
		}
	}
	return sum
}

// FindPayment returns the first payment of the given type, if any.
func (s Service) FindPayment(t PaymentType) (PaymentEvent, bool) {
	for _, p := range s.Payments {
		if p.Type == t {
			return p, true
		}
	}
	return PaymentEvent{}, false
}
