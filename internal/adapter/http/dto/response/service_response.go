package response

import (
	"taller_manager/internal/domain/entities"
)

// ServiceResponse mirrors the stored record and adds the derived money
// fields so clients never re-implement the legacy fallback rules.
type ServiceResponse struct {
	ID          string                  `json:"id"`
	ClientName  string                  `json:"clientName"`
	Phone       string                  `json:"phone,omitempty"`
	Plate       string                  `json:"plate"`
	Brand       string                  `json:"brand"`
	Model       string                  `json:"model"`
	Reason      string                  `json:"reason"`
	Price       int64                   `json:"price"`
	LaborItems  []entities.LineItem     `json:"laborItems"`
	Expenses    []entities.LineItem     `json:"expenses"`
	Advance     int64                   `json:"advance"`
	Payments    []entities.PaymentEvent `json:"payments"`
	Photos      []string                `json:"photos,omitempty"`
	EntryDate   string                  `json:"entryDate"`
	Status      string                  `json:"status"`
	StatusLabel string                  `json:"statusLabel"`
	Total       int64                   `json:"total"`
	AdvancePaid int64                   `json:"advancePaid"`
	Balance     int64                   `json:"balance"`
}

func FromService(s entities.Service) ServiceResponse {
	total := s.Total()
	paid := s.AdvancePaid()
	return ServiceResponse{
		ID:          s.ID,
		ClientName:  s.ClientName,
		Phone:       s.Phone,
		Plate:       s.Plate,
		Brand:       s.Brand,
		Model:       s.Model,
		Reason:      s.Reason,
		Price:       s.Price,
		LaborItems:  emptyIfNilItems(s.LaborItems),
		Expenses:    emptyIfNilItems(s.Expenses),
		Advance:     s.Advance,
		Payments:    emptyIfNilPayments(s.Payments),
		Photos:      s.Photos,
		EntryDate:   s.EntryDate,
		Status:      string(s.Status),
		StatusLabel: s.Status.Label(),
		Total:       total,
		AdvancePaid: paid,
		Balance:     total - paid,
	}
}

func FromServices(services []entities.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, FromService(s))
	}
	return out
}

func emptyIfNilItems(in []entities.LineItem) []entities.LineItem {
	if in == nil {
		return []entities.LineItem{}
	}
	return in
}

func emptyIfNilPayments(in []entities.PaymentEvent) []entities.PaymentEvent {
	if in == nil {
		return []entities.PaymentEvent{}
	}
	return in
}
