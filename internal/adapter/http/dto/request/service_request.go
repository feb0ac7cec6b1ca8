package request

import (
	"taller_manager/internal/domain/entities"
)

type LineItemRequest struct {
	ID          string `json:"id"`
	Description string `json:"description" binding:"required"`
	Amount      int64  `json:"amount"`
}

type PaymentEventRequest struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}

// ServiceRequest is the create/update payload for a work order. Identity and
// derived fields (price mirror, reconciled payments) are handled by the use
// case, so the payload is accepted mostly as-is.
type ServiceRequest struct {
	ID         string                `json:"id"`
	ClientName string                `json:"clientName" binding:"required"`
	Phone      string                `json:"phone"`
	Plate      string                `json:"plate" binding:"required"`
	Brand      string                `json:"brand"`
	Model      string                `json:"model"`
	Reason     string                `json:"reason"`
	Price      int64                 `json:"price"`
	LaborItems []LineItemRequest     `json:"laborItems"`
	Expenses   []LineItemRequest     `json:"expenses"`
	Advance    int64                 `json:"advance"`
	Payments   []PaymentEventRequest `json:"payments"`
	EntryDate  string                `json:"entryDate"`
	Status     string                `json:"status"`
	Photos     []string              `json:"photos"`
}

func (r ServiceRequest) ToEntity() entities.Service {
	return entities.Service{
		ID:         r.ID,
		ClientName: r.ClientName,
		Phone:      r.Phone,
		Plate:      r.Plate,
		Brand:      r.Brand,
		Model:      r.Model,
		Reason:     r.Reason,
		Price:      r.Price,
		LaborItems: toLineItems(r.LaborItems),
		Expenses:   toLineItems(r.Expenses),
		Advance:    r.Advance,
		Payments:   toPaymentEvents(r.Payments),
		EntryDate:  r.EntryDate,
		Status:     entities.ServiceStatus(r.Status),
		Photos:     r.Photos,
	}
}

type ServiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ServiceCompleteRequest struct {
	CompletionDate string `json:"completionDate" binding:"required"`
}

func toLineItems(in []LineItemRequest) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, entities.LineItem{
			ID:          it.ID,
			Description: it.Description,
			Amount:      it.Amount,
		})
	}
	return out
}

func toPaymentEvents(in []PaymentEventRequest) []entities.PaymentEvent {
	out := make([]entities.PaymentEvent, 0, len(in))
	for _, p := range in {
		out = append(out, entities.PaymentEvent{
			ID:          p.ID,
			Amount:      p.Amount,
			Date:        p.Date,
			Type:        entities.PaymentType(p.Type),
			Description: p.Description,
		})
	}
	return out
}
