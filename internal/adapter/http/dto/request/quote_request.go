package request

import (
	"taller_manager/internal/domain/entities"
)

type QuoteItemRequest struct {
	ID          string `json:"id"`
	Description string `json:"description" binding:"required"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
}

// QuoteRequest is the create/update payload for a quote. The stored total is
// recomputed by the use case from the line items, so none is accepted here.
type QuoteRequest struct {
	ID           string             `json:"id"`
	ClientName   string             `json:"clientName" binding:"required"`
	Phone        string             `json:"phone"`
	Vehicle      string             `json:"vehicle"`
	LaborItems   []QuoteItemRequest `json:"laborItems"`
	ExpenseItems []QuoteItemRequest `json:"expenseItems"`
	Items        []QuoteItemRequest `json:"items"`
	Notes        string             `json:"notes"`
	ValidityDays int                `json:"validityDays"`
	Date         string             `json:"date"`
}

func (r QuoteRequest) ToEntity() entities.Quote {
	return entities.Quote{
		ID:           r.ID,
		ClientName:   r.ClientName,
		Phone:        r.Phone,
		Vehicle:      r.Vehicle,
		LaborItems:   toQuoteItems(r.LaborItems),
		ExpenseItems: toQuoteItems(r.ExpenseItems),
		Items:        toQuoteItems(r.Items),
		Notes:        r.Notes,
		ValidityDays: r.ValidityDays,
		Date:         r.Date,
	}
}

func toQuoteItems(in []QuoteItemRequest) []entities.QuoteLineItem {
	out := make([]entities.QuoteLineItem, 0, len(in))
	for _, it := range in {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		out = append(out, entities.QuoteLineItem{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    qty,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}
