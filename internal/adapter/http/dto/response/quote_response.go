package response

import (
	"taller_manager/internal/domain/entities"
)

type QuoteResponse struct {
	ID           string                   `json:"id"`
	ClientName   string                   `json:"clientName"`
	Phone        string                   `json:"phone,omitempty"`
	Vehicle      string                   `json:"vehicle"`
	Date         string                   `json:"date"`
	LaborItems   []entities.QuoteLineItem `json:"laborItems"`
	ExpenseItems []entities.QuoteLineItem `json:"expenseItems"`
	Items        []entities.QuoteLineItem `json:"items"`
	Notes        string                   `json:"notes,omitempty"`
	ValidityDays int                      `json:"validityDays"`
	Total        int64                    `json:"total"`
	Status       string                   `json:"status"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:           q.ID,
		ClientName:   q.ClientName,
		Phone:        q.Phone,
		Vehicle:      q.Vehicle,
		Date:         q.Date,
		LaborItems:   emptyIfNilQuoteItems(q.LaborItems),
		ExpenseItems: emptyIfNilQuoteItems(q.ExpenseItems),
		Items:        emptyIfNilQuoteItems(q.Items),
		Notes:        q.Notes,
		ValidityDays: q.ValidityDays,
		Total:        q.Total,
		Status:       string(q.Status),
	}
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}

// QuoteAcceptResponse carries both sides of an acceptance: the resolved
// quote and the service it materialized.
type QuoteAcceptResponse struct {
	Quote   QuoteResponse   `json:"quote"`
	Service ServiceResponse `json:"service"`
}

func emptyIfNilQuoteItems(in []entities.QuoteLineItem) []entities.QuoteLineItem {
	if in == nil {
		return []entities.QuoteLineItem{}
	}
	return in
}
