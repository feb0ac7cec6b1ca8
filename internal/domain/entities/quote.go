package entities

// QuoteStatus represents the lifecycle of a quote (cotización).
//
// pending -> accepted and pending -> rejected are the only transitions;
// both end states are terminal.

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// QuoteLineItem is one quote entry priced by quantity × unit price.
type QuoteLineItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
}

// LineTotal returns quantity × unit price.
func (i QuoteLineItem) LineTotal() int64 {
	return i.Quantity * i.UnitPrice
}

// Quote is a pre-work price estimate that may convert into a Service.
//
// Vehicle is free text ("brand model plate") typed by the user; it is only
// parsed into structured fields at acceptance time. Items is the oldest
// legacy shape, consulted only when both split lists are absent.
//
// Total is a snapshot taken at save time; it is not kept in sync with later
// item edits until the next explicit save. Recompute with ComputeTotal.
type Quote struct {
	ID           string          `json:"id"`
	ClientName   string          `json:"clientName"`
	Phone        string          `json:"phone,omitempty"`
	Vehicle      string          `json:"vehicle"`
	Date         string          `json:"date"`
	LaborItems   []QuoteLineItem `json:"laborItems,omitempty"`
	ExpenseItems []QuoteLineItem `json:"expenseItems,omitempty"`
	Items        []QuoteLineItem `json:"items,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	ValidityDays int             `json:"validityDays"`
	Total        int64           `json:"total"`
	Status       QuoteStatus     `json:"status"`
}

// ComputeTotal derives the quote total from the split item lists, falling
// back to the legacy Items list when both are empty.
func (q Quote) ComputeTotal() int64 {
	var sum int64
	if len(q.LaborItems) == 0 && len(q.ExpenseItems) == 0 {
		for _, it := range q.Items {
			sum += it.LineTotal()
		}
		return sum
	}
	for _, it := range q.LaborItems {
		sum += it.LineTotal()
	}
	for _, it := range q.ExpenseItems {
		sum += it.LineTotal()
	}
	return sum
}

// EffectiveItems flattens every line item on the quote, legacy list included,
// in labor, expense, items order. Used by exports and acceptance mapping.
func (q Quote) EffectiveItems() []QuoteLineItem {
	out := make([]QuoteLineItem, 0, len(q.LaborItems)+len(q.ExpenseItems)+len(q.Items))
	out = append(out, q.LaborItems...)
	out = append(out, q.ExpenseItems...)
	out = append(out, q.Items...)
	return out
}
