package entities

import "testing"

func TestQuoteComputeTotal(t *testing.T) {
	t.Run("split lists", func(t *testing.T) {
		q := Quote{
			LaborItems:   []QuoteLineItem{{Quantity: 2, UnitPrice: 10000}},
			ExpenseItems: []QuoteLineItem{{Quantity: 1, UnitPrice: 5000}},
			Items:        []QuoteLineItem{{Quantity: 10, UnitPrice: 999}},
		}
		// Legacy Items must not leak into the total when split lists exist.
		if got := q.ComputeTotal(); got != 25000 {
			t.Fatalf("expected 25000, got %d", got)
		}
	})

	t.Run("legacy items fallback", func(t *testing.T) {
		q := Quote{Items: []QuoteLineItem{{Quantity: 3, UnitPrice: 4000}}}
		if got := q.ComputeTotal(); got != 12000 {
			t.Fatalf("expected 12000, got %d", got)
		}
	})

	t.Run("empty quote", func(t *testing.T) {
		if got := (Quote{}).ComputeTotal(); got != 0 {
			t.Fatalf("expected 0, got %d", got)
		}
	})
}

func TestQuoteEffectiveItems(t *testing.T) {
	q := Quote{
		LaborItems:   []QuoteLineItem{{ID: "a"}},
		ExpenseItems: []QuoteLineItem{{ID: "b"}},
		Items:        []QuoteLineItem{{ID: "c"}},
	}
	items := q.EffectiveItems()
	if len(items) != 3 || items[0].ID != "a" || items[1].ID != "b" || items[2].ID != "c" {
		t.Fatalf("unexpected flatten order: %+v", items)
	}
}
