package response

import (
	"taller_manager/internal/domain/entities"
)

type CostResponse struct {
	ID            string `json:"id"`
	Description   string `json:"description"`
	Amount        int64  `json:"amount"`
	Date          string `json:"date"`
	Category      string `json:"category"`
	CategoryLabel string `json:"categoryLabel"`
}

func FromCost(c entities.Cost) CostResponse {
	return CostResponse{
		ID:            c.ID,
		Description:   c.Description,
		Amount:        c.Amount,
		Date:          c.Date,
		Category:      string(c.Category),
		CategoryLabel: c.Category.Label(),
	}
}

func FromCosts(costs []entities.Cost) []CostResponse {
	out := make([]CostResponse, 0, len(costs))
	for _, c := range costs {
		out = append(out, FromCost(c))
	}
	return out
}
