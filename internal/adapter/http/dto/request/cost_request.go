package request

import (
	"taller_manager/internal/domain/entities"
)

type CostRequest struct {
	ID          string `json:"id"`
	Description string `json:"description" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

func (r CostRequest) ToEntity() entities.Cost {
	return entities.Cost{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		Category:    entities.CostCategory(r.Category),
		Date:        r.Date,
	}
}
