package handlers

import (
	"errors"
	"net/http"

	request "taller_manager/internal/adapter/http/dto/request"
	response "taller_manager/internal/adapter/http/dto/response"
	"taller_manager/internal/usecase"
	"taller_manager/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidCostPayload = pkg.NewDomainErrorSimple("INVALID_COST_INPUT", "Invalid cost payload", http.StatusBadRequest)
)

type CostHandler struct {
	usecase usecase.ICostUseCase
}

func NewCostHandler(uc usecase.ICostUseCase) *CostHandler {
	return &CostHandler{usecase: uc}
}

func (h *CostHandler) ListCosts(c *gin.Context) {
	costs, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapCostError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCosts(costs))
}

func (h *CostHandler) SaveCost(c *gin.Context) {
	var payload request.CostRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCostPayload.HTTPStatus, errInvalidCostPayload.ToHTTPError())
		return
	}

	created := payload.ID == ""
	cost, err := h.usecase.Save(c.Request.Context(), payload.ToEntity())
	if err != nil {
		appErr := mapCostError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, response.FromCost(cost))
}

func (h *CostHandler) DeleteCost(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapCostError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapCostError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCostID), errors.Is(err, usecase.ErrInvalidCostAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCostNotFound):
		return pkg.NewDomainErrorSimple("COST_NOT_FOUND", "Cost not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
