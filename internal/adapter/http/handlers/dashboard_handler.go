package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"taller_manager/internal/usecase"
	"taller_manager/pkg"

	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes the reporting projections: chart series,
// movement drill-downs and the summary header.

type DashboardHandler struct {
	usecase usecase.IReportUseCase
}

func NewDashboardHandler(uc usecase.IReportUseCase) *DashboardHandler {
	return &DashboardHandler{usecase: uc}
}

// Trend returns the income/expense chart series.
// Query params: mode (last_6_months|year|month), year, month.
func (h *DashboardHandler) Trend(c *gin.Context) {
	mode := usecase.TrendMode(c.DefaultQuery("mode", string(usecase.TrendLast6Months)))
	year, month := yearMonthParams(c)

	points, err := h.usecase.Trend(c.Request.Context(), mode, year, month)
	if err != nil {
		appErr := mapReportError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, points)
}

// Movements returns the drill-down rows plus their sum.
// Query params: kind (income|costs), filter (week|month|all|specific-month),
// year, month.
func (h *DashboardHandler) Movements(c *gin.Context) {
	kind := usecase.MovementKind(c.DefaultQuery("kind", string(usecase.MovementIncome)))
	filter := usecase.MovementFilter(c.DefaultQuery("filter", string(usecase.MovementMonth)))
	year, month := yearMonthParams(c)

	result, err := h.usecase.Movements(c.Request.Context(), kind, filter, year, month)
	if err != nil {
		appErr := mapReportError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.usecase.Summary(c.Request.Context())
	if err != nil {
		appErr := mapReportError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, summary)
}

func yearMonthParams(c *gin.Context) (int, time.Month) {
	year, _ := strconv.Atoi(c.Query("year"))
	monthNum, _ := strconv.Atoi(c.Query("month"))
	return year, time.Month(monthNum)
}

func mapReportError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidTrendMode),
		errors.Is(err, usecase.ErrInvalidMovementKind),
		errors.Is(err, usecase.ErrInvalidTrendSelector):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
