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
	errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)
)

// QuoteHandler handles HTTP requests for quotes, acceptance included.

type QuoteHandler struct {
	usecase  usecase.IQuoteUseCase
	whatsapp usecase.IWhatsAppUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase, wa usecase.IWhatsAppUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc, whatsapp: wa}
}

func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

func (h *QuoteHandler) SaveQuote(c *gin.Context) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	created := payload.ID == ""
	q, err := h.usecase.Save(c.Request.Context(), payload.ToEntity())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, response.FromQuote(q))
}

// AcceptQuote flips a pending quote to accepted and returns the work order
// it materialized alongside the resolved quote.
func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	svc, q, err := h.usecase.Accept(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.QuoteAcceptResponse{
		Quote:   response.FromQuote(q),
		Service: response.FromService(svc),
	})
}

func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	q, err := h.usecase.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *QuoteHandler) QuoteWhatsAppMessage(c *gin.Context) {
	msg, err := h.whatsapp.QuoteMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, msg)
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteAlreadyResolved):
		return pkg.NewDomainErrorSimple("QUOTE_ALREADY_RESOLVED", "Quote already accepted or rejected", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNoPhone):
		return pkg.NewDomainErrorSimple("NO_PHONE", "Quote has no phone number registered", http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
