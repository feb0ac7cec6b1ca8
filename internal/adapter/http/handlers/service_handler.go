package handlers

import (
	"errors"
	"net/http"

	request "taller_manager/internal/adapter/http/dto/request"
	response "taller_manager/internal/adapter/http/dto/response"
	"taller_manager/internal/domain/entities"
	"taller_manager/internal/usecase"
	"taller_manager/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidServicePayload = pkg.NewDomainErrorSimple("INVALID_SERVICE_INPUT", "Invalid service payload", http.StatusBadRequest)
)

// ServiceHandler handles HTTP requests for work orders.

type ServiceHandler struct {
	usecase  usecase.IServiceUseCase
	whatsapp usecase.IWhatsAppUseCase
}

func NewServiceHandler(uc usecase.IServiceUseCase, wa usecase.IWhatsAppUseCase) *ServiceHandler {
	return &ServiceHandler{usecase: uc, whatsapp: wa}
}

// ListServices returns the collection sorted by entry date, newest first.
// Query params: search (client/plate/brand substring), status ("" for the
// active queue, "all", or an exact status).
func (h *ServiceHandler) ListServices(c *gin.Context) {
	services, err := h.usecase.ListFiltered(c.Request.Context(), c.Query("search"), c.Query("status"))
	if err != nil {
		appErr := mapServiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromServices(services))
}

func (h *ServiceHandler) GetService(c *gin.Context) {
	s, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapServiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromService(s))
}

// SaveService upserts a work order. New records get an id, an entry date and
// the pending status; the use case reconciles the legacy advance scalar with
// the payment list either way.
func (h *ServiceHandler) SaveService(c *gin.Context) {
	var payload request.ServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServicePayload.HTTPStatus, errInvalidServicePayload.ToHTTPError())
		return
	}

	created := payload.ID == ""
	s, err := h.usecase.Save(c.Request.Context(), payload.ToEntity())
	if err != nil {
		appErr := mapServiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, response.FromService(s))
}

func (h *ServiceHandler) UpdateServiceStatus(c *gin.Context) {
	var payload request.ServiceStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServicePayload.HTTPStatus, errInvalidServicePayload.ToHTTPError())
		return
	}

	s, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), entities.ServiceStatus(payload.Status))
	if err != nil {
		appErr := mapServiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromService(s))
}

// CompleteService closes a work order, recording the outstanding balance as
// a final payment dated at the supplied completion date.
func (h *ServiceHandler) CompleteService(c *gin.Context) {
	var payload request.ServiceCompleteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServicePayload.HTTPStatus, errInvalidServicePayload.ToHTTPError())
		return
	}

	s, err := h.usecase.Complete(c.Request.Context(), c.Param("id"), payload.CompletionDate)
	if err != nil {
		appErr := mapServiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromService(s))
}

func (h *ServiceHandler) DeleteService(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapServiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

// ServiceWhatsAppMessage renders the status message for the client from the
// stored template.
func (h *ServiceHandler) ServiceWhatsAppMessage(c *gin.Context) {
	msg, err := h.whatsapp.ServiceMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapServiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, msg)
}

func mapServiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidServiceID),
		errors.Is(err, usecase.ErrInvalidPlate),
		errors.Is(err, usecase.ErrInvalidServiceStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCompletionDateRequired):
		return pkg.NewDomainErrorSimple("COMPLETION_DATE_REQUIRED", "Completing a service requires a completion date", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceAlreadyCompleted):
		return pkg.NewDomainErrorSimple("SERVICE_ALREADY_COMPLETED", "Service already completed", http.StatusConflict)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNoPhone):
		return pkg.NewDomainErrorSimple("NO_PHONE", "Service has no phone number registered", http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
