package handlers

import (
	"net/http"

	request "taller_manager/internal/adapter/http/dto/request"
	"taller_manager/internal/usecase"
	"taller_manager/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidSettingsPayload = pkg.NewDomainErrorSimple("INVALID_SETTINGS_INPUT", "Invalid settings payload", http.StatusBadRequest)
)

type SettingsHandler struct {
	usecase usecase.ISettingsUseCase
}

func NewSettingsHandler(uc usecase.ISettingsUseCase) *SettingsHandler {
	return &SettingsHandler{usecase: uc}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.usecase.Get(c.Request.Context())
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var payload request.SettingsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSettingsPayload.HTTPStatus, errInvalidSettingsPayload.ToHTTPError())
		return
	}

	settings, err := h.usecase.Update(c.Request.Context(), payload.ToEntity())
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) ResetSettings(c *gin.Context) {
	settings, err := h.usecase.Reset(c.Request.Context())
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, settings)
}
