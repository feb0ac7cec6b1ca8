package handlers

import (
	"errors"
	"io"
	"net/http"

	response "taller_manager/internal/adapter/http/dto/response"
	"taller_manager/internal/usecase"
	"taller_manager/pkg"

	"github.com/gin-gonic/gin"
)

// TransferHandler moves whole collections through the flat-text format.
// Export streams the rendered document; Import accepts it either as a
// multipart "file" field or as the raw request body.

type TransferHandler struct {
	usecase usecase.ITransferUseCase
}

func NewTransferHandler(uc usecase.ITransferUseCase) *TransferHandler {
	return &TransferHandler{usecase: uc}
}

func (h *TransferHandler) Export(c *gin.Context) {
	data, filename, err := h.usecase.Export(c.Request.Context(), c.Param("collection"))
	if err != nil {
		appErr := mapTransferError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *TransferHandler) Import(c *gin.Context) {
	data, appErr := importPayload(c)
	if appErr != nil {
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	collection := c.Param("collection")
	count, err := h.usecase.Import(c.Request.Context(), collection, data)
	if err != nil {
		appErr := mapTransferError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.ImportResponse{Collection: collection, Imported: count})
}

func importPayload(c *gin.Context) ([]byte, *pkg.AppError) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, pkg.NewDomainError("INVALID_IMPORT_FILE", "Could not read uploaded file", err, http.StatusBadRequest)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, pkg.NewDomainError("INVALID_IMPORT_FILE", "Could not read uploaded file", err, http.StatusBadRequest)
		}
		return data, nil
	}

	data, err := c.GetRawData()
	if err != nil || len(data) == 0 {
		return nil, pkg.NewDomainErrorSimple("INVALID_IMPORT_FILE", "Import payload is empty", http.StatusBadRequest)
	}
	return data, nil
}

func mapTransferError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUnknownCollection):
		return pkg.NewDomainErrorSimple("UNKNOWN_COLLECTION", "Unknown collection", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEmptyImport):
		return pkg.NewDomainErrorSimple("EMPTY_IMPORT", "No importable rows in the payload", http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
