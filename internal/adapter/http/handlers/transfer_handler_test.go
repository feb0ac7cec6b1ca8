package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taller_manager/internal/domain/entities"
	"taller_manager/internal/usecase"
	mock_interfaces "taller_manager/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestTransferHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(costRepo *mock_interfaces.MockICostRepository) *gin.Engine {
		h := NewTransferHandler(usecase.NewTransferUseCase(nil, costRepo, nil))
		r := gin.New()
		r.GET("/v1/transfer/export/:collection", h.Export)
		r.POST("/v1/transfer/import/:collection", h.Import)
		return r
	}

	t.Run("export streams the document", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		costRepo := mock_interfaces.NewMockICostRepository(ctrl)
		r := newRouter(costRepo)

		costRepo.EXPECT().Load(gomock.Any()).Return([]entities.Cost{
			{ID: "c1", Description: "Arriendo", Amount: 300000, Date: "2024-06-01", Category: entities.CostCategoryOther},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/transfer/export/costs", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "gastos_taller_") {
			t.Fatalf("unexpected content disposition: %q", cd)
		}
		if !strings.Contains(w.Body.String(), "Arriendo") {
			t.Fatalf("expected data row:\n%s", w.Body.String())
		}
	})

	t.Run("unknown collection maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r := newRouter(mock_interfaces.NewMockICostRepository(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/v1/transfer/export/clientes", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("import raw body reports the count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		costRepo := mock_interfaces.NewMockICostRepository(ctrl)
		r := newRouter(costRepo)

		costRepo.EXPECT().Load(gomock.Any()).Return([]entities.Cost{}, nil)
		costRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		doc := strings.Join([]string{
			"ID Gasto;Fecha;Descripción;Categoría;Monto ($)",
			"c1;01/06/2024;Arriendo;Otros;300000",
		}, "\n")
		req := httptest.NewRequest(http.MethodPost, "/v1/transfer/import/costs", bytes.NewBufferString(doc))
		req.Header.Set("Content-Type", "text/csv")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid json response: %v", err)
		}
		if got["imported"].(float64) != 1 || got["collection"] != "costs" {
			t.Fatalf("unexpected response: %v", got)
		}
	})

	t.Run("empty payload maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r := newRouter(mock_interfaces.NewMockICostRepository(ctrl))

		req := httptest.NewRequest(http.MethodPost, "/v1/transfer/import/costs", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
