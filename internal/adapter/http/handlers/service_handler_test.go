package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taller_manager/internal/domain/entities"
	"taller_manager/internal/usecase"
	mock_interfaces "taller_manager/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newServiceRouter(t *testing.T, repo *mock_interfaces.MockIServiceRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewServiceHandler(usecase.NewServiceUseCase(repo), nil)

	r := gin.New()
	r.GET("/v1/services", h.ListServices)
	r.GET("/v1/services/:id", h.GetService)
	r.POST("/v1/services", h.SaveService)
	r.PATCH("/v1/services/:id/status", h.UpdateServiceStatus)
	r.PATCH("/v1/services/:id/complete", h.CompleteService)
	r.DELETE("/v1/services/:id", h.DeleteService)
	return r
}

func TestServiceHandler_SaveService(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)
		r := newServiceRouter(t, repo)

		req := httptest.NewRequest(http.MethodPost, "/v1/services", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("creates and returns derived totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)
		r := newServiceRouter(t, repo)

		repo.EXPECT().Load(gomock.Any()).Return([]entities.Service{}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		body := `{"clientName":"Juan","plate":"ab123c","advance":10000,` +
			`"laborItems":[{"description":"Frenos","amount":30000}],` +
			`"expenses":[{"description":"Pastillas","amount":15000}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/services", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid json response: %v", err)
		}
		if got["plate"] != "AB123C" {
			t.Fatalf("expected uppercased plate, got %v", got["plate"])
		}
		if got["total"].(float64) != 45000 {
			t.Fatalf("expected total 45000, got %v", got["total"])
		}
		if got["balance"].(float64) != 35000 {
			t.Fatalf("expected balance 35000, got %v", got["balance"])
		}
	})

	t.Run("missing plate maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)
		r := newServiceRouter(t, repo)

		req := httptest.NewRequest(http.MethodPost, "/v1/services", bytes.NewBufferString(`{"clientName":"Juan"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestServiceHandler_CompleteService(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)
		r := newServiceRouter(t, repo)

		repo.EXPECT().Load(gomock.Any()).Return([]entities.Service{}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/services/missing/complete", bytes.NewBufferString(`{"completionDate":"2024-06-20"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("already completed maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)
		r := newServiceRouter(t, repo)

		repo.EXPECT().Load(gomock.Any()).Return([]entities.Service{
			{ID: "svc-1", Status: entities.ServiceStatusCompleted},
		}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/services/svc-1/complete", bytes.NewBufferString(`{"completionDate":"2024-06-20"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestServiceHandler_UpdateServiceStatus(t *testing.T) {
	t.Run("completed without date maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)
		r := newServiceRouter(t, repo)

		req := httptest.NewRequest(http.MethodPatch, "/v1/services/svc-1/status", bytes.NewBufferString(`{"status":"completed"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var got map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid json response: %v", err)
		}
		if got["code"] != "COMPLETION_DATE_REQUIRED" {
			t.Fatalf("unexpected error code: %q", got["code"])
		}
	})
}
