package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"taller_manager/internal/domain/entities"
	mock_interfaces "taller_manager/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestTransferUseCase_Export(t *testing.T) {
	t.Run("unknown collection", func(t *testing.T) {
		uc := NewTransferUseCase(nil, nil, nil)
		if _, _, err := uc.Export(context.Background(), "clientes"); !errors.Is(err, ErrUnknownCollection) {
			t.Fatalf("expected ErrUnknownCollection, got %v", err)
		}
	})

	t.Run("services export carries a dated filename", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		serviceRepo := mock_interfaces.NewMockIServiceRepository(ctrl)
		uc := NewTransferUseCase(serviceRepo, nil, nil)
		uc.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }

		serviceRepo.EXPECT().Load(gomock.Any()).Return([]entities.Service{
			{ID: "svc-1", ClientName: "Juan", Plate: "AB123C", EntryDate: "2024-06-01", Status: entities.ServiceStatusPending},
		}, nil)

		data, filename, err := uc.Export(context.Background(), CollectionServices)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if filename != "servicios_taller_2024-06-15.csv" {
			t.Fatalf("unexpected filename: %q", filename)
		}
		if !strings.Contains(string(data), "ID Servicio;Estado") {
			t.Fatalf("expected header row:\n%s", data)
		}
		if !strings.Contains(string(data), "svc-1") {
			t.Fatalf("expected data row:\n%s", data)
		}
	})
}

func TestTransferUseCase_Import(t *testing.T) {
	costDoc := "\uFEFF" + strings.Join([]string{
		"ID Gasto;Fecha;Descripción;Categoría;Monto ($)",
		"c1;01/06/2024;Arriendo local;Otros;300000",
		"c9;05/06/2024;Filtros;Repuestos;45000",
	}, "\n")

	t.Run("merge replaces by id and appends the rest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		costRepo := mock_interfaces.NewMockICostRepository(ctrl)
		uc := NewTransferUseCase(nil, costRepo, nil)

		existing := []entities.Cost{
			{ID: "c1", Description: "viejo", Amount: 1},
			{ID: "c2", Description: "intacto", Amount: 2},
		}
		costRepo.EXPECT().Load(gomock.Any()).Return(existing, nil)
		costRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, costs []entities.Cost) error {
				if len(costs) != 3 {
					t.Fatalf("expected 3 costs, got %d", len(costs))
				}
				if costs[0].ID != "c1" || costs[0].Description != "Arriendo local" {
					t.Fatalf("expected c1 replaced in place, got %+v", costs[0])
				}
				if costs[1].ID != "c2" || costs[1].Description != "intacto" {
					t.Fatalf("expected c2 untouched, got %+v", costs[1])
				}
				if costs[2].ID != "c9" || costs[2].Category != entities.CostCategoryParts {
					t.Fatalf("expected c9 appended, got %+v", costs[2])
				}
				return nil
			},
		)

		count, err := uc.Import(context.Background(), CollectionCosts, []byte(costDoc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 2 {
			t.Fatalf("expected 2 imported, got %d", count)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		uc := NewTransferUseCase(nil, nil, nil)
		_, err := uc.Import(context.Background(), CollectionCosts, []byte("ID Gasto;Fecha;Descripción;Categoría;Monto ($)"))
		if !errors.Is(err, ErrEmptyImport) {
			t.Fatalf("expected ErrEmptyImport, got %v", err)
		}
	})

	t.Run("unknown collection", func(t *testing.T) {
		uc := NewTransferUseCase(nil, nil, nil)
		if _, err := uc.Import(context.Background(), "clientes", []byte("x")); !errors.Is(err, ErrUnknownCollection) {
			t.Fatalf("expected ErrUnknownCollection, got %v", err)
		}
	})
}
