package usecase

import (
	"context"
	"errors"
	"testing"

	"taller_manager/internal/domain/entities"
	mock_interfaces "taller_manager/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestCostUseCase_Save(t *testing.T) {
	t.Run("non-positive amount", func(t *testing.T) {
		uc := NewCostUseCase(nil)
		if _, err := uc.Save(context.Background(), entities.Cost{Amount: 0}); !errors.Is(err, ErrInvalidCostAmount) {
			t.Fatalf("expected ErrInvalidCostAmount, got %v", err)
		}
	})

	t.Run("new cost gets defaults and prepends", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICostRepository(ctrl)
		uc := NewCostUseCase(repo)

		repo.EXPECT().Load(gomock.Any()).Return([]entities.Cost{{ID: "old"}}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, costs []entities.Cost) error {
				if len(costs) != 2 || costs[1].ID != "old" {
					t.Fatalf("expected prepend, got %+v", costs)
				}
				return nil
			},
		)

		c, err := uc.Save(context.Background(), entities.Cost{Description: "Arriendo", Amount: 300000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.ID == "" || c.Date == "" {
			t.Fatalf("missing defaults: %+v", c)
		}
		if c.Category != entities.CostCategoryOther {
			t.Fatalf("expected default category, got %s", c.Category)
		}
	})

	t.Run("update replaces in place", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICostRepository(ctrl)
		uc := NewCostUseCase(repo)

		repo.EXPECT().Load(gomock.Any()).Return([]entities.Cost{{ID: "c1", Amount: 100}}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, costs []entities.Cost) error {
				if len(costs) != 1 || costs[0].Amount != 200 {
					t.Fatalf("expected in-place replace, got %+v", costs)
				}
				return nil
			},
		)

		if _, err := uc.Save(context.Background(), entities.Cost{ID: "c1", Amount: 200, Date: "2024-06-01", Category: entities.CostCategoryParts}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestCostUseCase_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockICostRepository(ctrl)
	uc := NewCostUseCase(repo)

	repo.EXPECT().Load(gomock.Any()).Return([]entities.Cost{
		{ID: "a", Date: "2024-06-01"},
		{ID: "b", Date: "2024-06-10"},
	}, nil)

	costs, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if costs[0].ID != "b" || costs[1].ID != "a" {
		t.Fatalf("expected newest first, got %+v", costs)
	}
}

func TestCostUseCase_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockICostRepository(ctrl)
	uc := NewCostUseCase(repo)

	repo.EXPECT().Load(gomock.Any()).Return([]entities.Cost{{ID: "c1"}}, nil)

	if err := uc.Delete(context.Background(), "nope"); !errors.Is(err, ErrCostNotFound) {
		t.Fatalf("expected ErrCostNotFound, got %v", err)
	}
}
