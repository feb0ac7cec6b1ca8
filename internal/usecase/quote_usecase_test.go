package usecase

import (
	"context"
	"errors"
	"testing"

	"taller_manager/internal/domain/entities"
	mock_interfaces "taller_manager/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestQuoteUseCase_Save(t *testing.T) {
	t.Run("new quote gets sequential id and snapshot total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		existing := []entities.Quote{{ID: "002"}, {ID: "001"}}
		repo.EXPECT().Load(gomock.Any()).Return(existing, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		q, err := uc.Save(context.Background(), entities.Quote{
			ClientName: "Juan",
			LaborItems: []entities.QuoteLineItem{{Quantity: 2, UnitPrice: 10000}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.ID != "003" {
			t.Fatalf("expected id 003, got %q", q.ID)
		}
		if q.Total != 20000 {
			t.Fatalf("expected total 20000, got %d", q.Total)
		}
		if q.ValidityDays != 15 || q.Status != entities.QuoteStatusPending || q.Date == "" {
			t.Fatalf("missing defaults: %+v", q)
		}
	})

	t.Run("total is recomputed on update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		existing := []entities.Quote{{ID: "001", Total: 99999, Status: entities.QuoteStatusPending, Date: "2024-06-01", ValidityDays: 15}}
		repo.EXPECT().Load(gomock.Any()).Return(existing, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		q, err := uc.Save(context.Background(), entities.Quote{
			ID:           "001",
			Date:         "2024-06-01",
			Status:       entities.QuoteStatusPending,
			ValidityDays: 15,
			Items:        []entities.QuoteLineItem{{Quantity: 1, UnitPrice: 5000}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Total != 5000 {
			t.Fatalf("expected recomputed total 5000, got %d", q.Total)
		}
	})
}

func TestQuoteUseCase_Accept(t *testing.T) {
	newPendingQuote := func() entities.Quote {
		return entities.Quote{
			ID:         "007",
			ClientName: "María",
			Phone:      "+56 9 1234 5678",
			Vehicle:    "Toyota Yaris AB123C",
			Status:     entities.QuoteStatusPending,
			LaborItems: []entities.QuoteLineItem{
				{Description: "Cambio pastillas", Quantity: 1, UnitPrice: 30000},
			},
			ExpenseItems: []entities.QuoteLineItem{
				{Description: "Pastillas freno", Quantity: 2, UnitPrice: 15000},
			},
		}
	}

	t.Run("materializes a pending service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		serviceRepo := mock_interfaces.NewMockIServiceRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, serviceRepo)

		quoteRepo.EXPECT().Load(gomock.Any()).Return([]entities.Quote{newPendingQuote()}, nil)
		serviceRepo.EXPECT().Load(gomock.Any()).Return([]entities.Service{}, nil)
		serviceRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, services []entities.Service) error {
				if len(services) != 1 {
					t.Fatalf("expected 1 service, got %d", len(services))
				}
				s := services[0]
				if s.Plate != "AB123C" || s.Brand != "Toyota" || s.Model != "Yaris" {
					t.Fatalf("unexpected vehicle split: %+v", s)
				}
				if s.Status != entities.ServiceStatusPending || s.Price != 0 || s.Advance != 0 {
					t.Fatalf("service must start clean: %+v", s)
				}
				if len(s.Payments) != 0 {
					t.Fatalf("expected empty payments, got %+v", s.Payments)
				}
				if s.Reason != "Cotización #007 Aprobada" {
					t.Fatalf("unexpected reason: %q", s.Reason)
				}
				if len(s.LaborItems) != 1 || s.LaborItems[0].Amount != 30000 {
					t.Fatalf("unexpected labor mapping: %+v", s.LaborItems)
				}
				if len(s.Expenses) != 1 || s.Expenses[0].Amount != 30000 {
					t.Fatalf("unexpected expense mapping: %+v", s.Expenses)
				}
				if s.Expenses[0].Description != "(2) Pastillas freno" {
					t.Fatalf("quantity prefix missing: %q", s.Expenses[0].Description)
				}
				return nil
			},
		)
		quoteRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, quotes []entities.Quote) error {
				if quotes[0].Status != entities.QuoteStatusAccepted {
					t.Fatalf("expected accepted, got %s", quotes[0].Status)
				}
				return nil
			},
		)

		svc, q, err := uc.Accept(context.Background(), "007")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Status != entities.QuoteStatusAccepted {
			t.Fatalf("expected accepted quote, got %s", q.Status)
		}
		if svc.ID == "" {
			t.Fatal("expected generated service id")
		}
	})

	t.Run("quote save failure rolls back the service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		serviceRepo := mock_interfaces.NewMockIServiceRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, serviceRepo)

		prior := []entities.Service{{ID: "existing"}}
		quoteRepo.EXPECT().Load(gomock.Any()).Return([]entities.Quote{newPendingQuote()}, nil)
		serviceRepo.EXPECT().Load(gomock.Any()).Return(prior, nil)
		serviceRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		quoteRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		serviceRepo.EXPECT().Save(gomock.Any(), prior).Return(nil)

		_, _, err := uc.Accept(context.Background(), "007")
		if err == nil || err.Error() != "db down" {
			t.Fatalf("expected db down error, got %v", err)
		}
	})

	t.Run("already resolved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(quoteRepo, nil)

		q := newPendingQuote()
		q.Status = entities.QuoteStatusAccepted
		quoteRepo.EXPECT().Load(gomock.Any()).Return([]entities.Quote{q}, nil)

		_, _, err := uc.Accept(context.Background(), "007")
		if !errors.Is(err, ErrQuoteAlreadyResolved) {
			t.Fatalf("expected ErrQuoteAlreadyResolved, got %v", err)
		}
	})
}

func TestQuoteUseCase_Reject(t *testing.T) {
	t.Run("pending flips to rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().Load(gomock.Any()).Return([]entities.Quote{{ID: "001", Status: entities.QuoteStatusPending}}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		q, err := uc.Reject(context.Background(), "001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Status != entities.QuoteStatusRejected {
			t.Fatalf("expected rejected, got %s", q.Status)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().Load(gomock.Any()).Return([]entities.Quote{}, nil)

		if _, err := uc.Reject(context.Background(), "404"); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})
}

func TestParseVehicle(t *testing.T) {
	cases := []struct {
		in                  string
		plate, brand, model string
	}{
		{"Toyota Yaris AB123C", "AB123C", "Toyota", "Yaris"},
		{"Toyota Yaris ab123c", "AB123C", "Toyota", "Yaris"},
		{"Chevrolet Spark GT XYZW12", "XYZW12", "Chevrolet", "Spark GT"},
		{"Nissan V16 BB-CC-11", "BB-CC-11", "Nissan", "V16"},
		{"Ford Focus", NoPlate, "Ford", "Focus"},
		// A six-letter last token reads as a plate even without digits.
		{"Ford Fiesta", "FIESTA", "Ford", ""},
		{"Suzuki", NoPlate, "Suzuki", ""},
		{"", NoPlate, "Vehículo", ""},
	}
	for _, tc := range cases {
		plate, brand, model := ParseVehicle(tc.in)
		if plate != tc.plate || brand != tc.brand || model != tc.model {
			t.Fatalf("ParseVehicle(%q) = (%q, %q, %q), expected (%q, %q, %q)",
				tc.in, plate, brand, model, tc.plate, tc.brand, tc.model)
		}
	}
}

func TestNextQuoteID(t *testing.T) {
	t.Run("empty collection starts at 001", func(t *testing.T) {
		if got := nextQuoteID(nil); got != "001" {
			t.Fatalf("expected 001, got %q", got)
		}
	})

	t.Run("increments the numeric max", func(t *testing.T) {
		quotes := []entities.Quote{{ID: "004"}, {ID: "002"}, {ID: "abc"}}
		if got := nextQuoteID(quotes); got != "005" {
			t.Fatalf("expected 005, got %q", got)
		}
	})
}
