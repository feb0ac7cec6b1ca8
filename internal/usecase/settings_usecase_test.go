package usecase

import (
	"context"
	"testing"

	"taller_manager/internal/domain/entities"
	mock_interfaces "taller_manager/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestSettingsUseCase_Update(t *testing.T) {
	t.Run("blank fields backfill from defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISettingsRepository(ctrl)
		uc := NewSettingsUseCase(repo)

		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		got, err := uc.Update(context.Background(), entities.AppSettings{
			CompanyPhone: "+56911112222",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defaults := entities.DefaultSettings()
		if got.CompanyName != defaults.CompanyName {
			t.Fatalf("expected default company name, got %q", got.CompanyName)
		}
		if got.WhatsappServiceTemplate != defaults.WhatsappServiceTemplate {
			t.Fatal("expected default service template")
		}
		if got.WhatsappQuoteTemplate != defaults.WhatsappQuoteTemplate {
			t.Fatal("expected default quote template")
		}
		if got.CompanyPhone != "+56911112222" {
			t.Fatalf("provided fields must survive, got %q", got.CompanyPhone)
		}
	})

	t.Run("explicit values persist untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISettingsRepository(ctrl)
		uc := NewSettingsUseCase(repo)

		in := entities.AppSettings{
			CompanyName:             "Taller Los Andes",
			WhatsappServiceTemplate: "Hola {cliente}",
			WhatsappQuoteTemplate:   "Cotización {id}",
		}
		repo.EXPECT().Save(gomock.Any(), in).Return(nil)

		got, err := uc.Update(context.Background(), in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != in {
			t.Fatalf("unexpected settings: %+v", got)
		}
	})
}

func TestSettingsUseCase_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockISettingsRepository(ctrl)
	uc := NewSettingsUseCase(repo)

	repo.EXPECT().Save(gomock.Any(), entities.DefaultSettings()).Return(nil)

	got, err := uc.Reset(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != entities.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}
