package usecase

import (
	"context"
	"log"
	"strings"
	"sync"

	"taller_manager/internal/domain/entities"
	"taller_manager/internal/usecase/interfaces"
)

type ISettingsUseCase interface {
	Get(ctx context.Context) (entities.AppSettings, error)
	Update(ctx context.Context, s entities.AppSettings) (entities.AppSettings, error)
	Reset(ctx context.Context) (entities.AppSettings, error)
}

type SettingsUseCase struct {
	repo interfaces.ISettingsRepository
	mu   sync.Mutex
}

var _ ISettingsUseCase = (*SettingsUseCase)(nil)

func NewSettingsUseCase(repo interfaces.ISettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

func (u *SettingsUseCase) Get(ctx context.Context) (entities.AppSettings, error) {
	return u.repo.Load(ctx)
}

// Update persists the settings, backfilling blank fields from the defaults
// so a partial payload can never wipe the templates.
func (u *SettingsUseCase) Update(ctx context.Context, s entities.AppSettings) (entities.AppSettings, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	defaults := entities.DefaultSettings()
	if strings.TrimSpace(s.CompanyName) == "" {
		s.CompanyName = defaults.CompanyName
	}
	if strings.TrimSpace(s.WhatsappServiceTemplate) == "" {
		s.WhatsappServiceTemplate = defaults.WhatsappServiceTemplate
	}
	if strings.TrimSpace(s.WhatsappQuoteTemplate) == "" {
		s.WhatsappQuoteTemplate = defaults.WhatsappQuoteTemplate
	}
	if err := u.repo.Save(ctx, s); err != nil {
		log.Printf("[settings][usecase] save failed err=%v", err)
		return entities.AppSettings{}, err
	}
	log.Printf("[settings][usecase] saved company=%s", s.CompanyName)
	return s, nil
}

func (u *SettingsUseCase) Reset(ctx context.Context) (entities.AppSettings, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	defaults := entities.DefaultSettings()
	if err := u.repo.Save(ctx, defaults); err != nil {
		return entities.AppSettings{}, err
	}
	log.Printf("[settings][usecase] reset to defaults")
	return defaults, nil
}
