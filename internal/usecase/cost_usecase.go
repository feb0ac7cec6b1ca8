package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"taller_manager/internal/domain/entities"
	"taller_manager/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrCostNotFound      = errors.New("cost not found")
	ErrInvalidCostID     = errors.New("invalid cost id")
	ErrInvalidCostAmount = errors.New("invalid cost amount")
)

type ICostUseCase interface {
	List(ctx context.Context) ([]entities.Cost, error)
	Save(ctx context.Context, c entities.Cost) (entities.Cost, error)
	Delete(ctx context.Context, id string) error
}

type CostUseCase struct {
	repo interfaces.ICostRepository
	mu   sync.Mutex
	now  func() time.Time
}

var _ ICostUseCase = (*CostUseCase)(nil)

func NewCostUseCase(repo interfaces.ICostRepository) *CostUseCase {
	return &CostUseCase{repo: repo, now: time.Now}
}

func (u *CostUseCase) List(ctx context.Context) ([]entities.Cost, error) {
	costs, err := u.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(costs, func(i, j int) bool {
		ti, _ := entities.ParseRecordDate(costs[i].Date)
		tj, _ := entities.ParseRecordDate(costs[j].Date)
		return ti.After(tj)
	})
	return costs, nil
}

func (u *CostUseCase) Save(ctx context.Context, c entities.Cost) (entities.Cost, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if c.Amount <= 0 {
		return entities.Cost{}, ErrInvalidCostAmount
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Date == "" {
		c.Date = u.now().UTC().Format(time.RFC3339)
	}
	if c.Category == "" {
		c.Category = entities.CostCategoryOther
	}

	costs, err := u.repo.Load(ctx)
	if err != nil {
		return entities.Cost{}, err
	}
	replaced := false
	for i := range costs {
		if costs[i].ID == c.ID {
			costs[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		costs = append([]entities.Cost{c}, costs...)
	}
	if err := u.repo.Save(ctx, costs); err != nil {
		log.Printf("[cost][usecase] save failed id=%s err=%v", c.ID, err)
		return entities.Cost{}, err
	}
	log.Printf("[cost][usecase] saved id=%s amount=%d category=%s", c.ID, c.Amount, c.Category)
	return c, nil
}

func (u *CostUseCase) Delete(ctx context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidCostID
	}
	costs, err := u.repo.Load(ctx)
	if err != nil {
		return err
	}
	kept := costs[:0]
	for _, c := range costs {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(costs) {
		return ErrCostNotFound
	}
	if err := u.repo.Save(ctx, kept); err != nil {
		return err
	}
	log.Printf("[cost][usecase] deleted id=%s", id)
	return nil
}
