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
	ErrServiceNotFound          = errors.New("service not found")
	ErrInvalidServiceID         = errors.New("invalid service id")
	ErrInvalidPlate             = errors.New("invalid plate")
	ErrInvalidServiceStatus     = errors.New("invalid service status")
	ErrCompletionDateRequired   = errors.New("completion requires an explicit date")
	ErrServiceAlreadyCompleted  = errors.New("service already completed")
	ErrServiceCollectionMissing = errors.New("service repository not configured")
)

// IServiceUseCase exposes work-order operations.
//
// Mutations rewrite the full snapshot: there is exactly one writer per
// collection, so Save is a last-write-wins overwrite (no merge).

type IServiceUseCase interface {
	List(ctx context.Context) ([]entities.Service, error)
	ListFiltered(ctx context.Context, search, statusFilter string) ([]entities.Service, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
	Save(ctx context.Context, s entities.Service) (entities.Service, error)
	UpdateStatus(ctx context.Context, id string, status entities.ServiceStatus) (entities.Service, error)
	Complete(ctx context.Context, id, completionDate string) (entities.Service, error)
	Delete(ctx context.Context, id string) error
}

type ServiceUseCase struct {
	repo interfaces.IServiceRepository
	mu   sync.Mutex
	now  func() time.Time
}

var _ IServiceUseCase = (*ServiceUseCase)(nil)

func NewServiceUseCase(repo interfaces.IServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, now: time.Now}
}

func (u *ServiceUseCase) List(ctx context.Context) ([]entities.Service, error) {
	if u.repo == nil {
		return nil, ErrServiceCollectionMissing
	}
	services, err := u.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	sortServicesByEntryDesc(services)
	return services, nil
}

// ListFiltered narrows the collection the way the services screen does:
// an empty statusFilter selects the active queue (pending + in-progress),
// "all" selects everything, any other value selects that exact status.
// search matches client name, plate or brand, case-insensitively.
func (u *ServiceUseCase) ListFiltered(ctx context.Context, search, statusFilter string) ([]entities.Service, error) {
	services, err := u.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]entities.Service, 0, len(services))
	for _, s := range services {
		if needle != "" &&
			!strings.Contains(strings.ToLower(s.ClientName), needle) &&
			!strings.Contains(strings.ToLower(s.Plate), needle) &&
			!strings.Contains(strings.ToLower(s.Brand), needle) {
			continue
		}
		switch statusFilter {
		case "":
			if s.Status != entities.ServiceStatusPending && s.Status != entities.ServiceStatusInProgress {
				continue
			}
		case "all":
		default:
			if string(s.Status) != statusFilter {
				continue
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func (u *ServiceUseCase) GetByID(ctx context.Context, id string) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidServiceID
	}
	services, err := u.repo.Load(ctx)
	if err != nil {
		return entities.Service{}, err
	}
	for _, s := range services {
		if s.ID == id {
			return s, nil
		}
	}
	return entities.Service{}, ErrServiceNotFound
}

// Save upserts a service, normalizing the dual payment shape on the way in:
// the legacy Advance scalar and the advance-typed entry in Payments must
// describe the same money. Any previous advance entry is dropped and a fresh
// one is appended when Advance > 0, dated at the entry date. The legacy Price
// field mirrors the labor total so old snapshots read by other consumers keep
// adding up.
func (u *ServiceUseCase) Save(ctx context.Context, s entities.Service) (entities.Service, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	s.Plate = strings.ToUpper(strings.TrimSpace(s.Plate))
	if s.Plate == "" {
		return entities.Service{}, ErrInvalidPlate
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.EntryDate == "" {
		s.EntryDate = u.now().UTC().Format(time.RFC3339)
	}
	if s.Status == "" {
		s.Status = entities.ServiceStatusPending
	}
	if !validServiceStatus(s.Status) {
		return entities.Service{}, ErrInvalidServiceStatus
	}

	if len(s.LaborItems) > 0 {
		var labor int64
		for _, it := range s.LaborItems {
			labor += it.Amount
		}
		s.Price = labor
	}
	if s.Advance < 0 {
		s.Advance = 0
	}

	kept := make([]entities.PaymentEvent, 0, len(s.Payments))
	for _, p := range s.Payments {
		if p.Type != entities.PaymentTypeAdvance {
			kept = append(kept, p)
		}
	}
	s.Payments = kept
	if s.Advance > 0 {
		s.Payments = append(s.Payments, entities.PaymentEvent{
			ID:          uuid.NewString(),
			Amount:      s.Advance,
			Date:        s.EntryDate,
			Type:        entities.PaymentTypeAdvance,
			Description: "Adelanto de Patente " + s.Plate,
		})
	}

	services, err := u.repo.Load(ctx)
	if err != nil {
		return entities.Service{}, err
	}
	replaced := false
	for i := range services {
		if services[i].ID == s.ID {
			services[i] = s
			replaced = true
			break
		}
	}
	if !replaced {
		services = append([]entities.Service{s}, services...)
	}
	if err := u.repo.Save(ctx, services); err != nil {
		log.Printf("[service][usecase] save failed id=%s err=%v", s.ID, err)
		return entities.Service{}, err
	}
	log.Printf("[service][usecase] saved id=%s plate=%s status=%s total=%d", s.ID, s.Plate, s.Status, s.Total())
	return s, nil
}

// UpdateStatus handles every transition except into completed, which needs
// an explicit completion date so the final payment can be dated correctly.
func (u *ServiceUseCase) UpdateStatus(ctx context.Context, id string, status entities.ServiceStatus) (entities.Service, error) {
	if status == entities.ServiceStatusCompleted {
		return entities.Service{}, ErrCompletionDateRequired
	}
	if !validServiceStatus(status) {
		return entities.Service{}, ErrInvalidServiceStatus
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	return u.mutate(ctx, id, func(s *entities.Service) error {
		s.Status = status
		return nil
	})
}

// Complete marks the service completed and materializes the outstanding
// balance as a concrete final PaymentEvent dated at completionDate. From then
// on reporting reads the recorded payment list instead of re-deriving legacy
// math. A remainder of zero or less records no payment.
func (u *ServiceUseCase) Complete(ctx context.Context, id, completionDate string) (entities.Service, error) {
	completionDate = strings.TrimSpace(completionDate)
	if completionDate == "" {
		return entities.Service{}, ErrCompletionDateRequired
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	return u.mutate(ctx, id, func(s *entities.Service) error {
		if s.Status == entities.ServiceStatusCompleted {
			return ErrServiceAlreadyCompleted
		}
		remainder := s.Total() - s.AdvancePaid()
		if remainder > 0 {
			s.Payments = append(s.Payments, entities.PaymentEvent{
				ID:          uuid.NewString(),
				Amount:      remainder,
				Date:        completionDate,
				Type:        entities.PaymentTypeFinal,
				Description: "Saldo Final Patente " + strings.ToUpper(s.Plate),
			})
		}
		s.Status = entities.ServiceStatusCompleted
		return nil
	})
}

func (u *ServiceUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidServiceID
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	services, err := u.repo.Load(ctx)
	if err != nil {
		return err
	}
	kept := services[:0]
	for _, s := range services {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(services) {
		return ErrServiceNotFound
	}
	if err := u.repo.Save(ctx, kept); err != nil {
		return err
	}
	log.Printf("[service][usecase] deleted id=%s", id)
	return nil
}

func (u *ServiceUseCase) mutate(ctx context.Context, id string, apply func(*entities.Service) error) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidServiceID
	}
	services, err := u.repo.Load(ctx)
	if err != nil {
		return entities.Service{}, err
	}
	for i := range services {
		if services[i].ID != id {
			continue
		}
		if err := apply(&services[i]); err != nil {
			return entities.Service{}, err
		}
		if err := u.repo.Save(ctx, services); err != nil {
			log.Printf("[service][usecase] mutate save failed id=%s err=%v", id, err)
			return entities.Service{}, err
		}
		log.Printf("[service][usecase] mutated id=%s status=%s", id, services[i].Status)
		return services[i], nil
	}
	return entities.Service{}, ErrServiceNotFound
}

func validServiceStatus(s entities.ServiceStatus) bool {
	switch s {
	case entities.ServiceStatusPending, entities.ServiceStatusInProgress,
		entities.ServiceStatusCompleted, entities.ServiceStatusCancelled:
		return true
	}
	return false
}

func sortServicesByEntryDesc(services []entities.Service) {
	sort.SliceStable(services, func(i, j int) bool {
		ti, _ := entities.ParseRecordDate(services[i].EntryDate)
		tj, _ := entities.ParseRecordDate(services[j].EntryDate)
		return ti.After(tj)
	})
}
