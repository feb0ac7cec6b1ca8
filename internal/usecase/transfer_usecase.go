package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"taller_manager/internal/adapter/flatfile"
	"taller_manager/internal/domain/entities"
	"taller_manager/internal/usecase/interfaces"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrEmptyImport       = errors.New("no importable rows")
)

// Collection names accepted by the transfer endpoints.
const (
	CollectionServices = "services"
	CollectionCosts    = "costs"
	CollectionQuotes   = "quotes"
)

// ITransferUseCase moves whole collections through the flat-text format.
// Export is a read-only render of the current snapshot; Import merges by id
// (replace when the id exists, prepend otherwise) and reports how many rows
// were taken.

type ITransferUseCase interface {
	Export(ctx context.Context, collection string) ([]byte, string, error)
	Import(ctx context.Context, collection string, data []byte) (int, error)
}

type TransferUseCase struct {
	serviceRepo interfaces.IServiceRepository
	costRepo    interfaces.ICostRepository
	quoteRepo   interfaces.IQuoteRepository
	mu          sync.Mutex
	now         func() time.Time
}

var _ ITransferUseCase = (*TransferUseCase)(nil)

func NewTransferUseCase(serviceRepo interfaces.IServiceRepository, costRepo interfaces.ICostRepository, quoteRepo interfaces.IQuoteRepository) *TransferUseCase {
	return &TransferUseCase{
		serviceRepo: serviceRepo,
		costRepo:    costRepo,
		quoteRepo:   quoteRepo,
		now:         time.Now,
	}
}

// Export renders a collection and returns the payload plus a dated filename.
func (u *TransferUseCase) Export(ctx context.Context, collection string) ([]byte, string, error) {
	day := u.now().UTC().Format("2006-01-02")
	switch collection {
	case CollectionServices:
		services, err := u.serviceRepo.Load(ctx)
		if err != nil {
			return nil, "", err
		}
		return flatfile.EncodeServices(services), "servicios_taller_" + day + ".csv", nil
	case CollectionCosts:
		costs, err := u.costRepo.Load(ctx)
		if err != nil {
			return nil, "", err
		}
		return flatfile.EncodeCosts(costs), "gastos_taller_" + day + ".csv", nil
	case CollectionQuotes:
		quotes, err := u.quoteRepo.Load(ctx)
		if err != nil {
			return nil, "", err
		}
		return flatfile.EncodeQuotes(quotes), "cotizaciones_taller_" + day + ".csv", nil
	}
	return nil, "", ErrUnknownCollection
}

func (u *TransferUseCase) Import(ctx context.Context, collection string, data []byte) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch collection {
	case CollectionServices:
		return u.importServices(ctx, data)
	case CollectionCosts:
		return u.importCosts(ctx, data)
	case CollectionQuotes:
		return u.importQuotes(ctx, data)
	}
	return 0, ErrUnknownCollection
}

func (u *TransferUseCase) importServices(ctx context.Context, data []byte) (int, error) {
	incoming := flatfile.DecodeServices(data, u.now())
	if len(incoming) == 0 {
		return 0, ErrEmptyImport
	}
	current, err := u.serviceRepo.Load(ctx)
	if err != nil {
		return 0, err
	}
	merged := mergeByID(current, incoming, func(s entities.Service) string { return s.ID })
	if err := u.serviceRepo.Save(ctx, merged); err != nil {
		return 0, err
	}
	log.Printf("[transfer][usecase] imported services count=%d", len(incoming))
	return len(incoming), nil
}

func (u *TransferUseCase) importCosts(ctx context.Context, data []byte) (int, error) {
	incoming := flatfile.DecodeCosts(data, u.now())
	if len(incoming) == 0 {
		return 0, ErrEmptyImport
	}
	current, err := u.costRepo.Load(ctx)
	if err != nil {
		return 0, err
	}
	merged := mergeByID(current, incoming, func(c entities.Cost) string { return c.ID })
	if err := u.costRepo.Save(ctx, merged); err != nil {
		return 0, err
	}
	log.Printf("[transfer][usecase] imported costs count=%d", len(incoming))
	return len(incoming), nil
}

func (u *TransferUseCase) importQuotes(ctx context.Context, data []byte) (int, error) {
	incoming := flatfile.DecodeQuotes(data, u.now())
	if len(incoming) == 0 {
		return 0, ErrEmptyImport
	}
	current, err := u.quoteRepo.Load(ctx)
	if err != nil {
		return 0, err
	}
	merged := mergeByID(current, incoming, func(q entities.Quote) string { return q.ID })
	if err := u.quoteRepo.Save(ctx, merged); err != nil {
		return 0, err
	}
	log.Printf("[transfer][usecase] imported quotes count=%d", len(incoming))
	return len(incoming), nil
}

// mergeByID replaces existing records in place and appends new ones in their
// incoming order, preserving the position of everything already stored.
func mergeByID[T any](current, incoming []T, id func(T) string) []T {
	index := make(map[string]int, len(current))
	out := make([]T, len(current))
	copy(out, current)
	for i, rec := range out {
		index[id(rec)] = i
	}
	for _, rec := range incoming {
		if i, ok := index[id(rec)]; ok {
			out[i] = rec
			continue
		}
		index[id(rec)] = len(out)
		out = append(out, rec)
	}
	return out
}
