package interfaces

import (
	"context"

	"taller_manager/internal/domain/entities"
)

// Snapshot stores: each collection is loaded and saved whole, as an opaque
// blob keyed by its name. There is no partial or incremental persistence;
// every mutation rewrites the full collection (single writer, last write
// wins). Load on a never-saved collection returns an empty slice, not an
// error.

//go:generate mockgen -source=snapshot_repository_interfaces.go -destination=mocks/snapshot_repository_mocks.go -package=mocks

type IServiceRepository interface {
	Load(ctx context.Context) ([]entities.Service, error)
	Save(ctx context.Context, services []entities.Service) error
}

type ICostRepository interface {
	Load(ctx context.Context) ([]entities.Cost, error)
	Save(ctx context.Context, costs []entities.Cost) error
}

type IQuoteRepository interface {
	Load(ctx context.Context) ([]entities.Quote, error)
	Save(ctx context.Context, quotes []entities.Quote) error
}

type ISettingsRepository interface {
	Load(ctx context.Context) (entities.AppSettings, error)
	Save(ctx context.Context, settings entities.AppSettings) error
}
