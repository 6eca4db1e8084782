package input

import (
	"context"
	"time"

	"areamsg/internal/domain/entities"
)

type RegionUseCase interface {
	Describe(ctx context.Context, name string) (*entities.Message, error)
	Announce(ctx context.Context, name string) (*entities.Message, error)
	ListAll(ctx context.Context) (*entities.Message, error)
	// Expired returns one announcement per rent that ended in (since, now].
	Expired(ctx context.Context, since, now time.Time) ([]*entities.Message, error)
}
