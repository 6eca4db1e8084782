package output

import (
	"context"

	"areamsg/internal/domain/entities"
)

type RegionRepository interface {
	FindByName(ctx context.Context, name string) (*entities.Region, error)
	List(ctx context.Context) ([]entities.Region, error)
}
