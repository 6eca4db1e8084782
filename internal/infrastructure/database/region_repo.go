package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"areamsg/internal/domain"
	"areamsg/internal/domain/entities"
	"areamsg/internal/ports/output"
)

var _ output.RegionRepository = (*RegionRepository)(nil)

// Querier is the subset of *pgxpool.Pool used by the repositories.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// RegionRepository implements output.RegionRepository with pgx.
type RegionRepository struct {
	q Querier
}

// NewRegionRepository creates a RegionRepository.
func NewRegionRepository(q Querier) *RegionRepository {
	return &RegionRepository{q: q}
}

func (r *RegionRepository) FindByName(ctx context.Context, name string) (*entities.Region, error) {
	row, err := scanRegion(r.q.QueryRow(ctx,
		`SELECT `+regionColumns+` FROM regions WHERE lower(name) = lower($1)`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRegionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get region by name: %w", err)
	}
	region := regionToDomain(row)
	return &region, nil
}

func (r *RegionRepository) List(ctx context.Context) ([]entities.Region, error) {
	rows, err := r.q.Query(ctx, `SELECT `+regionColumns+` FROM regions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()

	var out []entities.Region
	for rows.Next() {
		row, err := scanRegion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		out = append(out, regionToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	return out, nil
}
