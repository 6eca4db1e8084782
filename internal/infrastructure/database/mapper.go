package database

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"areamsg/internal/domain/entities"
)

const regionColumns = `name, type, world, owner, price, duration_seconds, rented_until, created_at, updated_at`

type regionRow struct {
	Name            string
	Type            string
	World           string
	Owner           string
	Price           float64
	DurationSeconds int64
	RentedUntil     pgtype.Timestamptz
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

// scanRegion reads one row selected with regionColumns. pgx.Rows satisfies pgx.Row.
func scanRegion(row pgx.Row) (regionRow, error) {
	var r regionRow
	err := row.Scan(
		&r.Name,
		&r.Type,
		&r.World,
		&r.Owner,
		&r.Price,
		&r.DurationSeconds,
		&r.RentedUntil,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func regionToDomain(r regionRow) entities.Region {
	return entities.Region{
		Name:        r.Name,
		Type:        r.Type,
		World:       r.World,
		Owner:       r.Owner,
		Price:       r.Price,
		Duration:    time.Duration(r.DurationSeconds) * time.Second,
		RentedUntil: pgtypeTimestamptzToTime(r.RentedUntil),
		CreatedAt:   pgtypeTimestamptzToTime(r.CreatedAt),
		UpdatedAt:   pgtypeTimestamptzToTime(r.UpdatedAt),
	}
}
