package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ContentCollections are the content tables the admin console manages. The
// status aggregator counts rows across all of them.
var ContentCollections = []string{
	"bookings",
	"events",
	"resources",
	"services",
	"team_members",
	"gallery_items",
}

type ContentStatsRepository interface {
	Ping(ctx context.Context) error
	CountDocuments(ctx context.Context) (map[string]int64, error)
	LatestUpdate(ctx context.Context) (time.Time, error)
}

type contentStatsRepository struct {
	pool *pgxpool.Pool
}

func NewContentStatsRepository(pool *pgxpool.Pool) ContentStatsRepository {
	return &contentStatsRepository{pool: pool}
}

func (r *contentStatsRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.pool.Ping(ctx)
}

// CountDocuments returns per-collection row counts. Table names come from the
// fixed ContentCollections list, never from input.
func (r *contentStatsRepository) CountDocuments(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	counts := make(map[string]int64, len(ContentCollections))
	for _, table := range ContentCollections {
		var count int64
		if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM `+table).Scan(&count); err != nil {
			return nil, err
		}
		counts[table] = count
	}
	return counts, nil
}

// LatestUpdate finds the most recent updated_at across all content tables.
func (r *contentStatsRepository) LatestUpdate(ctx context.Context) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var latest time.Time
	for _, table := range ContentCollections {
		var ts *time.Time
		if err := r.pool.QueryRow(ctx, `SELECT max(updated_at) FROM `+table).Scan(&ts); err != nil {
			return time.Time{}, err
		}
		if ts != nil && ts.After(latest) {
			latest = *ts
		}
	}
	return latest, nil
}
