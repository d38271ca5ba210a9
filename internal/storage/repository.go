package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neexbeast/yearcal/internal/holiday"
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository archives fetched holiday years in PostgreSQL. It satisfies
// holiday.Cache and is used as the slowest tier.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// Get loads one archived year. A missing row is a miss, not an error.
func (r *Repository) Get(ctx context.Context, key holiday.Key) ([]holiday.PublicHoliday, bool, error) {
	const q = `
		SELECT holidays
		FROM public_holidays
		WHERE year = $1
		AND country_code = $2
	`

	var dataJSON []byte
	if err := r.q.QueryRow(ctx, q, key.Year, key.CountryCode).Scan(&dataJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("querying holidays for %s: %w", key, err)
	}

	var hs []holiday.PublicHoliday
	if err := json.Unmarshal(dataJSON, &hs); err != nil {
		return nil, false, fmt.Errorf("unmarshaling holidays for %s: %w", key, err)
	}

	return hs, true, nil
}

// Set inserts or replaces one archived year.
func (r *Repository) Set(ctx context.Context, key holiday.Key, hs []holiday.PublicHoliday) error {
	if hs == nil {
		hs = []holiday.PublicHoliday{}
	}
	dataJSON, err := json.Marshal(hs)
	if err != nil {
		return fmt.Errorf("marshaling holidays for %s: %w", key, err)
	}

	const q = `
		INSERT INTO public_holidays (year, country_code, holidays, fetched_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (year, country_code) DO UPDATE
		SET holidays   = EXCLUDED.holidays,
		    fetched_at = EXCLUDED.fetched_at
	`

	if _, err := r.q.Exec(ctx, q, key.Year, key.CountryCode, dataJSON); err != nil {
		return fmt.Errorf("upserting holidays for %s: %w", key, err)
	}

	return nil
}

// HolidaysOn returns every archived holiday falling on date (YYYY-MM-DD),
// across all countries. Uses the JSONB @> containment operator.
func (r *Repository) HolidaysOn(ctx context.Context, date string) ([]holiday.PublicHoliday, error) {
	filter, err := json.Marshal([]map[string]string{{"date": date}})
	if err != nil {
		return nil, fmt.Errorf("marshaling JSONB filter: %w", err)
	}

	const q = `
		SELECT country_code, holidays
		FROM public_holidays
		WHERE holidays @> $1::jsonb
		ORDER BY country_code
	`

	rows, err := r.q.Query(ctx, q, string(filter))
	if err != nil {
		return nil, fmt.Errorf("querying holidays on %s: %w", date, err)
	}
	defer rows.Close()

	var results []holiday.PublicHoliday
	for rows.Next() {
		var country string
		var dataJSON []byte
		if err := rows.Scan(&country, &dataJSON); err != nil {
			return nil, fmt.Errorf("scanning holiday row: %w", err)
		}

		var hs []holiday.PublicHoliday
		if err := json.Unmarshal(dataJSON, &hs); err != nil {
			return nil, fmt.Errorf("unmarshaling holidays for %s: %w", country, err)
		}
		for _, h := range hs {
			if h.Date == date {
				results = append(results, h)
			}
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holiday rows: %w", err)
	}

	return results, nil
}
