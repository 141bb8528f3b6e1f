package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/ukfit/eventscrape/internal/model"
)

// Postgres implements EventStore over a PostgreSQL events table.
type Postgres struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgres creates the postgres-backed store.
func NewPostgres(db *sql.DB, logger *slog.Logger) *Postgres {
	if logger == nil {
		logger = slog.Default()
	}
	return &Postgres{db: db, logger: logger}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// FindExisting checks for an already-ingested event. URL first: an
// exact match against the stored source URL, then a content-text
// fallback for sites that only embed the URL in the description. Name
// plus exact calendar date is the last resort.
func (s *Postgres) FindExisting(ctx context.Context, url, name, date string) (string, error) {
	if url != "" {
		id, err := s.queryID(ctx, `
			SELECT id FROM events
			WHERE source_url = $1 AND status = 'published' AND deleted_at IS NULL
			LIMIT 1`, url)
		if err != nil {
			return "", err
		}
		if id != "" {
			return id, nil
		}

		id, err = s.queryID(ctx, `
			SELECT id FROM events
			WHERE full_description LIKE '%' || $1 || '%'
			  AND status = 'published' AND deleted_at IS NULL
			LIMIT 1`, url)
		if err != nil {
			return "", err
		}
		if id != "" {
			return id, nil
		}
	}

	if name != "" && date != "" {
		id, err := s.queryID(ctx, `
			SELECT id FROM events
			WHERE name = $1 AND event_date = $2
			  AND status = 'published' AND deleted_at IS NULL
			LIMIT 1`, name, date)
		if err != nil {
			return "", err
		}
		if id != "" {
			return id, nil
		}
	}

	return "", nil
}

// Insert persists the event. The (category, subcategory) pair is
// mapped to a taxonomy term id here; when no matching term exists the
// event is inserted without a category relationship rather than
// failing.
func (s *Postgres) Insert(ctx context.Context, ev *model.NormalizedEvent) (string, error) {
	termID, err := s.lookupTerm(ctx, ev.Category, ev.Subcategory)
	if err != nil {
		return "", err
	}
	if !termID.Valid {
		s.logger.Warn("no taxonomy term for category, inserting without relationship",
			"category", ev.Category, "subcategory", ev.Subcategory)
	}

	id := uuid.NewString()

	var lat, lon sql.NullFloat64
	if ev.Coordinates != nil {
		lat = sql.NullFloat64{Float64: ev.Coordinates.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: ev.Coordinates.Lon, Valid: true}
	}
	var date sql.NullString
	if ev.Date != "" {
		date = sql.NullString{String: ev.Date, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO events (
			id, name, event_date, raw_date, short_description, full_description,
			address, lat, lon, term_id, source_url, site_id, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'published')`,
		id, ev.Name, date, ev.RawDate, ev.ShortDescription, ev.FullDescription,
		ev.Address, lat, lon, termID, ev.SourceURL, ev.SiteID)
	if err != nil {
		return "", fmt.Errorf("%w: insert event: %v", ErrUnavailable, err)
	}

	return id, nil
}

func (s *Postgres) queryID(ctx context.Context, query string, args ...any) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: query events: %v", ErrUnavailable, err)
	}
	return id, nil
}

func (s *Postgres) lookupTerm(ctx context.Context, category, subcategory string) (sql.NullString, error) {
	var termID sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM taxonomy_terms
		WHERE category = $1 AND subcategory = $2
		LIMIT 1`, category, subcategory).Scan(&termID.String)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.NullString{}, nil
	}
	if err != nil {
		return sql.NullString{}, fmt.Errorf("%w: query taxonomy terms: %v", ErrUnavailable, err)
	}
	termID.Valid = true
	return termID, nil
}
