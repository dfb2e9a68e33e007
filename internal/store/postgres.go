package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/snipurl/snipurl/internal/shortlink"
)

// PostgresStore is a PostgreSQL implementation of shortlink.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the tables if they do not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS shortlinks (
			code         text PRIMARY KEY,
			original_url text NOT NULL,
			created_at   timestamptz NOT NULL,
			expires_at   timestamptz NOT NULL
		);

		CREATE TABLE IF NOT EXISTS clicks (
			id         bigserial PRIMARY KEY,
			code       text NOT NULL REFERENCES shortlinks (code),
			clicked_at timestamptz NOT NULL,
			referrer   text NOT NULL,
			geo        text NOT NULL
		);
	`

	_, err := p.pool.Exec(ctx, schema)

	return err
}

func (p *PostgresStore) Create(ctx context.Context, entry *shortlink.Entry) error {
	query := `
		INSERT INTO shortlinks (code, original_url, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query,
		entry.Code,
		entry.OriginalURL,
		entry.CreatedAt,
		entry.ExpiresAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortlink.ErrCodeInUse
	}

	return nil
}

func (p *PostgresStore) Get(ctx context.Context, code string) (*shortlink.Entry, error) {
	query := `
		SELECT code, original_url, created_at, expires_at
		FROM shortlinks
		WHERE code = $1
	`

	var entry shortlink.Entry

	err := p.pool.QueryRow(ctx, query, code).Scan(
		&entry.Code,
		&entry.OriginalURL,
		&entry.CreatedAt,
		&entry.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortlink.ErrNotFound
		}

		return nil, err
	}

	clicks, err := p.loadClicks(ctx, code)
	if err != nil {
		return nil, err
	}

	entry.Clicks = clicks

	return &entry, nil
}

func (p *PostgresStore) List(ctx context.Context) ([]*shortlink.Entry, error) {
	query := `
		SELECT code, original_url, created_at, expires_at
		FROM shortlinks
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*shortlink.Entry

	byCode := make(map[string]*shortlink.Entry)

	for rows.Next() {
		var entry shortlink.Entry

		err := rows.Scan(&entry.Code, &entry.OriginalURL, &entry.CreatedAt, &entry.ExpiresAt)
		if err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
		byCode[entry.Code] = &entry
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	clickRows, err := p.pool.Query(ctx, `
		SELECT code, clicked_at, referrer, geo
		FROM clicks
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer clickRows.Close()

	for clickRows.Next() {
		var (
			code  string
			click shortlink.Click
		)

		err := clickRows.Scan(&code, &click.Timestamp, &click.Referrer, &click.Geo)
		if err != nil {
			return nil, err
		}

		if entry, ok := byCode[code]; ok {
			entry.Clicks = append(entry.Clicks, click)
		}
	}

	if err := clickRows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (p *PostgresStore) AppendClick(ctx context.Context, code string, click shortlink.Click) error {
	// The guarded insert makes missing-code detection and the append a
	// single statement.
	query := `
		INSERT INTO clicks (code, clicked_at, referrer, geo)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (SELECT 1 FROM shortlinks WHERE code = $1)
	`

	tag, err := p.pool.Exec(ctx, query, code, click.Timestamp, click.Referrer, click.Geo)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortlink.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) loadClicks(ctx context.Context, code string) ([]shortlink.Click, error) {
	query := `
		SELECT clicked_at, referrer, geo
		FROM clicks
		WHERE code = $1
		ORDER BY id
	`

	rows, err := p.pool.Query(ctx, query, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clicks []shortlink.Click

	for rows.Next() {
		var click shortlink.Click

		if err := rows.Scan(&click.Timestamp, &click.Referrer, &click.Geo); err != nil {
			return nil, err
		}

		clicks = append(clicks, click)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clicks, nil
}
