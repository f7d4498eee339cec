// Package postgres implements the DocumentStore on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusdocs/webharvester/internal/crawler"
)

// uniqueViolation is the Postgres error code for a unique constraint
// breach.
const uniqueViolation = "23505"

// Querier is the subset of pgxpool.Pool the store needs; it lets tests
// substitute a pgxmock pool.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DocumentStore persists documents in a 'documents' table. Expected
// schema:
//
//	CREATE TABLE documents (
//	    url          TEXT PRIMARY KEY,
//	    title        TEXT,
//	    content      TEXT NOT NULL,
//	    file_type    TEXT NOT NULL,
//	    crawled_at   TIMESTAMPTZ NOT NULL,
//	    content_hash TEXT NOT NULL,
//	    status       TEXT NOT NULL,
//	    parent_url   TEXT,
//	    depth        INT NOT NULL
//	);
type DocumentStore struct {
	db Querier
}

// New connects a pool and pings it to ensure the store is reachable.
func New(ctx context.Context, dsn string) (*DocumentStore, func(), error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &DocumentStore{db: pool}, pool.Close, nil
}

// NewWithQuerier wraps an existing pool or mock.
func NewWithQuerier(db Querier) *DocumentStore {
	return &DocumentStore{db: db}
}

// Exists reports whether a document for url has been persisted. A
// failing probe means admission cannot be decided, so errors surface
// as store-unavailable.
func (s *DocumentStore) Exists(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE url = $1)`, url,
	).Scan(&exists)
	if err != nil {
		return false, &crawler.StoreUnavailableError{Err: err}
	}
	return exists, nil
}

// Save inserts the document. A unique violation on url maps to
// ErrDuplicateURL; other server-reported errors pass through as
// per-document failures; connection-level errors mean the store is
// unreachable.
func (s *DocumentStore) Save(ctx context.Context, doc crawler.Document) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO documents
		    (url, title, content, file_type, crawled_at, content_hash, status, parent_url, depth)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		doc.URL,
		doc.Title,
		doc.Content,
		string(doc.FileType),
		doc.CrawledAt,
		doc.ContentHash,
		string(doc.Status),
		doc.ParentURL,
		doc.Depth,
	)
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolation {
			return fmt.Errorf("url %s: %w", doc.URL, crawler.ErrDuplicateURL)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return &crawler.StoreUnavailableError{Err: err}
}
