package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

var _ user.Repository = (*PostgresStore)(nil)

const documentsTable = "public.documents"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps the record document as a JSONB row in the documents table.
type PostgresStore struct {
	mu   sync.Mutex
	pool *pgxpool.Pool
	key  string
}

// NewPostgresStore creates a PostgresStore for the document named key.
func NewPostgresStore(pool *pgxpool.Pool, key string) *PostgresStore {
	if key == "" {
		key = DefaultDocumentKey
	}
	return &PostgresStore{pool: pool, key: key}
}

// EnsureSchema creates the documents table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS public.documents (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := s.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("create documents table failed: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]user.Record, error) {
	return s.load(ctx, s.pool, false)
}

func (s *PostgresStore) Save(ctx context.Context, records []user.Record) error {
	return s.save(ctx, s.pool, records)
}

// Update locks the document row for the duration of fn, so concurrent updates
// from other processes sharing the database wait instead of interleaving.
func (s *PostgresStore) Update(ctx context.Context, fn func(records []user.Record) ([]user.Record, error)) ([]user.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin document transaction failed: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := s.seed(ctx, tx); err != nil {
		return nil, err
	}

	records, err := s.load(ctx, tx, true)
	if err != nil {
		return nil, err
	}

	out, err := fn(records)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, tx, out); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit document transaction failed: %w", err)
	}
	return user.CloneAll(out), nil
}

// seed inserts an empty document so that SELECT ... FOR UPDATE always has a row to lock.
func (s *PostgresStore) seed(ctx context.Context, q querier) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert(documentsTable).
		Columns("key", "value").
		Values(s.key, "[]").
		Suffix("ON CONFLICT (key) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build seed document query failed: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("seed document failed: %w", err)
	}
	return nil
}

func (s *PostgresStore) load(ctx context.Context, q querier, forUpdate bool) ([]user.Record, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select("value").
		From(documentsTable).
		Where(squirrel.Eq{"key": s.key})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load document query failed: %w", err)
	}

	var raw []byte
	if err := q.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []user.Record{}, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
			return []user.Record{}, nil
		}
		return nil, fmt.Errorf("load document failed: %w", err)
	}

	return decodeRecords(raw)
}

func (s *PostgresStore) save(ctx context.Context, q querier, records []user.Record) error {
	raw, err := encodeRecords(records)
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert(documentsTable).
		Columns("key", "value", "updated_at").
		Values(s.key, string(raw), squirrel.Expr("now()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build save document query failed: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save document failed: %w", err)
	}
	return nil
}
