// Package postgres is a PostgreSQL profile store built on pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/abhisek/literacyhub/internal/ledger"
	"github.com/abhisek/literacyhub/internal/store"
)

const dbTimeout = 5 * time.Second

// Store is a store.Backend backed by a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ store.Backend = (*Store)(nil)

// ParseURL validates a PostgreSQL connection URL.
func ParseURL(url string) (*pgxpool.Config, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is empty")
	}
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	return cfg, nil
}

// New connects to url, verifies the connection and migrates the schema.
func New(ctx context.Context, url string, maxConns, minConns int) (*Store, error) {
	cfg, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MinConns = int32(minConns)
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// migrate runs the shared ent schema through a database/sql view of the
// pool. Closing that view leaves the pool open.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := store.Migrate(ctx, entsql.OpenDB(dialect.Postgres, db)); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Close shuts down the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// LoadProfile implements store.ProfileStore.
func (s *Store) LoadProfile(ctx context.Context, learnerID string) (*ledger.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var (
		p    ledger.Profile
		last *string
	)
	stmt := store.ProfileQuery(dialect.Postgres, learnerID)
	err := s.pool.QueryRow(ctx, stmt.Query, stmt.Args...).Scan(&p.StreakCount, &p.TotalPoints, &last)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, store.Failure("load profile", err)
	}
	if last != nil {
		d := store.ParseDay(*last)
		p.LastLessonDate = &d
	}

	stmt = store.CompletionsQuery(dialect.Postgres, learnerID)
	rows, err := s.pool.Query(ctx, stmt.Query, stmt.Args...)
	if err != nil {
		return nil, store.Failure("load completions", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r   ledger.CompletionRecord
			day string
		)
		if err := rows.Scan(&r.TopicID, &day, &r.Score); err != nil {
			return nil, store.Failure("scan completion", err)
		}
		r.Date = store.ParseDay(day)
		p.CompletedLessons = append(p.CompletedLessons, r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Failure("load completions", err)
	}

	p = ledger.Sanitize(p)
	return &p, nil
}

// UpdateProfile implements store.ProfileStore.
func (s *Store) UpdateProfile(ctx context.Context, learnerID string, p ledger.Profile) error {
	stmts := store.WriteProfileStatements(dialect.Postgres, learnerID, p, time.Now().UTC())
	if err := s.execTx(ctx, stmts); err != nil {
		return store.Failure("update profile", err)
	}
	return nil
}

// DeleteProfile implements store.Backend.
func (s *Store) DeleteProfile(ctx context.Context, learnerID string) error {
	if err := s.execTx(ctx, store.DeleteProfileStatements(dialect.Postgres, learnerID)); err != nil {
		return store.Failure("delete profile", err)
	}
	return nil
}

func (s *Store) execTx(ctx context.Context, stmts []store.Statement) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, st := range stmts {
			if _, err := tx.Exec(ctx, st.Query, st.Args...); err != nil {
				return err
			}
		}
		return nil
	})
}
