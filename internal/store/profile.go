package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/literacyhub/internal/ledger"
)

// Statement is one SQL statement and its arguments, rendered for a dialect.
type Statement struct {
	Query string
	Args  []any
}

// ProfileQuery selects streak_count, total_points and last_lesson_date for
// a learner.
func ProfileQuery(dialectName, learnerID string) Statement {
	b := entsql.Dialect(dialectName)
	q, args := b.Select("streak_count", "total_points", "last_lesson_date").
		From(b.Table(tableProfiles)).
		Where(entsql.EQ("learner_id", learnerID)).
		Query()
	return Statement{q, args}
}

// CompletionsQuery selects topic_id, day and score for a learner, oldest first.
func CompletionsQuery(dialectName, learnerID string) Statement {
	b := entsql.Dialect(dialectName)
	q, args := b.Select("topic_id", "day", "score").
		From(b.Table(tableCompletions)).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderBy("day", "id").
		Query()
	return Statement{q, args}
}

// WriteProfileStatements upserts the profile row and replaces all of its
// completion records. Run them in order inside one transaction.
func WriteProfileStatements(dialectName, learnerID string, p ledger.Profile, now time.Time) []Statement {
	b := entsql.Dialect(dialectName)

	var last any
	if p.LastLessonDate != nil {
		last = p.LastLessonDate.String()
	}

	var stmts []Statement
	q, args := b.Insert(tableProfiles).
		Columns("learner_id", "streak_count", "total_points", "last_lesson_date", "updated_at").
		Values(learnerID, p.StreakCount, p.TotalPoints, last, now).
		OnConflict(
			entsql.ConflictColumns("learner_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	stmts = append(stmts, Statement{q, args})

	q, args = b.Delete(tableCompletions).Where(entsql.EQ("learner_id", learnerID)).Query()
	stmts = append(stmts, Statement{q, args})

	if len(p.CompletedLessons) > 0 {
		ins := b.Insert(tableCompletions).Columns("learner_id", "topic_id", "day", "score")
		for _, r := range p.CompletedLessons {
			ins.Values(learnerID, r.TopicID, r.Date.String(), r.Score)
		}
		q, args = ins.Query()
		stmts = append(stmts, Statement{q, args})
	}
	return stmts
}

// DeleteProfileStatements remove a learner's records and profile row.
func DeleteProfileStatements(dialectName, learnerID string) []Statement {
	b := entsql.Dialect(dialectName)
	var stmts []Statement
	for _, table := range []string{tableCompletions, tableProfiles} {
		q, args := b.Delete(table).Where(entsql.EQ("learner_id", learnerID)).Query()
		stmts = append(stmts, Statement{q, args})
	}
	return stmts
}

// ParseDay parses a stored calendar day. Invalid values yield the zero
// date, which ledger.Sanitize discards.
func ParseDay(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}
	}
	return d
}

// LoadProfile implements ProfileStore.
func (s *Store) LoadProfile(ctx context.Context, learnerID string) (*ledger.Profile, error) {
	var (
		p    ledger.Profile
		last sql.NullString
	)
	stmt := ProfileQuery(dialect.SQLite, learnerID)
	err := s.db.QueryRowContext(ctx, stmt.Query, stmt.Args...).Scan(&p.StreakCount, &p.TotalPoints, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, Failure("load profile", err)
	}
	if last.Valid {
		d := ParseDay(last.String)
		p.LastLessonDate = &d
	}

	stmt = CompletionsQuery(dialect.SQLite, learnerID)
	rows, err := s.db.QueryContext(ctx, stmt.Query, stmt.Args...)
	if err != nil {
		return nil, Failure("load completions", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r   ledger.CompletionRecord
			day string
		)
		if err := rows.Scan(&r.TopicID, &day, &r.Score); err != nil {
			return nil, Failure("scan completion", err)
		}
		r.Date = ParseDay(day)
		p.CompletedLessons = append(p.CompletedLessons, r)
	}
	if err := rows.Err(); err != nil {
		return nil, Failure("load completions", err)
	}

	p = ledger.Sanitize(p)
	return &p, nil
}

// UpdateProfile implements ProfileStore.
func (s *Store) UpdateProfile(ctx context.Context, learnerID string, p ledger.Profile) error {
	stmts := WriteProfileStatements(dialect.SQLite, learnerID, p, time.Now().UTC())
	if err := s.execTx(ctx, stmts); err != nil {
		return Failure("update profile", err)
	}
	return nil
}

// DeleteProfile implements Backend.
func (s *Store) DeleteProfile(ctx context.Context, learnerID string) error {
	if err := s.execTx(ctx, DeleteProfileStatements(dialect.SQLite, learnerID)); err != nil {
		return Failure("delete profile", err)
	}
	return nil
}

func (s *Store) execTx(ctx context.Context, stmts []Statement) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, st := range stmts {
		if _, err := tx.ExecContext(ctx, st.Query, st.Args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}
