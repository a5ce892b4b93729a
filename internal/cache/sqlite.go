package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"homework-assist/internal/components/assert"
	"homework-assist/internal/components/telemetry"
	"homework-assist/internal/scrapers/lms"
)

const (
	report_db_query  = "db.query"
	report_store_get = "sqlite-store.get"
)

// SqliteStore keeps the entry in a sqlite (or libsql) database that has
// Schema applied.
type SqliteStore struct {
	db  *sql.DB
	tel telemetry.API
}

func NewSqliteStore(db *sql.DB, tel telemetry.API) SqliteStore {
	assert.NotNil(db)
	assert.NotNil(tel)
	return SqliteStore{
		db:  db,
		tel: telemetry.NewScopedAPI("cache", tel),
	}
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func (s SqliteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.tel.ReportBroken(report_db_query, fmt.Errorf("begin tx: %w", err))
		return err
	}
	err = fn(tx)
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			s.tel.ReportBroken(report_db_query, fmt.Errorf("rollback: %w", rollbackErr))
		}
		return err
	}
	return tx.Commit()
}

var errNoSnapshot = errors.New("no snapshot")

// Get reads the snapshot and its assignments in one transaction, so a
// concurrent Set is never seen half applied.
func (s SqliteStore) Get(ctx context.Context) (Entry, bool, error) {
	var entry Entry
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		entry, err = s.getTx(ctx, tx)
		return err
	})
	if errors.Is(err, errNoSnapshot) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return entry, true, nil
}

func (s SqliteStore) getTx(ctx context.Context, tx *sql.Tx) (Entry, error) {
	var capturedAt float64
	err := tx.QueryRowContext(ctx, "select captured_at from snapshot where id = 0").Scan(&capturedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, errNoSnapshot
	}
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "GetSnapshot")
		return Entry{}, err
	}

	rows, err := tx.QueryContext(
		ctx,
		"select title, lecture_name, kind, deadline from assignment order by idx",
	)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "GetAssignments")
		return Entry{}, err
	}
	defer rows.Close()

	entry := Entry{CapturedAt: fromEpochSeconds(capturedAt)}
	for rows.Next() {
		var title, lectureName, deadline string
		var kind int64
		err = rows.Scan(&title, &lectureName, &kind, &deadline)
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "GetAssignments")
			return Entry{}, err
		}
		assignment, err := lms.NewAssignment(title, lectureName, lms.Kind(kind), deadline)
		if err != nil {
			s.tel.ReportBroken(report_store_get, fmt.Errorf("corrupt cached assignment: %w", err))
			return Entry{}, err
		}
		entry.Assignments = append(entry.Assignments, assignment)
	}
	err = rows.Err()
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "GetAssignments")
		return Entry{}, err
	}
	return entry, nil
}

func clearTx(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "delete from assignment")
	if err != nil {
		return fmt.Errorf("DeleteAssignments: %w", err)
	}
	_, err = tx.ExecContext(ctx, "delete from snapshot")
	if err != nil {
		return fmt.Errorf("DeleteSnapshot: %w", err)
	}
	return nil
}

func (s SqliteStore) Set(ctx context.Context, entry Entry) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := clearTx(ctx, tx)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(
			ctx,
			"insert into snapshot(id, captured_at) values (0, ?)",
			epochSeconds(entry.CapturedAt),
		)
		if err != nil {
			return fmt.Errorf("AddSnapshot: %w", err)
		}
		for i, a := range entry.Assignments {
			_, err = tx.ExecContext(
				ctx,
				"insert into assignment(idx, title, lecture_name, kind, deadline) values (?, ?, ?, ?, ?)",
				i, a.Title(), a.LectureName(), int64(a.Kind()), a.Deadline(),
			)
			if err != nil {
				return fmt.Errorf("AddAssignment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.tel.ReportBroken(report_db_query, err)
	}
	return err
}

func (s SqliteStore) Clear(ctx context.Context) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return clearTx(ctx, tx)
	})
	if err != nil {
		s.tel.ReportBroken(report_db_query, err)
	}
	return err
}
