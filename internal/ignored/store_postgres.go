package ignored

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	id "datencheck/pkg/domain"
	"datencheck/pkg/platform/sentinel"
)

// SQLSTATE codes the store classifies.
const (
	undefinedTable    = "42P01"
	stringDataTooLong = "22001"
)

// PostgresStore persists ignore decisions in the datencheck_ignored table.
type PostgresStore struct {
	db *sql.DB
	tx *sql.Tx
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresTx binds the store to a transaction.
func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{tx: tx}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer() dbExecutor {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s *PostgresStore) IgnoredCodes(ctx context.Context, tree id.TreeID, xref id.Xref) (Codes, error) {
	query := `
		SELECT error_code
		FROM datencheck_ignored
		WHERE tree_id = $1 AND xref = $2
	`
	rows, err := s.execer().QueryContext(ctx, query, int(tree), string(xref))
	if err != nil {
		return nil, storeError("query ignored codes", err)
	}
	defer rows.Close()

	codes := make(Codes)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan ignored code: %w", err)
		}
		codes[code] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ignored codes: %w", err)
	}
	return codes, nil
}

// IgnoredCodesBatch loads the codes of many persons with a single ANY query.
func (s *PostgresStore) IgnoredCodesBatch(ctx context.Context, tree id.TreeID, xrefs []id.Xref) (map[id.Xref]Codes, error) {
	out := make(map[id.Xref]Codes, len(xrefs))
	if len(xrefs) == 0 {
		return out, nil
	}
	raw := make([]string, len(xrefs))
	for i, x := range xrefs {
		raw[i] = string(x)
		out[x] = make(Codes)
	}

	query := `
		SELECT xref, error_code
		FROM datencheck_ignored
		WHERE tree_id = $1 AND xref = ANY($2)
	`
	rows, err := s.execer().QueryContext(ctx, query, int(tree), pq.Array(raw))
	if err != nil {
		return nil, storeError("query ignored codes batch", err)
	}
	defer rows.Close()

	for rows.Next() {
		var xref, code string
		if err := rows.Scan(&xref, &code); err != nil {
			return nil, fmt.Errorf("scan ignored code: %w", err)
		}
		x := id.Xref(xref)
		if out[x] == nil {
			out[x] = make(Codes)
		}
		out[x][code] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ignored codes: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Ignore(ctx context.Context, rec Record) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	query := `
		INSERT INTO datencheck_ignored (tree_id, xref, error_code, user_name, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tree_id, xref, error_code) DO UPDATE SET
			user_name = EXCLUDED.user_name,
			comment = EXCLUDED.comment,
			created_at = EXCLUDED.created_at
	`
	_, err := s.execer().ExecContext(ctx, query,
		int(rec.TreeID),
		string(rec.Xref),
		rec.Code,
		nullString(rec.User),
		nullString(rec.Comment),
		createdAt.UTC(),
	)
	if err != nil {
		return storeError("save ignored issue", err)
	}
	return nil
}

func (s *PostgresStore) Unignore(ctx context.Context, tree id.TreeID, xref id.Xref, code string) (bool, error) {
	query := `
		DELETE FROM datencheck_ignored
		WHERE tree_id = $1 AND xref = $2 AND error_code = $3
	`
	res, err := s.execer().ExecContext(ctx, query, int(tree), string(xref), code)
	if err != nil {
		return false, storeError("delete ignored issue", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete ignored issue rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *PostgresStore) List(ctx context.Context, tree id.TreeID) ([]Record, error) {
	query := `
		SELECT tree_id, xref, error_code, user_name, comment, created_at
		FROM datencheck_ignored
		WHERE tree_id = $1
		ORDER BY created_at DESC, xref, error_code
	`
	rows, err := s.execer().QueryContext(ctx, query, int(tree))
	if err != nil {
		return nil, storeError("list ignored issues", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			rec           Record
			treeID        int
			xref          string
			user, comment sql.NullString
		)
		if err := rows.Scan(&treeID, &xref, &rec.Code, &user, &comment, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ignored issue: %w", err)
		}
		rec.TreeID = id.TreeID(treeID)
		rec.Xref = id.Xref(xref)
		rec.User = user.String
		rec.Comment = comment.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ignored issues: %w", err)
	}
	return records, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// storeError wraps err, tagging a missing table with sentinel.ErrSchemaMissing
// and an oversized column value with sentinel.ErrInvalidInput.
func storeError(op string, err error) error {
	switch sqlState(err) {
	case undefinedTable:
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrSchemaMissing, err)
	case stringDataTooLong:
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// sqlState extracts the SQLSTATE. The pgx driver reports *pgconn.PgError and
// lib/pq reports *pq.Error.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

var (
	_ Store       = (*PostgresStore)(nil)
	_ BatchReader = (*PostgresStore)(nil)
)
