package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrNotConnected is returned by operations on an adapter without a connection.
var ErrNotConnected = errors.New("database connection not established")

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Exec, Query and Explain implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    Config
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		b.logger().Debug("closing database connection")
		err := b.DB.Close()
		b.DB = nil
		return err
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	_, err := b.DB.ExecContext(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// Query executes a SQL statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string) (*sql.Rows, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return rows, nil
}

// Explain runs EXPLAIN on sqlStr. Each result row contributes its last
// column to the plan text, which covers both single-column plans (PostgreSQL)
// and key/value plans (DuckDB).
func (b *BaseSQLAdapter) Explain(ctx context.Context, sqlStr string) (string, error) {
	if b.DB == nil {
		return "", ErrNotConnected
	}

	rows, err := b.DB.QueryContext(ctx, "EXPLAIN "+sqlStr)
	if err != nil {
		return "", &ExplainError{Cause: err}
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("failed to read plan columns: %w", err)
	}
	if len(cols) == 0 {
		return "", fmt.Errorf("explain returned no columns")
	}

	var lines []string
	values := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return "", fmt.Errorf("failed to scan plan row: %w", err)
		}
		if last := values[len(values)-1]; last.Valid {
			lines = append(lines, last.String)
		}
	}
	if err := rows.Err(); err != nil {
		return "", &ExplainError{Cause: err}
	}

	b.logger().Debug("explained query", slog.Int("plan_lines", len(lines)))
	return strings.Join(lines, "\n"), nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// ExplainError is returned when the database rejects a statement while planning it.
type ExplainError struct {
	Cause error
}

func (e *ExplainError) Error() string {
	return fmt.Sprintf("database rejected query: %v", e.Cause)
}

func (e *ExplainError) Unwrap() error {
	return e.Cause
}
