package adapter

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcube/internal/testutil"
)

func newMockAdapter(t *testing.T) (*BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &BaseSQLAdapter{DB: db, Logger: testutil.NewTestLogger(t)}, mock
}

func TestBaseSQLAdapter_NotConnected(t *testing.T) {
	ctx := context.Background()
	base := &BaseSQLAdapter{}

	assert.False(t, base.IsConnected())
	assert.NoError(t, base.Close())
	assert.ErrorIs(t, base.Exec(ctx, "SELECT 1"), ErrNotConnected)

	rows, err := base.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Nil(t, rows)

	plan, err := base.Explain(ctx, "SELECT 1")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Empty(t, plan)
}

func TestBaseSQLAdapter_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	base := &BaseSQLAdapter{DB: db}
	require.True(t, base.IsConnected())
	require.NoError(t, base.Close())
	assert.False(t, base.IsConnected())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseSQLAdapter_Exec(t *testing.T) {
	base, mock := newMockAdapter(t)
	mock.ExpectExec("SET threads").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INVALID SQL").WillReturnError(assert.AnError)

	require.NoError(t, base.Exec(context.Background(), "SET threads = 4"))

	err := base.Exec(context.Background(), "INVALID SQL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute SQL")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseSQLAdapter_Query(t *testing.T) {
	base, mock := newMockAdapter(t)
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"orders_count"}).AddRow(3))

	rows, err := base.Query(context.Background(), "SELECT COUNT(*) AS orders_count FROM orders")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	var n int
	require.NoError(t, rows.Scan(&n))
	assert.Equal(t, 3, n)
	assert.NoError(t, rows.Err())
}

func TestBaseSQLAdapter_Explain(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      string
		errMsg    string
	}{
		{
			name: "single column plan",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("EXPLAIN SELECT").WillReturnRows(
					sqlmock.NewRows([]string{"QUERY PLAN"}).
						AddRow("HashAggregate  (cost=1.00..2.00 rows=10 width=8)").
						AddRow("  ->  Seq Scan on orders"))
			},
			want: "HashAggregate  (cost=1.00..2.00 rows=10 width=8)\n  ->  Seq Scan on orders",
		},
		{
			name: "key value plan",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("EXPLAIN SELECT").WillReturnRows(
					sqlmock.NewRows([]string{"explain_key", "explain_value"}).
						AddRow("physical_plan", "PROJECTION\nSEQ_SCAN orders"))
			},
			want: "PROJECTION\nSEQ_SCAN orders",
		},
		{
			name: "rejected by database",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("EXPLAIN SELECT").WillReturnError(assert.AnError)
			},
			errMsg: "database rejected query",
		},
		{
			name: "null values skipped",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("EXPLAIN SELECT").WillReturnRows(
					sqlmock.NewRows([]string{"plan"}).AddRow(nil).AddRow("Result"))
			},
			want: "Result",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, mock := newMockAdapter(t)
			tt.setupMock(mock)

			plan, err := base.Explain(context.Background(), "SELECT 1")
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				var explainErr *ExplainError
				assert.ErrorAs(t, err, &explainErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
