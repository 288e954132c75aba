package dbx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func countKeys(ctx context.Context, t *testing.T, q DBTX) int {
	t.Helper()
	var n int
	require.NoError(t, q.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv`).Scan(&n))
	return n
}

func TestDBTX_SatisfiedByDBAndTx(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", "file:dbx_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT)`)
	require.NoError(t, err)

	var q DBTX = db
	_, err = q.ExecContext(ctx, `INSERT INTO kv(k, v) VALUES ('a', '1')`)
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	q = tx
	_, err = q.ExecContext(ctx, `INSERT INTO kv(k, v) VALUES ('b', '2')`)
	require.NoError(t, err)
	require.Equal(t, 2, countKeys(ctx, t, q))
	require.NoError(t, tx.Rollback())

	require.Equal(t, 1, countKeys(ctx, t, db))
}
