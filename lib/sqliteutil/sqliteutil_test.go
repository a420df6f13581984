package sqliteutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSchema = `CREATE TABLE IF NOT EXISTS kv (k TEXT PRIMARY KEY, v TEXT);`

func TestOpenDB(t *testing.T) {
	db, err := OpenDB(testSchema, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO kv (k, v) VALUES ('a', 'b')`)
	require.NoError(t, err)

	var v string
	err = db.QueryRow(`SELECT v FROM kv WHERE k = 'a'`).Scan(&v)
	require.NoError(t, err)
	require.Equal(t, "b", v)
}

func TestConfigOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "test.db")

	db, err := Config{File: path}.Open(testSchema)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// reopening applies the schema again, which must be a no-op
	db, err = Config{File: path}.Open(testSchema)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
