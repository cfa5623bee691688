package storage

import (
	"path/filepath"
	"testing"

	"github.com/hardik88t/puredry/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	db, err := repository.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, repository.RunMigrations(db))

	exerciseStore(t, NewSQLiteStore(db))
}
