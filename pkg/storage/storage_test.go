package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_InMemory(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)

	assert.NoError(t, HealthCheck(db))
	assert.NoError(t, Close(db))
}

func TestOpen_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "library.db")

	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, Close(db))
	})

	assert.NoError(t, HealthCheck(db))
	assert.FileExists(t, path)
}
