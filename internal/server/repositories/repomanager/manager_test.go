package repomanager

import (
	"context"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	db, rm, err := Open("memory", "")
	require.NoError(t, err)
	assert.Nil(t, db)
	assert.NotNil(t, rm)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open("oracle", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown database driver")
}

func TestMemoryManager_VendsSharedRepositories(t *testing.T) {
	rm := NewMemoryRepositoryManager()

	// the same store must back every vend, DBTX or not
	assert.Same(t, rm.Accounts(nil), rm.Accounts(nil))
	assert.Same(t, rm.Files(nil), rm.Files(nil))
	assert.NoError(t, rm.RunMigrations(context.Background(), nil))
}
