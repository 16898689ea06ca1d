package directory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vishu-0105/Library-Testing-System/pkg/storage"
)

func setupTestRepository(t *testing.T) *Repository {
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, storage.Close(db))
	})

	repo, err := NewRepository(db)
	require.NoError(t, err)
	return repo
}

func TestRepository_SeedsFixedDirectory(t *testing.T) {
	repo := setupTestRepository(t)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	admin, err := repo.GetByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "System Administrator", admin.Role)
	assert.Equal(t, "Emily Rodriguez", admin.Name)
	assert.Equal(t, AccessFull, admin.AccessLevel)
	assert.Nil(t, admin.LastLogin)
	assert.NotEmpty(t, admin.ID)

	// Seed passwords are stored hashed, never plaintext
	assert.NotEqual(t, "admin2025", admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin2025")))
}

func TestRepository_GetByUsername_Unknown(t *testing.T) {
	repo := setupTestRepository(t)

	account, err := repo.GetByUsername("nobody")
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestRepository_TouchLastLogin(t *testing.T) {
	repo := setupTestRepository(t)

	at := time.Now().Truncate(time.Second)
	require.NoError(t, repo.TouchLastLogin("student", at))

	account, err := repo.GetByUsername("student")
	require.NoError(t, err)
	require.NotNil(t, account.LastLogin)
	assert.WithinDuration(t, at, *account.LastLogin, time.Second)

	assert.Error(t, repo.TouchLastLogin("nobody", at))
}

func TestRepository_CountActive(t *testing.T) {
	repo := setupTestRepository(t)

	active, err := repo.CountActive()
	require.NoError(t, err)
	assert.Equal(t, int64(0), active)

	require.NoError(t, repo.TouchLastLogin("admin", time.Now()))
	require.NoError(t, repo.TouchLastLogin("faculty", time.Now()))

	active, err = repo.CountActive()
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)
}

func TestRepository_AccessLevels(t *testing.T) {
	repo := setupTestRepository(t)

	levels, err := repo.AccessLevels()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"full", "high", "extended", "research", "standard"}, levels)
}

func TestAccessLevel_Elevated(t *testing.T) {
	assert.True(t, AccessFull.Elevated())
	assert.True(t, AccessHigh.Elevated())
	assert.False(t, AccessExtended.Elevated())
	assert.False(t, AccessResearch.Elevated())
	assert.False(t, AccessStandard.Elevated())
}

func TestAccessLevel_IsValid(t *testing.T) {
	assert.True(t, AccessStandard.IsValid())
	assert.False(t, AccessLevel("root").IsValid())
}
