package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishu-0105/Library-Testing-System/pkg/storage"
)

func setupTestStore(t *testing.T) *Store {
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, storage.Close(db))
	})

	store, err := NewStore(db)
	require.NoError(t, err)
	return store
}

func TestStore_SeedsCatalog(t *testing.T) {
	store := setupTestStore(t)

	books, err := store.All()
	require.NoError(t, err)
	require.Len(t, books, 8)

	// Storage order is by stable ID
	assert.Equal(t, uint(1), books[0].ID)
	assert.Equal(t, "Advanced Python Programming", books[0].Title)
	assert.Equal(t, uint(8), books[7].ID)
}

func TestStore_Search_QueryMatchesTitleAuthorCategory(t *testing.T) {
	store := setupTestStore(t)

	// "python" matches two titles case-insensitively
	books, err := store.Search("python", "", AvailabilityAny)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Advanced Python Programming", books[0].Title)
	assert.Equal(t, "Data Science with Python", books[1].Title)

	// Author match
	books, err = store.Search("ramalho", "", AvailabilityAny)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Luciano Ramalho", books[0].Author)

	// Category substring match
	books, err = store.Search("devops", "", AvailabilityAny)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "DevOps Engineering", books[0].Title)
}

func TestStore_Search_CategoryExactMatch(t *testing.T) {
	store := setupTestStore(t)

	books, err := store.Search("", "Programming", AvailabilityAny)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Programming", books[0].Category)

	// Exact match only; lowercase does not match
	books, err = store.Search("", "programming", AvailabilityAny)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestStore_Search_AvailabilityTriState(t *testing.T) {
	store := setupTestStore(t)

	all, err := store.Search("", "", AvailabilityAny)
	require.NoError(t, err)
	assert.Len(t, all, 8)

	available, err := store.Search("", "", AvailabilityAvailable)
	require.NoError(t, err)
	require.Len(t, available, 5)
	for _, book := range available {
		assert.True(t, book.Available)
	}

	unavailable, err := store.Search("", "", AvailabilityUnavailable)
	require.NoError(t, err)
	require.Len(t, unavailable, 3)
	for _, book := range unavailable {
		assert.False(t, book.Available)
	}
}

func TestStore_Search_CombinedFilters(t *testing.T) {
	store := setupTestStore(t)

	books, err := store.Search("python", "", AvailabilityAvailable)
	require.NoError(t, err)
	assert.Len(t, books, 2)

	books, err = store.Search("python", "Data Science", AvailabilityAny)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Data Science with Python", books[0].Title)
}

func TestParseAvailability(t *testing.T) {
	assert.Equal(t, AvailabilityAvailable, ParseAvailability("available"))
	assert.Equal(t, AvailabilityUnavailable, ParseAvailability("unavailable"))
	assert.Equal(t, AvailabilityUnavailable, ParseAvailability("borrowed"))
	assert.Equal(t, AvailabilityAny, ParseAvailability(""))
	assert.Equal(t, AvailabilityAny, ParseAvailability("anything-else"))
	assert.Equal(t, AvailabilityAvailable, ParseAvailability(" Available "))
}

func TestStore_Categories(t *testing.T) {
	store := setupTestStore(t)

	categories, err := store.Categories()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"AI/ML", "Cloud", "Data Science", "DevOps",
		"Engineering", "Programming", "Security", "Web Development",
	}, categories)
}

func TestStore_Counts(t *testing.T) {
	store := setupTestStore(t)

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, 8, counts.Total)
	assert.Equal(t, 5, counts.Available)
	assert.Equal(t, 3, counts.Borrowed)
	assert.Equal(t, 8, counts.Categories)
}

func TestStore_Recent(t *testing.T) {
	store := setupTestStore(t)

	recent, err := store.Recent(4)
	require.NoError(t, err)
	require.Len(t, recent, 4)
	assert.Equal(t, uint(1), recent[0].ID)
	assert.Equal(t, uint(4), recent[3].ID)

	recent, err = store.Recent(100)
	require.NoError(t, err)
	assert.Len(t, recent, 8)
}
