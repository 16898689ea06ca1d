package activity

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_RecordPreservesOrder(t *testing.T) {
	log := NewLog(10)

	log.Record(ActionHomepageVisit, "", nil, "127.0.0.1")
	log.Record(ActionLoginAttempt, "admin", nil, "127.0.0.1")
	log.Record(ActionSuccessfulLogin, "admin", nil, "127.0.0.1")

	events := log.All()
	require.Len(t, events, 3)
	assert.Equal(t, ActionHomepageVisit, events[0].Action)
	assert.Equal(t, ActionLoginAttempt, events[1].Action)
	assert.Equal(t, ActionSuccessfulLogin, events[2].Action)
}

func TestLog_AnonymousMarker(t *testing.T) {
	log := NewLog(4)
	log.Record(ActionHomepageVisit, "", nil, "")

	events := log.All()
	require.Len(t, events, 1)
	assert.Equal(t, AnonymousUser, events[0].User)
}

func TestLog_EvictsOldestAtCapacity(t *testing.T) {
	log := NewLog(3)
	for i := 0; i < 5; i++ {
		log.Record(ActionCatalogSearch, fmt.Sprintf("user%d", i), nil, "")
	}

	assert.Equal(t, 3, log.Len())
	assert.Equal(t, uint64(5), log.TotalRecorded())

	events := log.All()
	require.Len(t, events, 3)
	assert.Equal(t, "user2", events[0].User)
	assert.Equal(t, "user4", events[2].User)
}

func TestLog_ByUser(t *testing.T) {
	log := NewLog(16)
	log.Record(ActionSuccessfulLogin, "maya", nil, "")
	log.Record(ActionCatalogSearch, "maya", map[string]interface{}{"query": "python"}, "")
	log.Record(ActionSuccessfulLogin, "admin", nil, "")

	events := log.ByUser("maya")
	require.Len(t, events, 2)
	assert.Equal(t, ActionSuccessfulLogin, events[0].Action)
	assert.Equal(t, ActionCatalogSearch, events[1].Action)
	assert.Equal(t, "python", events[1].Details["query"])

	assert.Empty(t, log.ByUser("nobody"))
}

func TestLog_Recent(t *testing.T) {
	log := NewLog(8)
	for i := 0; i < 6; i++ {
		log.Record(ActionDashboardAccess, fmt.Sprintf("user%d", i), nil, "")
	}

	recent := log.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "user4", recent[0].User)
	assert.Equal(t, "user5", recent[1].User)

	assert.Len(t, log.Recent(100), 6)
	assert.Nil(t, log.Recent(0))
}

func TestLog_ConcurrentRecord(t *testing.T) {
	log := NewLog(64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				log.Record(ActionCatalogSearch, "worker", nil, "")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(800), log.TotalRecorded())
	assert.Equal(t, 64, log.Len())
}
