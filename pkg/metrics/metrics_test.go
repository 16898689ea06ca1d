package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounters_Snapshot(t *testing.T) {
	c := NewCounters()

	c.RecordVisit()
	c.RecordVisit()
	c.RecordLogin()
	c.RecordSearch()
	c.RecordSearch()
	c.RecordSearch()
	c.RecordSubmission()

	snap := c.Snapshot()
	assert.Equal(t, uint64(2), snap.TotalVisits)
	assert.Equal(t, uint64(1), snap.SuccessfulLogins)
	assert.Equal(t, uint64(3), snap.SearchQueries)
	assert.Equal(t, uint64(1), snap.FormSubmissions)
}

func TestCounters_ConcurrentIncrements(t *testing.T) {
	c := NewCounters()

	const workers = 16
	const perWorker = 500

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.RecordVisit()
				c.RecordSearch()
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, uint64(workers*perWorker), snap.TotalVisits)
	assert.Equal(t, uint64(workers*perWorker), snap.SearchQueries)
	assert.Equal(t, uint64(0), snap.SuccessfulLogins)
}
