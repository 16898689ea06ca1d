package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishu-0105/Library-Testing-System/pkg/activity"
	"github.com/Vishu-0105/Library-Testing-System/pkg/catalog"
	"github.com/Vishu-0105/Library-Testing-System/pkg/directory"
	"github.com/Vishu-0105/Library-Testing-System/pkg/metrics"
	"github.com/Vishu-0105/Library-Testing-System/pkg/storage"
)

func setupTestAggregator(t *testing.T) (*Aggregator, *directory.Repository, *activity.Log, *metrics.Counters) {
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, storage.Close(db))
	})

	dir, err := directory.NewRepository(db)
	require.NoError(t, err)

	cat, err := catalog.NewStore(db)
	require.NoError(t, err)

	log := activity.NewLog(64)
	counters := metrics.NewCounters()
	return NewAggregator(cat, dir, log, counters), dir, log, counters
}

func TestAggregator_Summarize(t *testing.T) {
	agg, dir, log, _ := setupTestAggregator(t)

	at := time.Now()
	require.NoError(t, dir.TouchLastLogin("student", at))
	log.Record(activity.ActionDashboardAccess, "student", nil, "10.0.0.1")
	log.Record(activity.ActionCatalogSearch, "faculty", nil, "10.0.0.2")

	view, err := agg.Summarize("student")
	require.NoError(t, err)

	assert.Equal(t, "student", view.Username)
	assert.Equal(t, "Graduate Student", view.Role)
	assert.Equal(t, "Maya Patel", view.Name)
	assert.Equal(t, "standard", view.AccessLevel)
	require.NotNil(t, view.LastLogin)
	assert.WithinDuration(t, at, *view.LastLogin, time.Second)

	assert.Equal(t, 8, view.Catalog.Total)
	assert.Equal(t, int64(5), view.TotalMembers)
	assert.Equal(t, 1, view.UserActivityCount)
	assert.Len(t, view.RecentBooks, 4)
	assert.Equal(t, "Advanced Python Programming", view.RecentBooks[0].Title)
}

func TestAggregator_Summarize_UnknownUser(t *testing.T) {
	agg, _, _, _ := setupTestAggregator(t)

	view, err := agg.Summarize("nobody")
	assert.Error(t, err)
	assert.Nil(t, view)
}

func TestAggregator_AdminSummary(t *testing.T) {
	agg, dir, log, counters := setupTestAggregator(t)

	require.NoError(t, dir.TouchLastLogin("admin", time.Now()))
	for i := 0; i < 12; i++ {
		log.Record(activity.ActionHomepageVisit, "", nil, "10.0.0.1")
		counters.RecordVisit()
	}
	counters.RecordLogin()

	view, err := agg.AdminSummary()
	require.NoError(t, err)

	assert.Equal(t, uint64(12), view.TotalActivities)
	assert.Len(t, view.RecentActivities, 10)
	assert.Equal(t, "Optimal", view.SystemHealth)
	assert.Equal(t, int64(1), view.ActiveSessions)
	assert.Equal(t, uint64(12), view.Stats.TotalVisits)
	assert.Equal(t, uint64(1), view.Stats.SuccessfulLogins)
}

func TestAggregator_Profile(t *testing.T) {
	agg, _, log, _ := setupTestAggregator(t)

	stats := agg.Profile("researcher")
	assert.Equal(t, 0, stats.TotalActivities)
	assert.Nil(t, stats.LastActivity)

	log.Record(activity.ActionSuccessfulLogin, "researcher", nil, "10.0.0.1")
	log.Record(activity.ActionCatalogSearch, "researcher", nil, "10.0.0.1")
	log.Record(activity.ActionCatalogSearch, "researcher", nil, "10.0.0.1")
	log.Record(activity.ActionLogout, "researcher", nil, "10.0.0.1")
	log.Record(activity.ActionSuccessfulLogin, "student", nil, "10.0.0.2")

	stats = agg.Profile("researcher")
	assert.Equal(t, 4, stats.TotalActivities)
	assert.Equal(t, 1, stats.LoginCount)
	assert.Equal(t, 2, stats.SearchCount)
	require.NotNil(t, stats.LastActivity)
}
