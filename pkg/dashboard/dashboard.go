// Package dashboard aggregates live store state into per-user and
// administrative views. Nothing is cached: every call recomputes from
// the underlying stores, so views are never stale.
package dashboard

import (
	"time"

	"github.com/Vishu-0105/Library-Testing-System/pkg/activity"
	"github.com/Vishu-0105/Library-Testing-System/pkg/catalog"
	"github.com/Vishu-0105/Library-Testing-System/pkg/directory"
	"github.com/Vishu-0105/Library-Testing-System/pkg/errors"
	"github.com/Vishu-0105/Library-Testing-System/pkg/metrics"
)

const recentBookCount = 4
const recentActivityCount = 10

// View is the per-user dashboard
type View struct {
	Username          string         `json:"username"`
	Role              string         `json:"role"`
	Name              string         `json:"name"`
	AccessLevel       string         `json:"access_level"`
	LastLogin         *time.Time     `json:"last_login,omitempty"`
	Catalog           catalog.Counts `json:"catalog"`
	TotalMembers      int64          `json:"total_members"`
	UserActivityCount int            `json:"user_activity_count"`
	RecentBooks       []catalog.Book `json:"recent_books"`
}

// AdminView is the elevated dashboard
type AdminView struct {
	TotalActivities  uint64           `json:"total_activities"`
	RecentActivities []activity.Event `json:"recent_activities"`
	SystemHealth     string           `json:"system_health"`
	ActiveSessions   int64            `json:"active_sessions"`
	Stats            metrics.Snapshot `json:"system_stats"`
}

// ProfileStats summarizes one user's recorded activity
type ProfileStats struct {
	TotalActivities int        `json:"total_activities"`
	LoginCount      int        `json:"login_count"`
	SearchCount     int        `json:"search_count"`
	LastActivity    *time.Time `json:"last_activity,omitempty"`
}

// Aggregator composes the stores into dashboard views
type Aggregator struct {
	catalog   *catalog.Store
	directory *directory.Repository
	log       *activity.Log
	counters  *metrics.Counters
}

// NewAggregator creates a dashboard aggregator over the live stores
func NewAggregator(cat *catalog.Store, dir *directory.Repository, log *activity.Log, counters *metrics.Counters) *Aggregator {
	return &Aggregator{
		catalog:   cat,
		directory: dir,
		log:       log,
		counters:  counters,
	}
}

// Summarize builds the per-user dashboard view
func (a *Aggregator) Summarize(username string) (*View, error) {
	account, err := a.directory.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.NewNotFoundError("account")
	}

	counts, err := a.catalog.Counts()
	if err != nil {
		return nil, err
	}

	members, err := a.directory.Count()
	if err != nil {
		return nil, err
	}

	recent, err := a.catalog.Recent(recentBookCount)
	if err != nil {
		return nil, err
	}

	return &View{
		Username:          account.Username,
		Role:              account.Role,
		Name:              account.Name,
		AccessLevel:       account.AccessLevel.String(),
		LastLogin:         account.LastLogin,
		Catalog:           counts,
		TotalMembers:      members,
		UserActivityCount: len(a.log.ByUser(username)),
		RecentBooks:       recent,
	}, nil
}

// AdminSummary builds the elevated dashboard view
func (a *Aggregator) AdminSummary() (*AdminView, error) {
	active, err := a.directory.CountActive()
	if err != nil {
		return nil, err
	}

	return &AdminView{
		TotalActivities:  a.log.TotalRecorded(),
		RecentActivities: a.log.Recent(recentActivityCount),
		SystemHealth:     "Optimal",
		ActiveSessions:   active,
		Stats:            a.counters.Snapshot(),
	}, nil
}

// Profile summarizes one user's retained activity
func (a *Aggregator) Profile(username string) ProfileStats {
	events := a.log.ByUser(username)

	stats := ProfileStats{TotalActivities: len(events)}
	for _, e := range events {
		switch e.Action {
		case activity.ActionSuccessfulLogin:
			stats.LoginCount++
		case activity.ActionCatalogSearch:
			stats.SearchCount++
		}
	}
	if len(events) > 0 {
		last := events[len(events)-1].Timestamp
		stats.LastActivity = &last
	}
	return stats
}
