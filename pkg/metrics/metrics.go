// Package metrics tracks process-wide usage counters for the library system.
package metrics

import "sync/atomic"

// Snapshot is a point-in-time copy of all counters
type Snapshot struct {
	TotalVisits      uint64 `json:"total_visits"`
	SuccessfulLogins uint64 `json:"successful_logins"`
	SearchQueries    uint64 `json:"search_queries"`
	FormSubmissions  uint64 `json:"form_submissions"`
}

// Counters holds the system usage counters. Increments are atomic so
// concurrent requests never lose updates.
type Counters struct {
	visits      atomic.Uint64
	logins      atomic.Uint64
	searches    atomic.Uint64
	submissions atomic.Uint64
}

// NewCounters creates a zeroed counter set
func NewCounters() *Counters {
	return &Counters{}
}

// RecordVisit increments the homepage visit counter
func (c *Counters) RecordVisit() {
	c.visits.Add(1)
}

// RecordLogin increments the successful login counter
func (c *Counters) RecordLogin() {
	c.logins.Add(1)
}

// RecordSearch increments the catalog search counter
func (c *Counters) RecordSearch() {
	c.searches.Add(1)
}

// RecordSubmission increments the contact form submission counter
func (c *Counters) RecordSubmission() {
	c.submissions.Add(1)
}

// Snapshot returns a consistent-enough copy for status views
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		TotalVisits:      c.visits.Load(),
		SuccessfulLogins: c.logins.Load(),
		SearchQueries:    c.searches.Load(),
		FormSubmissions:  c.submissions.Load(),
	}
}
