// Package activity provides the append-only activity log for the library
// system. Events are kept in a bounded in-memory ring so the log cannot
// grow without limit.
package activity

import (
	"sync"
	"time"
)

// AnonymousUser marks events not attributable to a signed-in account
const AnonymousUser = "Anonymous"

// Action tags recorded by the request handlers
const (
	ActionHomepageVisit     = "homepage_visit"
	ActionLoginAttempt      = "login_attempt"
	ActionSuccessfulLogin   = "successful_login"
	ActionFailedLogin       = "failed_login"
	ActionLogout            = "logout"
	ActionDashboardAccess   = "dashboard_access"
	ActionAdminDashboard    = "admin_dashboard_access"
	ActionCatalogSearch     = "catalog_search"
	ActionContactSubmission = "contact_form_submission"
	ActionAboutVisit        = "about_page_visit"
	ActionProfileAccess     = "profile_access"
	ActionPageNotFound      = "page_not_found"
	ActionInternalError     = "internal_error"
)

// Event is an immutable record of one observable action
type Event struct {
	Timestamp time.Time              `json:"timestamp"`
	Action    string                 `json:"action"`
	User      string                 `json:"user"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Origin    string                 `json:"origin,omitempty"`
}

// Recorder is the write side of the activity log
type Recorder interface {
	Record(action, user string, details map[string]interface{}, origin string)
}

// Log is a mutex-guarded bounded ring of events. Record always succeeds;
// once capacity is reached the oldest event is evicted.
type Log struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	start    int
	size     int
	total    uint64
}

// NewLog creates a log holding at most capacity events
func NewLog(capacity int) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{
		events:   make([]Event, capacity),
		capacity: capacity,
	}
}

// Record appends an event. An empty user is recorded as the anonymous
// marker so every event resolves to a directory entry or to AnonymousUser.
func (l *Log) Record(action, user string, details map[string]interface{}, origin string) {
	if user == "" {
		user = AnonymousUser
	}

	event := Event{
		Timestamp: time.Now(),
		Action:    action,
		User:      user,
		Details:   details,
		Origin:    origin,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := (l.start + l.size) % l.capacity
	l.events[idx] = event
	if l.size < l.capacity {
		l.size++
	} else {
		l.start = (l.start + 1) % l.capacity
	}
	l.total++
}

// Len returns the number of retained events
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// TotalRecorded returns the number of events ever recorded, including
// those already evicted from the ring.
func (l *Log) TotalRecorded() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

// ByUser returns the retained events for one user, oldest first
func (l *Log) ByUser(user string) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Event
	for i := 0; i < l.size; i++ {
		e := l.events[(l.start+i)%l.capacity]
		if e.User == user {
			out = append(out, e)
		}
	}
	return out
}

// Recent returns up to n of the newest retained events, oldest first
func (l *Log) Recent(n int) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > l.size {
		n = l.size
	}
	if n <= 0 {
		return nil
	}

	out := make([]Event, 0, n)
	for i := l.size - n; i < l.size; i++ {
		out = append(out, l.events[(l.start+i)%l.capacity])
	}
	return out
}

// All returns every retained event, oldest first
func (l *Log) All() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Event, 0, l.size)
	for i := 0; i < l.size; i++ {
		out = append(out, l.events[(l.start+i)%l.capacity])
	}
	return out
}

var _ Recorder = (*Log)(nil)
