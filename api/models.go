package api

import (
	"time"

	"github.com/Vishu-0105/Library-Testing-System/pkg/catalog"
	"github.com/Vishu-0105/Library-Testing-System/pkg/contact"
	"github.com/Vishu-0105/Library-Testing-System/pkg/dashboard"
	"github.com/Vishu-0105/Library-Testing-System/pkg/metrics"
)

// BaseResponse represents the base structure for all API responses
type BaseResponse[T any] struct {
	Code    int    `json:"code" example:"200"`
	Message string `json:"message" example:"Operation successful"`
	Data    *T     `json:"data,omitempty"`
}

// SimpleResponse for operations without data return
type SimpleResponse = BaseResponse[interface{}]

// LoginRequest carries credentials from the login form or a JSON body
type LoginRequest struct {
	Username   string `form:"username" json:"username"`
	Password   string `form:"password" json:"password"`
	RememberMe bool   `form:"remember_me" json:"remember_me"`
}

// LoginResult is returned on a successful login. RedirectTo depends on
// the account's access level.
type LoginResult struct {
	Token       string    `json:"token"`
	RedirectTo  string    `json:"redirect_to"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Name        string    `json:"name"`
	AccessLevel string    `json:"access_level"`
	LoginTime   time.Time `json:"login_time"`
}

// HomeSummary is the landing page aggregate
type HomeSummary struct {
	TotalBooks      int              `json:"total_books"`
	AvailableBooks  int              `json:"available_books"`
	TotalCategories int              `json:"total_categories"`
	TotalUsers      int64            `json:"total_users"`
	SystemStats     metrics.Snapshot `json:"system_stats"`
}

// CatalogResult echoes the applied filters alongside the matching books
type CatalogResult struct {
	Books                []catalog.Book `json:"books"`
	ResultCount          int            `json:"result_count"`
	Categories           []string       `json:"categories"`
	SearchQuery          string         `json:"search_query"`
	SelectedCategory     string         `json:"selected_category"`
	SelectedAvailability string         `json:"selected_availability"`
}

// ContactMeta describes the intake form to clients
type ContactMeta struct {
	InquiryTypes  []string          `json:"inquiry_types"`
	Priorities    []string          `json:"priorities"`
	ResponseTimes map[string]string `json:"response_times"`
}

// ContactResult confirms an accepted inquiry
type ContactResult struct {
	Inquiry      contact.Inquiry `json:"inquiry"`
	Confirmation string          `json:"confirmation"`
}

// AboutInfo is the static system information page
type AboutInfo struct {
	Version          string   `json:"version"`
	BuildDate        string   `json:"build_date"`
	FeaturesCount    int      `json:"features_count"`
	SupportedFormats []string `json:"supported_formats"`
	SecurityLevel    string   `json:"security_level"`
}

// ProfileResult combines account data with the user's activity summary
type ProfileResult struct {
	Username    string                 `json:"username"`
	Role        string                 `json:"role"`
	Name        string                 `json:"name"`
	Email       string                 `json:"email"`
	MemberID    string                 `json:"member_id"`
	AccessLevel string                 `json:"access_level"`
	Stats       dashboard.ProfileStats `json:"profile_stats"`
}

// SystemStatus is the comprehensive status aggregate
type SystemStatus struct {
	Status       string           `json:"status"`
	Timestamp    string           `json:"timestamp"`
	Version      string           `json:"version"`
	SystemHealth string           `json:"system_health"`
	Database     DatabaseStatus   `json:"database"`
	Users        UserStatus       `json:"users"`
	Activity     metrics.Snapshot `json:"activity"`
}

// DatabaseStatus summarizes the catalog store
type DatabaseStatus struct {
	TotalBooks      int `json:"total_books"`
	AvailableBooks  int `json:"available_books"`
	TotalCategories int `json:"total_categories"`
}

// UserStatus summarizes the user directory
type UserStatus struct {
	TotalMembers  int64    `json:"total_members"`
	ActiveMembers int64    `json:"active_members"`
	AccessLevels  []string `json:"access_levels"`
}

// BooksResult is the raw catalog dump endpoint payload
type BooksResult struct {
	Books          []catalog.Book `json:"books"`
	TotalCount     int            `json:"total_count"`
	AvailableCount int            `json:"available_count"`
	Categories     []string       `json:"categories"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
}
