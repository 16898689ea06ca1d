// Package contact provides the priority-based inquiry intake.
package contact

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Vishu-0105/Library-Testing-System/pkg/activity"
	"github.com/Vishu-0105/Library-Testing-System/pkg/errors"
	"github.com/Vishu-0105/Library-Testing-System/pkg/metrics"
)

// Priority labels accepted by the intake form
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
)

// Response-time SLA windows derived from priority
const (
	ResponseTimeHigh    = "12-24 hours"
	ResponseTimeDefault = "24-48 hours"
)

// StatusNew is the initial status of every accepted inquiry
const StatusNew = "new"

// Inquiry is one accepted contact-form submission. IDs are sequential
// and monotonically increasing.
type Inquiry struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"not null" json:"email"`
	InquiryType  string    `gorm:"not null" json:"inquiry_type"`
	Priority     string    `gorm:"not null" json:"priority"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	User         string    `json:"user"`
	Status       string    `gorm:"not null" json:"status"`
	ResponseTime string    `gorm:"not null" json:"response_time"`
	CreatedAt    time.Time `gorm:"not null" json:"timestamp"`
}

// SubmitParams carries one intake attempt
type SubmitParams struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	InquiryType string `json:"inquiry_type"`
	Priority    string `json:"priority"`
	Message     string `json:"message"`
	User        string `json:"-"`
	Origin      string `json:"-"`
}

// Validate collects every violated rule so the caller can display all of
// them at once.
func (p SubmitParams) Validate() error {
	verr := errors.NewValidationError()

	if len(strings.TrimSpace(p.Name)) < 2 {
		verr.Add("name", "full name must be at least 2 characters")
	}
	email := strings.TrimSpace(p.Email)
	if email == "" || !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		verr.Add("email", "please enter a valid email address")
	}
	if strings.TrimSpace(p.InquiryType) == "" {
		verr.Add("inquiry_type", "please select an inquiry type")
	}
	if len(strings.TrimSpace(p.Message)) < 15 {
		verr.Add("message", "message must be at least 15 characters long")
	}

	return verr.ToError()
}

// Intake validates and persists inquiries
type Intake struct {
	db       *gorm.DB
	recorder activity.Recorder
	counters *metrics.Counters
}

// NewIntake migrates the inquiry schema
func NewIntake(db *gorm.DB, recorder activity.Recorder, counters *metrics.Counters) (*Intake, error) {
	if err := db.AutoMigrate(&Inquiry{}); err != nil {
		return nil, errors.NewDatabaseError("failed to migrate inquiry schema", err)
	}
	return &Intake{db: db, recorder: recorder, counters: counters}, nil
}

// Submit validates the form, reporting every violation together. On
// success it assigns a sequential id, stamps the record, derives the
// response-time window from priority and records the activity event.
// The submission counter is bumped for every attempt, valid or not.
func (i *Intake) Submit(params SubmitParams) (*Inquiry, error) {
	i.counters.RecordSubmission()

	if err := params.Validate(); err != nil {
		return nil, err
	}

	priority := strings.TrimSpace(params.Priority)
	if priority == "" {
		priority = PriorityNormal
	}

	responseTime := ResponseTimeDefault
	if priority == PriorityHigh {
		responseTime = ResponseTimeHigh
	}

	user := params.User
	if user == "" {
		user = activity.AnonymousUser
	}

	inquiry := &Inquiry{
		Name:         strings.TrimSpace(params.Name),
		Email:        strings.TrimSpace(params.Email),
		InquiryType:  strings.TrimSpace(params.InquiryType),
		Priority:     priority,
		Message:      strings.TrimSpace(params.Message),
		User:         user,
		Status:       StatusNew,
		ResponseTime: responseTime,
	}

	if err := i.db.Create(inquiry).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to store inquiry", err)
	}

	i.recorder.Record(activity.ActionContactSubmission, params.User, map[string]interface{}{
		"inquiry_type": inquiry.InquiryType,
		"priority":     inquiry.Priority,
	}, params.Origin)

	return inquiry, nil
}

// List returns every stored inquiry, oldest first
func (i *Intake) List() ([]Inquiry, error) {
	var inquiries []Inquiry
	if err := i.db.Order("id").Find(&inquiries).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to list inquiries", err)
	}
	return inquiries, nil
}

// Count returns the number of stored inquiries
func (i *Intake) Count() (int64, error) {
	var count int64
	if err := i.db.Model(&Inquiry{}).Count(&count).Error; err != nil {
		return 0, errors.NewDatabaseError("failed to count inquiries", err)
	}
	return count, nil
}
