// Package directory provides the user directory for the library system:
// member and staff accounts with tiered access levels.
package directory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessLevel is the coarse permission tier attached to an account
type AccessLevel string

const (
	AccessFull     AccessLevel = "full"     // System administrators
	AccessHigh     AccessLevel = "high"     // Senior library staff
	AccessExtended AccessLevel = "extended" // Faculty members
	AccessResearch AccessLevel = "research" // Research scholars
	AccessStandard AccessLevel = "standard" // Regular members
)

// Elevated reports whether the level grants administrative views
func (l AccessLevel) Elevated() bool {
	return l == AccessFull || l == AccessHigh
}

// IsValid checks if the AccessLevel is a known tier
func (l AccessLevel) IsValid() bool {
	switch l {
	case AccessFull, AccessHigh, AccessExtended, AccessResearch, AccessStandard:
		return true
	default:
		return false
	}
}

// String returns the string representation of the AccessLevel
func (l AccessLevel) String() string {
	return string(l)
}

// Account represents one entry in the user directory. Accounts are seeded
// at startup and never deleted; only LastLogin mutates afterwards.
type Account struct {
	ID           string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username     string      `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Role         string      `gorm:"not null" json:"role"`
	Name         string      `gorm:"not null" json:"name"`
	Email        string      `gorm:"uniqueIndex" json:"email"`
	MemberID     string      `json:"member_id,omitempty"`
	AccessLevel  AccessLevel `gorm:"not null;default:'standard'" json:"access_level"`
	LastLogin    *time.Time  `json:"last_login,omitempty"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Account model
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
