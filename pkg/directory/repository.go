package directory

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Vishu-0105/Library-Testing-System/pkg/errors"
)

// seedAccount is one fixed directory entry created at process start
type seedAccount struct {
	Username    string
	Password    string
	Role        string
	Name        string
	Email       string
	MemberID    string
	AccessLevel AccessLevel
}

// seedAccounts is the fixed set the directory starts from. Passwords are
// stored bcrypt-hashed; the plaintext here exists only as seed input.
var seedAccounts = []seedAccount{
	{"admin", "admin2025", "System Administrator", "Emily Rodriguez", "admin@modernlibrary.edu", "ADM001", AccessFull},
	{"librarian", "lib123", "Senior Librarian", "David Thompson", "david.thompson@modernlibrary.edu", "LIB002", AccessHigh},
	{"student", "student456", "Graduate Student", "Maya Patel", "maya.patel@university.edu", "GRD2024001", AccessStandard},
	{"faculty", "faculty789", "Research Faculty", "Prof. James Wilson", "j.wilson@university.edu", "FAC2024001", AccessExtended},
	{"researcher", "research2024", "Research Scholar", "Dr. Lisa Chang", "lisa.chang@research.edu", "RES2024001", AccessResearch},
}

// Repository provides data access for the user directory
type Repository struct {
	db *gorm.DB
}

// NewRepository migrates the account schema and seeds the fixed directory
// if it is empty.
func NewRepository(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(&Account{}); err != nil {
		return nil, errors.NewDatabaseError("failed to migrate account schema", err)
	}

	repo := &Repository{db: db}
	if err := repo.seed(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *Repository) seed() error {
	var count int64
	if err := r.db.Model(&Account{}).Count(&count).Error; err != nil {
		return errors.NewDatabaseError("failed to count accounts", err)
	}
	if count > 0 {
		return nil
	}

	for _, s := range seedAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			return errors.NewInternalErrorWithCause("failed to hash seed password", err)
		}

		account := Account{
			Username:     s.Username,
			PasswordHash: string(hash),
			Role:         s.Role,
			Name:         s.Name,
			Email:        s.Email,
			MemberID:     s.MemberID,
			AccessLevel:  s.AccessLevel,
		}
		if err := r.db.Create(&account).Error; err != nil {
			return errors.NewDatabaseError("failed to seed account", err)
		}
	}
	return nil
}

// GetByUsername retrieves an account by its unique username. Returns nil
// without error when the username is not in the directory.
func (r *Repository) GetByUsername(username string) (*Account, error) {
	var account Account
	if err := r.db.Where("username = ?", username).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("failed to get account", err)
	}
	return &account, nil
}

// TouchLastLogin records a successful login time on the account
func (r *Repository) TouchLastLogin(username string, at time.Time) error {
	result := r.db.Model(&Account{}).Where("username = ?", username).Update("last_login", at)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to update last login", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("account")
	}
	return nil
}

// List returns every account ordered by username
func (r *Repository) List() ([]Account, error) {
	var accounts []Account
	if err := r.db.Order("username").Find(&accounts).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to list accounts", err)
	}
	return accounts, nil
}

// Count returns the number of directory entries
func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&Account{}).Count(&count).Error; err != nil {
		return 0, errors.NewDatabaseError("failed to count accounts", err)
	}
	return count, nil
}

// CountActive returns the number of accounts with a recorded login
func (r *Repository) CountActive() (int64, error) {
	var count int64
	if err := r.db.Model(&Account{}).Where("last_login IS NOT NULL").Count(&count).Error; err != nil {
		return 0, errors.NewDatabaseError("failed to count active accounts", err)
	}
	return count, nil
}

// AccessLevels returns the distinct access levels present in the directory
func (r *Repository) AccessLevels() ([]string, error) {
	var levels []string
	if err := r.db.Model(&Account{}).Distinct("access_level").Order("access_level").Pluck("access_level", &levels).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to list access levels", err)
	}
	return levels, nil
}
