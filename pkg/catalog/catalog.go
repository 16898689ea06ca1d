// Package catalog provides the book catalog store and its query
// operations. The catalog is seeded at startup and read-only afterwards;
// no checkout or return flow mutates availability.
package catalog

import (
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/Vishu-0105/Library-Testing-System/pkg/errors"
)

// Availability is the tri-state availability filter
type Availability string

const (
	AvailabilityAny         Availability = "any"
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

// ParseAvailability maps form values onto the tri-state filter. The
// legacy form value "borrowed" is accepted as unavailable; anything
// unrecognized (including "") means no filter.
func ParseAvailability(value string) Availability {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "available":
		return AvailabilityAvailable
	case "unavailable", "borrowed":
		return AvailabilityUnavailable
	default:
		return AvailabilityAny
	}
}

// Book is one catalog record. IDs are unique and stable for the process
// lifetime.
type Book struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"not null" json:"title"`
	Author    string `gorm:"not null" json:"author"`
	ISBN      string `gorm:"uniqueIndex" json:"isbn"`
	Available bool   `json:"available"`
	Category  string `gorm:"not null" json:"category"`
}

var seedBooks = []Book{
	{ID: 1, Title: "Advanced Python Programming", Author: "Luciano Ramalho", ISBN: "978-1492051282", Available: true, Category: "Programming"},
	{ID: 2, Title: "Software Engineering Best Practices", Author: "Robert Martin", ISBN: "978-0134494166", Available: false, Category: "Engineering"},
	{ID: 3, Title: "Modern Web Development", Author: "Ethan Brown", ISBN: "978-1491949308", Available: true, Category: "Web Development"},
	{ID: 4, Title: "Machine Learning Fundamentals", Author: "Andreas Müller", ISBN: "978-1449369415", Available: true, Category: "AI/ML"},
	{ID: 5, Title: "Cloud Computing Architecture", Author: "Thomas Erl", ISBN: "978-0133387520", Available: false, Category: "Cloud"},
	{ID: 6, Title: "Data Science with Python", Author: "Wes McKinney", ISBN: "978-1491957660", Available: true, Category: "Data Science"},
	{ID: 7, Title: "Cybersecurity Fundamentals", Author: "Charles Brooks", ISBN: "978-1119362395", Available: true, Category: "Security"},
	{ID: 8, Title: "DevOps Engineering", Author: "Gene Kim", ISBN: "978-1942788003", Available: false, Category: "DevOps"},
}

// Counts summarizes the catalog for dashboards and status views
type Counts struct {
	Total      int `json:"total_books"`
	Available  int `json:"available_books"`
	Borrowed   int `json:"borrowed_books"`
	Categories int `json:"total_categories"`
}

// Store provides read access to the book catalog
type Store struct {
	db *gorm.DB
}

// NewStore migrates the book schema and seeds the catalog if empty
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Book{}); err != nil {
		return nil, errors.NewDatabaseError("failed to migrate book schema", err)
	}

	var count int64
	if err := db.Model(&Book{}).Count(&count).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to count books", err)
	}
	if count == 0 {
		if err := db.Create(&seedBooks).Error; err != nil {
			return nil, errors.NewDatabaseError("failed to seed catalog", err)
		}
	}

	return &Store{db: db}, nil
}

// All returns the full catalog in storage order
func (s *Store) All() ([]Book, error) {
	var books []Book
	if err := s.db.Order("id").Find(&books).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to list books", err)
	}
	return books, nil
}

// Search filters the catalog. Query matches case-insensitively as a
// substring of title, author or category; category is an exact match;
// availability is tri-state. Storage order is preserved and there is no
// pagination.
func (s *Store) Search(query, category string, availability Availability) ([]Book, error) {
	books, err := s.All()
	if err != nil {
		return nil, err
	}
	return Filter(books, query, category, availability), nil
}

// Filter applies the catalog query semantics to an in-memory record set
func Filter(books []Book, query, category string, availability Availability) []Book {
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]Book, 0, len(books))
	for _, book := range books {
		if query != "" &&
			!strings.Contains(strings.ToLower(book.Title), query) &&
			!strings.Contains(strings.ToLower(book.Author), query) &&
			!strings.Contains(strings.ToLower(book.Category), query) {
			continue
		}
		if category != "" && book.Category != category {
			continue
		}
		switch availability {
		case AvailabilityAvailable:
			if !book.Available {
				continue
			}
		case AvailabilityUnavailable:
			if book.Available {
				continue
			}
		}
		filtered = append(filtered, book)
	}
	return filtered
}

// Categories returns the sorted distinct category labels
func (s *Store) Categories() ([]string, error) {
	books, err := s.All()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var categories []string
	for _, book := range books {
		if _, ok := seen[book.Category]; !ok {
			seen[book.Category] = struct{}{}
			categories = append(categories, book.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// Counts returns catalog totals for dashboards and status endpoints
func (s *Store) Counts() (Counts, error) {
	books, err := s.All()
	if err != nil {
		return Counts{}, err
	}

	counts := Counts{Total: len(books)}
	seen := make(map[string]struct{})
	for _, book := range books {
		if book.Available {
			counts.Available++
		} else {
			counts.Borrowed++
		}
		seen[book.Category] = struct{}{}
	}
	counts.Categories = len(seen)
	return counts, nil
}

// Recent returns the first n catalog records in storage order
func (s *Store) Recent(n int) ([]Book, error) {
	books, err := s.All()
	if err != nil {
		return nil, err
	}
	if n > len(books) {
		n = len(books)
	}
	return books[:n], nil
}
