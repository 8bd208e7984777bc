package types

import (
	"fmt"
	"strings"
	"time"
)

// Category classifies an entity. Only the values declared below are valid.
type Category string

// Entity categories.
const (
	CategoryLegal       Category = "legal"
	CategoryBoilerplate Category = "boilerplate"
	CategorySignature   Category = "signature"
	CategoryHeader      Category = "header"
	CategoryFooter      Category = "footer"
)

// validCategories is the set of recognized category values.
var validCategories = map[Category]bool{
	CategoryLegal:       true,
	CategoryBoilerplate: true,
	CategorySignature:   true,
	CategoryHeader:      true,
	CategoryFooter:      true,
}

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryLegal,
		CategoryBoilerplate,
		CategorySignature,
		CategoryHeader,
		CategoryFooter,
	}
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return validCategories[c]
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts s into a Category. Matching ignores case and
// surrounding whitespace. Returns ErrInvalidCategory for any other value.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// UnmarshalText rejects unknown categories while decoding JSON or YAML so
// that seed files and request bodies cannot carry an unchecked value.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText returns the category name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// Entity is a named, versioned, categorized unit of reusable text.
type Entity struct {
	ID          string    `json:"id" yaml:"id"`                               // Unique key, immutable after creation.
	Name        string    `json:"name" yaml:"name"`                           // Human-readable label.
	Category    Category  `json:"category" yaml:"category"`                   // One of the Category constants.
	Content     string    `json:"content" yaml:"content"`                     // Text body; may contain [PLACEHOLDER] tokens.
	Version     string    `json:"version" yaml:"version"`                     // Free-form; not ordered or checked.
	LastUpdated time.Time `json:"last_updated" yaml:"last_updated,omitempty"` // Timestamp of the last content change.
}

// Validate checks the fields a library requires before accepting the entity.
// Returns ErrInvalidID for an empty ID and ErrInvalidCategory for a category
// outside the declared set.
func (e Entity) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrInvalidID
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(e.Category))
	}
	return nil
}

// Matches reports whether query occurs in the entity's name or content,
// ignoring case. The empty query matches every entity.
func (e Entity) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.Content), q)
}
