package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryGeneral  Category = "General"
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryIdeas    Category = "Ideas"
	CategoryTodo     Category = "Todo"

	// CategoryAll only exists as a filter value; no note carries it.
	CategoryAll Category = "All"
)

// Categories lists the categories a note may have, in display order.
var Categories = []Category{CategoryGeneral, CategoryWork, CategoryPersonal, CategoryIdeas, CategoryTodo}

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyTitle      = errors.New("title is required")
	ErrEmptyContent    = errors.New("content is required")
)

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches s case-insensitively against Categories and "All".
// An empty string means General.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryGeneral, nil
	}
	if strings.EqualFold(s, string(CategoryAll)) {
		return CategoryAll, nil
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

type Note struct {
	ID        ID        `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// UnmarshalJSON accepts both "_id" and "id" for the identifier.
func (n *Note) UnmarshalJSON(b []byte) error {
	type plain Note
	var aux struct {
		plain
		PlainID ID `json:"id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*n = Note(aux.plain)
	if n.ID == "" {
		n.ID = aux.PlainID
	}
	return nil
}

// Draft is what the editor sends to create or update a note.
type Draft struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category Category `json:"category"`
}

// DraftFrom copies the editable fields of n.
func DraftFrom(n Note) Draft {
	return Draft{Title: n.Title, Content: n.Content, Category: n.Category}
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(d.Content) == "" {
		return ErrEmptyContent
	}
	if !d.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)
	}
	return nil
}
