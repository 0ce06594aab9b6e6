package domain

import (
	"time"
	"unicode/utf8"
)

const (
	MaxItemTitleLength       = 200
	MaxItemDescriptionLength = 2000
)

// Item is a titled record owned by exactly one user. The owner is fixed at
// creation and never reassigned.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewItem builds an item for the given owner from explicit fields.
func NewItem(ownerID int64, title, description string) (*Item, error) {
	now := time.Now().UTC()
	item := &Item{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the item's fields.
func (i *Item) Validate() error {
	if i.OwnerID <= 0 {
		return ErrInvalidOwnerID
	}
	return ValidateItemContent(i.Title, i.Description)
}

// ValidateItemContent checks the mutable fields of an item. Updates use it
// directly since they never touch the owner.
func ValidateItemContent(title, description string) error {
	if title == "" {
		return ErrEmptyItemTitle
	}
	if utf8.RuneCountInString(title) > MaxItemTitleLength {
		return ErrItemTitleTooLong
	}
	if utf8.RuneCountInString(description) > MaxItemDescriptionLength {
		return ErrItemDescTooLong
	}
	return nil
}
