package item

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrItemNotFound = errors.New("item not found")

// Item is one shopping-list entry. ListToken is the addressing key that
// scopes it to a single list; it is set at creation and never changes.
type Item struct {
	ID        string    `json:"id"`
	ListToken string    `json:"-"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Checked   bool      `json:"checked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AddItemParams struct {
	Name     string
	Quantity int
}

func (p *AddItemParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if len(p.Name) > 256 {
		return errors.New("name must be 256 characters or less")
	}
	if p.Quantity < 1 {
		return errors.New("quantity must be positive")
	}
	return nil
}

type UpdateItemParams struct {
	Name     string
	Quantity int
}

func (p *UpdateItemParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if len(p.Name) > 256 {
		return errors.New("name must be 256 characters or less")
	}
	if p.Quantity < 1 {
		return errors.New("quantity must be positive")
	}
	return nil
}

// ParseQuantity turns raw user input into a valid quantity. Anything that
// does not parse to a positive integer becomes 1 rather than an error.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
