package item

import (
	"context"
)

// Repository is the durable store contract. Every operation is scoped by a
// list token or a single item id; mutations are atomic per item.
type Repository interface {
	// ListByToken returns every item under token in insertion order.
	// An unknown token yields an empty slice, never an error.
	ListByToken(ctx context.Context, token string) ([]*Item, error)

	// Add inserts a new unchecked item under token.
	Add(ctx context.Context, token string, params AddItemParams) (*Item, error)

	// Update patches name and quantity; checked is left alone.
	// Returns ErrItemNotFound when id no longer exists.
	Update(ctx context.Context, id string, params UpdateItemParams) (*Item, error)

	// SetChecked patches only the checked flag.
	SetChecked(ctx context.Context, id string, checked bool) (*Item, error)

	// Delete removes one item permanently.
	Delete(ctx context.Context, id string) error

	// ClearChecked removes every checked item under token in one atomic
	// sweep and reports how many were removed.
	ClearChecked(ctx context.Context, token string) (int64, error)
}
