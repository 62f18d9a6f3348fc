package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"lista/internal/domain/item"
)

type ItemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) ListByToken(ctx context.Context, token string) ([]*item.Item, error) {
	query := `
		SELECT id, list_token, name, quantity, checked, created_at, updated_at
		FROM list_items
		WHERE list_token = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []*item.Item{}
	for rows.Next() {
		var it item.Item
		err := rows.Scan(
			&it.ID, &it.ListToken, &it.Name, &it.Quantity, &it.Checked,
			&it.CreatedAt, &it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

func (r *ItemRepository) Add(ctx context.Context, token string, params item.AddItemParams) (*item.Item, error) {
	query := `
		INSERT INTO list_items (id, list_token, name, quantity, checked)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, list_token, name, quantity, checked, created_at, updated_at
	`

	var it item.Item
	err := r.db.QueryRowContext(
		ctx, query,
		ulid.Make().String(), token, strings.TrimSpace(params.Name), params.Quantity,
	).Scan(
		&it.ID, &it.ListToken, &it.Name, &it.Quantity, &it.Checked,
		&it.CreatedAt, &it.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	return &it, nil
}

func (r *ItemRepository) Update(ctx context.Context, id string, params item.UpdateItemParams) (*item.Item, error) {
	query := `
		UPDATE list_items
		SET name = $1,
		    quantity = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING id, list_token, name, quantity, checked, created_at, updated_at
	`

	var it item.Item
	err := r.db.QueryRowContext(
		ctx, query,
		strings.TrimSpace(params.Name), params.Quantity, id,
	).Scan(
		&it.ID, &it.ListToken, &it.Name, &it.Quantity, &it.Checked,
		&it.CreatedAt, &it.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, item.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return &it, nil
}

func (r *ItemRepository) SetChecked(ctx context.Context, id string, checked bool) (*item.Item, error) {
	query := `
		UPDATE list_items
		SET checked = $1,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING id, list_token, name, quantity, checked, created_at, updated_at
	`

	var it item.Item
	err := r.db.QueryRowContext(ctx, query, checked, id).Scan(
		&it.ID, &it.ListToken, &it.Name, &it.Quantity, &it.Checked,
		&it.CreatedAt, &it.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, item.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set checked: %w", err)
	}

	return &it, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM list_items WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return item.ErrItemNotFound
	}

	return nil
}

func (r *ItemRepository) ClearChecked(ctx context.Context, token string) (int64, error) {
	query := `DELETE FROM list_items WHERE list_token = $1 AND checked = TRUE`

	result, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return 0, fmt.Errorf("failed to clear checked items: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}
