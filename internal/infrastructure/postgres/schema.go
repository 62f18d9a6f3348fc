package postgres

import (
	"context"
	"fmt"
)

// NotifyChannel is the NOTIFY channel that carries the list token of every
// mutated list. A trigger fires it so no code path can mutate items without
// waking the live views for that token.
const NotifyChannel = "list_items_changed"

const schemaDDL = `
CREATE TABLE IF NOT EXISTS list_items (
	id         TEXT PRIMARY KEY,
	list_token TEXT NOT NULL,
	name       TEXT NOT NULL,
	quantity   INTEGER NOT NULL DEFAULT 1 CHECK (quantity > 0),
	checked    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS list_items_by_token ON list_items (list_token, created_at, id);

CREATE OR REPLACE FUNCTION notify_list_items_changed() RETURNS trigger AS $$
BEGIN
	IF TG_OP = 'DELETE' THEN
		PERFORM pg_notify('list_items_changed', OLD.list_token);
		RETURN OLD;
	END IF;
	PERFORM pg_notify('list_items_changed', NEW.list_token);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS list_items_changed ON list_items;
CREATE TRIGGER list_items_changed
	AFTER INSERT OR UPDATE OR DELETE ON list_items
	FOR EACH ROW EXECUTE FUNCTION notify_list_items_changed();
`

// InitSchema creates the items table, the token index, and the change
// trigger. Safe to run on every startup.
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.DB.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
