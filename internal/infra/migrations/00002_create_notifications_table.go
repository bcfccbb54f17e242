package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateNotificationsTable, downCreateNotificationsTable)
}

func upCreateNotificationsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE IF NOT EXISTS notifications (
	  id BIGSERIAL PRIMARY KEY,
	  user_id BIGINT NOT NULL,
	  type VARCHAR(50) NOT NULL,
	  message TEXT NOT NULL,
	  payload JSONB NOT NULL DEFAULT '{}'::jsonb,
	  is_read BOOLEAN NOT NULL DEFAULT FALSE,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notifications_user_created
	  ON notifications (user_id, created_at DESC);
	`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	return nil
}

func downCreateNotificationsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS notifications;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
