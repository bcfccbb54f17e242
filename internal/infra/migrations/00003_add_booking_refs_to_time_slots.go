package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddBookingRefs, downAddBookingRefs)
}

// booking_refs хранит ссылку каждого занятого места, booking_ref остается ссылкой последнего бронирования
func upAddBookingRefs(ctx context.Context, tx *sql.Tx) error {
	query := `
	ALTER TABLE time_slots
	  ADD COLUMN IF NOT EXISTS booking_refs TEXT[] NOT NULL DEFAULT '{}';

	UPDATE time_slots
	  SET booking_refs = ARRAY[booking_ref]
	  WHERE booking_ref IS NOT NULL AND current_bookings > 0 AND cardinality(booking_refs) = 0;
	`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	return nil
}

func downAddBookingRefs(ctx context.Context, tx *sql.Tx) error {
	query := `ALTER TABLE time_slots DROP COLUMN IF EXISTS booking_refs;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
