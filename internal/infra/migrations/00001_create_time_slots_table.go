package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTimeSlotsTable, downCreateTimeSlotsTable)
}

func upCreateTimeSlotsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE IF NOT EXISTS time_slots (
	  id BIGSERIAL PRIMARY KEY,
	  court_id BIGINT NOT NULL,
	  slot_date DATE NOT NULL,
	  start_time TIME NOT NULL,
	  end_time TIME NOT NULL,
	  status VARCHAR(20) NOT NULL DEFAULT 'available',
	  price NUMERIC(10, 2) NOT NULL DEFAULT 0,
	  booking_ref VARCHAR(64),
	  block_reason VARCHAR(500),
	  block_label VARCHAR(100),
	  max_bookings INT NOT NULL DEFAULT 1,
	  current_bookings INT NOT NULL DEFAULT 0,
	  created_by BIGINT,
	  updated_by BIGINT,
	  deleted_at TIMESTAMP WITH TIME ZONE,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL,
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
	  CONSTRAINT chk_time_slots_interval CHECK (start_time < end_time),
	  CONSTRAINT chk_time_slots_status CHECK (status IN ('available', 'booked', 'blocked', 'maintenance')),
	  CONSTRAINT chk_time_slots_capacity CHECK (current_bookings >= 0 AND current_bookings <= max_bookings)
	);

	CREATE UNIQUE INDEX IF NOT EXISTS uq_time_slots_court_date_start
	  ON time_slots (court_id, slot_date, start_time)
	  WHERE deleted_at IS NULL;

	CREATE INDEX IF NOT EXISTS idx_time_slots_court_date_status
	  ON time_slots (court_id, slot_date, status)
	  WHERE deleted_at IS NULL;

	CREATE INDEX IF NOT EXISTS idx_time_slots_slot_date
	  ON time_slots (slot_date)
	  WHERE deleted_at IS NULL AND booking_ref IS NULL;
	`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	return nil
}

func downCreateTimeSlotsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS time_slots;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
