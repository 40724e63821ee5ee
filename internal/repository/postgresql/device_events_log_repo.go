package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	"gopkg.in/guregu/null.v4"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
)

type pgDeviceEventLogRepository struct {
	db *sql.DB
}

func NewPgDeviceEventLogRepository(db *sql.DB) repository.DeviceEventLogRepository {
	return &pgDeviceEventLogRepository{db: db}
}

func (r *pgDeviceEventLogRepository) Create(ctx context.Context, entry *domain.DeviceEventLog) error {
	query := `INSERT INTO device_events_log
                (received_at, device_id, message_type, payload, processed_status, processing_notes)
               VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var payload []byte
	if len(entry.Payload) > 0 {
		payload = entry.Payload
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		entry.ReceivedAt,
		null.NewString(entry.DeviceID, entry.DeviceID != ""),
		null.NewString(entry.MessageType, entry.MessageType != ""),
		payload,
		entry.ProcessedStatus,
		null.NewString(entry.ProcessingNotes, entry.ProcessingNotes != ""),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("DeviceEventLogRepository.Create: %w", err)
	}
	entry.ID = id
	return nil
}
