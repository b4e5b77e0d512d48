package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"worktracker/internal/worklog"
)

// WorkLogsKey is the fixed key the record collection is stored under.
const WorkLogsKey = "workLogs"

// ErrCorrupt is returned by Load when the stored value is not a record array.
var ErrCorrupt = errors.New("stored work logs are malformed")

// RecordRepository persists the whole record collection as one JSON array.
type RecordRepository struct {
	kv  KV
	key string
}

func NewRecordRepository(kv KV) *RecordRepository {
	return &RecordRepository{kv: kv, key: WorkLogsKey}
}

// Load returns the stored collection. A missing key yields an empty
// collection and no error.
func (r *RecordRepository) Load(ctx context.Context) ([]worklog.Record, error) {
	data, err := r.kv.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []worklog.Record{}, nil
		}
		return nil, fmt.Errorf("loading work logs: %w", err)
	}

	var records []worklog.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if records == nil {
		records = []worklog.Record{}
	}
	return records, nil
}

// Save overwrites the stored collection with records.
func (r *RecordRepository) Save(ctx context.Context, records []worklog.Record) error {
	if records == nil {
		records = []worklog.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding work logs: %w", err)
	}
	if err := r.kv.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("saving work logs: %w", err)
	}
	return nil
}
