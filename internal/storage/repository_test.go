package storage

import (
	"context"
	"testing"
	"time"

	"worktracker/internal/worklog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords(t *testing.T) []worklog.Record {
	t.Helper()
	start := time.UnixMilli(1_700_000_000_000)
	var out []worklog.Record
	for i, name := range []string{`Ac"me`, "Globex, Inc.", ""} {
		r, err := worklog.NewRecord(name+"-id", worklog.Fields{
			StartTime:    start.Add(time.Duration(i) * time.Hour),
			EndTime:      start.Add(time.Duration(i)*time.Hour + 45*time.Minute + 500*time.Millisecond),
			CompanyName:  name,
			EmployeeName: "Jane",
			HourlyRate:   float64(10 * i),
		})
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

func TestRecordRepository_LoadMissingIsEmpty(t *testing.T) {
	repo := NewRecordRepository(NewMemoryKV())

	records, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestRecordRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(newTestSQLite(t))
	records := testRecords(t)

	require.NoError(t, repo.Save(ctx, records))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)

	require.Len(t, loaded, len(records))
	for i := range records {
		assert.Equal(t, records[i], loaded[i], "record %d", i)
	}
}

func TestRecordRepository_SaveOverwritesWholeCollection(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(NewMemoryKV())
	records := testRecords(t)

	require.NoError(t, repo.Save(ctx, records))
	require.NoError(t, repo.Save(ctx, records[:1]))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestRecordRepository_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewRecordRepository(kv)

	require.NoError(t, repo.Save(ctx, nil))
	raw, err := kv.Get(ctx, WorkLogsKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestRecordRepository_MalformedData(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"{not json", `{"startTime": 1}`, `"workLogs"`} {
		kv := NewMemoryKV()
		require.NoError(t, kv.Set(ctx, WorkLogsKey, []byte(raw)))

		_, err := NewRecordRepository(kv).Load(ctx)
		assert.ErrorIs(t, err, ErrCorrupt, "raw %q", raw)
	}
}

func TestRecordRepository_NullIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, WorkLogsKey, []byte("null")))

	records, err := NewRecordRepository(kv).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordRepository_ReadsBrowserExport(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	raw := `[{"startTime":1700000000000,"endTime":1700001800000,"duration":1800,"companyName":"Acme","employeeName":"Jane","hourlyRate":20}]`
	require.NoError(t, kv.Set(ctx, WorkLogsKey, []byte(raw)))

	records, err := NewRecordRepository(kv).Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].ID)
	assert.Equal(t, int64(1800), records[0].DurationSeconds())
	assert.Equal(t, "10.00", records[0].Pay().StringFixed(2))
}
