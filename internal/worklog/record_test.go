package worklog

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"
	"time"

	"worktracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.UnixMilli(1_700_000_000_000)

func mustRecord(t *testing.T, id string, start time.Time, d time.Duration, rate float64) Record {
	t.Helper()
	r, err := NewRecord(id, Fields{StartTime: start, EndTime: start.Add(d), HourlyRate: rate})
	require.NoError(t, err)
	return r
}

// TestNewRecord_DurationIsFlooredSeconds property-tests the derivation
// duration == floor((end-start)/1000ms) over random valid spans.
func TestNewRecord_DurationIsFlooredSeconds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 500; trial++ {
		startMs := rng.Int63n(2_000_000_000_000)
		spanMs := rng.Int63n(48*3600*1000) + 1
		start := time.UnixMilli(startMs)
		end := time.UnixMilli(startMs + spanMs)

		r, err := NewRecord("id", Fields{StartTime: start, EndTime: end})
		require.NoError(t, err, "trial %d", trial)
		assert.Equal(t, spanMs/1000, r.DurationSeconds(), "trial %d: span %dms", trial, spanMs)
	}
}

func TestNewRecord_SubSecondSpanHasZeroDuration(t *testing.T) {
	r := mustRecord(t, "id", t0, 999*time.Millisecond, 10)
	assert.Equal(t, int64(0), r.DurationSeconds())
}

func TestNewRecord_TruncatesToMilliseconds(t *testing.T) {
	start := t0.Add(123456 * time.Nanosecond)
	r := mustRecord(t, "id", start, time.Hour, 0)
	assert.Equal(t, t0.UnixMilli(), r.StartTime.UnixMilli())
	assert.Equal(t, 0, r.StartTime.Nanosecond()%int(time.Millisecond))
}

func TestFields_Validate(t *testing.T) {
	tests := []struct {
		name    string
		fields  Fields
		wantMsg string
	}{
		{"valid", Fields{StartTime: t0, EndTime: t0.Add(time.Second)}, ""},
		{"zero rate allowed", Fields{StartTime: t0, EndTime: t0.Add(time.Second), HourlyRate: 0}, ""},
		{"end equals start", Fields{StartTime: t0, EndTime: t0}, "end time must be after start time"},
		{"end before start", Fields{StartTime: t0, EndTime: t0.Add(-time.Minute)}, "end time must be after start time"},
		{"negative rate", Fields{StartTime: t0, EndTime: t0.Add(time.Hour), HourlyRate: -1}, "hourly rate must not be negative"},
		{"NaN rate", Fields{StartTime: t0, EndTime: t0.Add(time.Hour), HourlyRate: math.NaN()}, "hourly rate must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeValidation))
			assert.Equal(t, tt.wantMsg, errors.UserMessage(err))
		})
	}
}

func TestNewRecord_SameMillisecondRejected(t *testing.T) {
	_, err := NewRecord("id", Fields{StartTime: t0, EndTime: t0.Add(500 * time.Microsecond)})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
}

func TestRecord_ReplaceKeepsIDAndRederivesDuration(t *testing.T) {
	r := mustRecord(t, "abc", t0, time.Hour, 20)

	f := r.Fields()
	f.EndTime = t0.Add(90 * time.Minute)
	f.CompanyName = "Acme"
	updated, err := r.Replace(f)
	require.NoError(t, err)

	assert.Equal(t, "abc", updated.ID)
	assert.Equal(t, int64(5400), updated.DurationSeconds())
	assert.Equal(t, "Acme", updated.CompanyName)
	assert.Equal(t, int64(3600), r.DurationSeconds(), "original is untouched")
}

func TestRecord_JSONRoundTrip(t *testing.T) {
	r, err := NewRecord("abc", Fields{
		StartTime:    t0,
		EndTime:      t0.Add(7230 * time.Second),
		CompanyName:  `Ac"me`,
		EmployeeName: "Jane",
		HourlyRate:   15,
	})
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "abc",
		"startTime": 1700000000000,
		"endTime": 1700007230000,
		"duration": 7230,
		"companyName": "Ac\"me",
		"employeeName": "Jane",
		"hourlyRate": 15
	}`, string(data))

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)
}

func TestRecord_UnmarshalLegacyBrowserFormat(t *testing.T) {
	// No id, duration disagreeing with the span, null rate.
	data := `{"startTime":1700000000000,"endTime":1700003600000,"duration":1,"companyName":"A","employeeName":"B","hourlyRate":null}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(data), &r))
	assert.Empty(t, r.ID)
	assert.Equal(t, int64(3600), r.DurationSeconds())
	assert.Equal(t, 0.0, r.HourlyRate)
}

func TestDefaults_ApplyNames(t *testing.T) {
	d := Defaults{CompanyName: "Acme", EmployeeName: "Jane", HourlyRate: 25}

	tf := d.TimerFields(t0, t0.Add(time.Hour))
	assert.Equal(t, "Acme", tf.CompanyName)
	assert.Equal(t, "Jane", tf.EmployeeName)
	assert.Equal(t, 25.0, tf.HourlyRate)

	mf := d.ManualFields(t0, t0.Add(time.Hour), 40)
	assert.Equal(t, "Acme", mf.CompanyName)
	assert.Equal(t, 40.0, mf.HourlyRate)
}
