package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"worktracker/internal/errors"
	"worktracker/internal/storage"
	"worktracker/internal/store"
	"worktracker/internal/testutil"
	"worktracker/internal/worklog"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

// testApp wires an App backed by an in-memory database.
func testApp(t *testing.T) *App {
	t.Helper()
	return testAppOn(t, testutil.NewTestKV(t))
}

// testAppOn opens an App on kv, as a fresh process would.
func testAppOn(t *testing.T, kv storage.KV) *App {
	t.Helper()
	repo := storage.NewRecordRepository(kv)
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	s := store.Open(context.Background(), repo,
		store.WithClock(func() time.Time { return testNow }),
		store.WithDefaults(worklog.Defaults{CompanyName: "Acme", EmployeeName: "Jane", HourlyRate: 15}),
		store.WithLogger(logrus.NewEntry(quiet)),
	)
	return &App{
		Store:     s,
		Location:  time.UTC,
		ExportDir: t.TempDir(),
		Now:       func() time.Time { return testNow },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func onlyRecord(t *testing.T, app *App) worklog.Record {
	t.Helper()
	list := app.Store.List()
	require.Len(t, list, 1)
	return list[0]
}

func TestRootCmd_NonInteractivePrintsHelp(t *testing.T) {
	out, err := executeCmd(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands")
	assert.Contains(t, out, "export")
}

func TestAddCmd_Defaults(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "add")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")

	r := onlyRecord(t, app)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), r.StartTime.UTC())
	assert.Equal(t, int64(8*3600), r.DurationSeconds())
	assert.Equal(t, "Acme", r.CompanyName)
	assert.Equal(t, 15.0, r.HourlyRate)
	assert.Equal(t, "120.00", r.Pay().StringFixed(2))
}

func TestAddCmd_Flags(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "add",
		"--date", "2024-02-28", "--start", "10:00", "--end", "12:00:30",
		"--rate", "$15", "--company", "Globex", "--employee", "Bob")
	require.NoError(t, err)

	r := onlyRecord(t, app)
	assert.Equal(t, int64(7230), r.DurationSeconds())
	assert.Equal(t, "Globex", r.CompanyName)
	assert.Equal(t, "Bob", r.EmployeeName)
	assert.Equal(t, "30.13", r.Pay().StringFixed(2))
}

func TestAddCmd_Rejected(t *testing.T) {
	cases := map[string][]string{
		"end before start": {"--start", "17:00", "--end", "09:00"},
		"bad date":         {"--date", "03/01/2024"},
		"bad rate":         {"--rate", "ten"},
		"negative rate":    {"--rate", "-1"},
		"blank start":      {"--start", ""},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			app := testApp(t)
			_, err := executeCmd(t, app, append([]string{"add"}, args...)...)
			assert.True(t, errors.Is(err, errors.ErrCodeValidation), "got %v", err)
			assert.Zero(t, app.Store.Len())
		})
	}
}

func TestEditCmd(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "add")
	require.NoError(t, err)
	before := onlyRecord(t, app)

	out, err := executeCmd(t, app, "edit", before.ID[:6], "--end", "10:00", "--company", "Initech")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated")

	after := onlyRecord(t, app)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.StartTime, after.StartTime)
	assert.Equal(t, int64(3600), after.DurationSeconds())
	assert.Equal(t, "Initech", after.CompanyName)
	assert.Equal(t, "Jane", after.EmployeeName)
}

func TestEditCmd_RejectedKeepsRecord(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "add")
	require.NoError(t, err)
	before := onlyRecord(t, app)

	_, err = executeCmd(t, app, "edit", before.ID, "--end", "08:00")
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	_, err = executeCmd(t, app, "edit", before.ID, "--employee", " ")
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	assert.Equal(t, before, onlyRecord(t, app))
}

func TestEditCmd_UnknownID(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "edit", "nope", "--rate", "5")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestRemoveCmd(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "add", "--date", "2024-02-28")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "add", "--date", "2024-02-29")
	require.NoError(t, err)

	latest := app.Store.List()[0]
	out, err := executeCmd(t, app, "rm", latest.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")

	remaining := onlyRecord(t, app)
	assert.Equal(t, 28, remaining.StartTime.UTC().Day())
}

func TestListCmd(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "add", "--start", "10:00", "--end", "12:00:30")
	require.NoError(t, err)

	for _, name := range []string{"list", "print"} {
		out, err := executeCmd(t, app, name)
		require.NoError(t, err)
		assert.Contains(t, out, "WORK LOGS")
		assert.Contains(t, out, "2h 0m")
		assert.Contains(t, out, "$30.13")
		assert.Contains(t, out, "Total Pay:")
	}
}

func TestListCmd_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No work logs yet.")
}

func TestTotalCmd_SumsBeforeRounding(t *testing.T) {
	app := testApp(t)
	for _, date := range []string{"2024-02-27", "2024-02-28"} {
		_, err := executeCmd(t, app, "add", "--date", date, "--start", "09:00:00", "--end", "09:33:21", "--rate", "18")
		require.NoError(t, err)
	}

	out, err := executeCmd(t, app, "total")
	require.NoError(t, err)
	assert.Equal(t, "$20.01\n", out)
}

func TestExportCmd_Stdout(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "add", "--company", `Ac"me`)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "export", "--stdout")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Company,Employee,Date,Start Time,End Time,Duration (seconds),Duration (HH:MM:SS)", lines[0])
	assert.Equal(t, `"Ac""me","Jane","2024-03-01","09:00:00","17:00:00",28800,"08:00:00"`, lines[1])
}

func TestExportCmd_File(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "add")
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	out, err := executeCmd(t, app, "export", "--dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "work_logs_2024-03-01.csv")
	assert.Contains(t, out, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Company,Employee"))
}

func TestExportCmd_DefaultDir(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "export")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(app.ExportDir, "work_logs_2024-03-01.csv"))
	assert.NoError(t, err)
}

func TestRmCmd_LegacyRecordAcrossRuns(t *testing.T) {
	kv := testutil.NewTestKV(t)
	raw := `[{"startTime":1700000000000,"endTime":1700001800000,"duration":1800,"companyName":"Acme","employeeName":"Jane","hourlyRate":20}]`
	require.NoError(t, kv.Set(context.Background(), storage.WorkLogsKey, []byte(raw)))

	listed := onlyRecord(t, testAppOn(t, kv))
	require.NotEmpty(t, listed.ID)

	next := testAppOn(t, kv)
	out, err := executeCmd(t, next, "rm", listed.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")
	assert.Zero(t, next.Store.Len())
}
