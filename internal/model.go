package internal

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"worktracker/internal/cli/formatter"
	"worktracker/internal/errors"
	"worktracker/internal/export"
	"worktracker/internal/logging"
	"worktracker/internal/store"
	"worktracker/internal/worklog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/sirupsen/logrus"
)

// MsgTick refreshes the elapsed timer display. It never touches records.
type MsgTick struct{}

type Options struct {
	// Location renders and parses dates and times. Defaults to time.Local.
	Location  *time.Location
	ExportDir string
	Now       func() time.Time
	// SaveDefaults keeps details-panel changes for later runs. Optional.
	SaveDefaults func(worklog.Defaults) error
}

type screen int

const (
	screenMain screen = iota
	screenDetails
	screenManual
	screenEdit
	screenPrint
)

type Model struct {
	SelectedIndex int
	Elapsed       time.Duration
	Notice        string
	Err           error

	store *store.Store
	opts  Options
	keys  keyMap
	help  help.Model
	log   *logrus.Entry

	screen    screen
	form      *huh.Form
	details   *detailsInput
	entry     *worklog.EntryForm
	editingID string

	width  int
	height int
}

func NewModel(s *store.Store, opts Options) *Model {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	return &Model{
		Err:   s.LoadError(),
		store: s,
		opts:  opts,
		keys:  defaultKeyMap(),
		help:  help.New(),
		log:   logging.NewLogger("tui"),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		m.Elapsed = m.store.Elapsed()
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

// Records is the log table contents, most recent first.
func (m *Model) Records() []worklog.Record {
	return m.store.List()
}

func (m *Model) SelectedRecord() (worklog.Record, bool) {
	records := m.Records()
	if m.SelectedIndex >= 0 && m.SelectedIndex < len(records) {
		return records[m.SelectedIndex], true
	}
	return worklog.Record{}, false
}

// Close records a session still running when the program exits.
func (m *Model) Close(ctx context.Context) error {
	if !m.store.Running() {
		return nil
	}
	rec, err := m.store.StopTimer(ctx)
	if err != nil {
		m.log.WithError(err).Warn("Could not record running session on exit")
		return err
	}
	m.log.WithField("id", rec.ID).Info("Recorded running session on exit")
	return nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == screenPrint {
		return m.handlePrintInput(msg)
	}

	m.Notice, m.Err = "", nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.SelectedIndex > 0 {
			m.SelectedIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.SelectedIndex < m.store.Len()-1 {
			m.SelectedIndex++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggleTimer(context.Background())
	case key.Matches(msg, m.keys.Discard):
		m.discardTimer()
	case key.Matches(msg, m.keys.Details):
		return m, m.openDetails()
	case key.Matches(msg, m.keys.Manual):
		return m, m.openManual()
	case key.Matches(msg, m.keys.Edit):
		return m, m.openEdit()
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected(context.Background())
	case key.Matches(msg, m.keys.Export):
		m.exportCSV()
	case key.Matches(msg, m.keys.Print):
		m.screen = screenPrint
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) handlePrintInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q", "p":
		m.screen = screenMain
	}
	return m, nil
}

func (m *Model) toggleTimer(ctx context.Context) {
	if !m.store.Running() {
		if err := m.store.StartTimer(); err != nil {
			m.Err = err
			return
		}
		m.Elapsed = 0
		m.Notice = "Timer started"
		return
	}

	rec, err := m.store.StopTimer(ctx)
	if err != nil && !errors.Is(err, errors.ErrCodePersistence) {
		m.Err = err
		return
	}
	m.Elapsed = 0
	m.selectRecord(rec.ID)
	m.Notice = fmt.Sprintf("Logged %s (%s)", worklog.FormatClock(rec.DurationSeconds()), worklog.FormatMoney(rec.Pay()))
	m.Err = err
}

func (m *Model) discardTimer() {
	if err := m.store.DiscardTimer(); err != nil {
		m.Err = err
		return
	}
	m.Elapsed = 0
	m.Notice = "Timer discarded"
}

func (m *Model) deleteSelected(ctx context.Context) {
	rec, ok := m.SelectedRecord()
	if !ok {
		return
	}
	m.Err = m.store.Delete(ctx, rec.ID)
	if m.SelectedIndex >= m.store.Len() {
		m.SelectedIndex = max(m.store.Len()-1, 0)
	}
	m.Notice = "Deleted " + formatter.ShortID(rec.ID)
}

func (m *Model) exportCSV() {
	path, err := export.WriteFile(m.opts.ExportDir, m.opts.Now(), m.Records(), m.opts.Location)
	if err != nil {
		m.log.WithError(err).Error("Export failed")
		m.Err = err
		return
	}
	m.log.WithField("path", path).Info("Exported work logs")
	m.Notice = fmt.Sprintf("Exported %d work logs to %s", m.store.Len(), path)
}

func (m *Model) selectRecord(id string) {
	if idx := slices.IndexFunc(m.Records(), func(r worklog.Record) bool { return r.ID == id }); idx >= 0 {
		m.SelectedIndex = idx
	}
}

func (m *Model) openDetails() tea.Cmd {
	d := m.store.Defaults()
	m.details = &detailsInput{
		Company:  d.CompanyName,
		Employee: d.EmployeeName,
		Rate:     strconv.FormatFloat(d.HourlyRate, 'f', -1, 64),
	}
	return m.openForm(screenDetails)
}

func (m *Model) openManual() tea.Cmd {
	entry := worklog.NewEntryForm(m.opts.Now().In(m.opts.Location))
	m.entry = &entry
	return m.openForm(screenManual)
}

func (m *Model) openEdit() tea.Cmd {
	rec, ok := m.SelectedRecord()
	if !ok {
		return nil
	}
	entry := worklog.EntryFromRecord(rec, m.opts.Location)
	m.entry = &entry
	m.editingID = rec.ID
	return m.openForm(screenEdit)
}

func (m *Model) openForm(s screen) tea.Cmd {
	m.screen = s
	switch s {
	case screenDetails:
		m.form = newDetailsForm(m.details, m.store.Running())
	case screenManual:
		m.form = newEntryForm(m.entry, false)
	case screenEdit:
		m.form = newEntryForm(m.entry, true)
	}
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.details = nil
	m.entry = nil
	m.editingID = ""
	m.screen = screenMain
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.closeForm()
		m.Notice, m.Err = "Cancelled.", nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.submitForm(context.Background())
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// submitForm applies a completed form. A rejected form reopens with the
// user's input kept and the error shown above it.
func (m *Model) submitForm(ctx context.Context) tea.Cmd {
	var err error
	switch m.screen {
	case screenDetails:
		err = m.applyDetails()
	case screenManual:
		err = m.addManual(ctx)
	case screenEdit:
		err = m.saveEdit(ctx)
	}

	if err != nil && !errors.Is(err, errors.ErrCodePersistence) {
		m.Err = err
		return m.openForm(m.screen)
	}
	m.closeForm()
	m.Err = err
	return nil
}

func (m *Model) applyDetails() error {
	rate, err := worklog.ParseRate(m.details.Rate)
	if err != nil {
		return err
	}
	d := worklog.Defaults{
		CompanyName:  strings.TrimSpace(m.details.Company),
		EmployeeName: strings.TrimSpace(m.details.Employee),
		HourlyRate:   rate,
	}
	if err := m.store.SetDefaults(d); err != nil {
		return err
	}
	m.Notice = "Details updated"

	if m.opts.SaveDefaults != nil {
		if err := m.opts.SaveDefaults(d); err != nil {
			m.log.WithError(err).Warn("Could not save details")
			m.Notice = "Details updated for this session only"
		}
	}
	return nil
}

func (m *Model) addManual(ctx context.Context) error {
	start, end, rate, err := m.entry.ParseManual(m.opts.Location)
	if err != nil {
		return err
	}
	rec, err := m.store.AddManual(ctx, start, end, rate)
	if rec.ID != "" {
		m.selectRecord(rec.ID)
		m.Notice = "Added " + formatter.RecordSummary(rec, m.opts.Location)
	}
	return err
}

func (m *Model) saveEdit(ctx context.Context) error {
	fields, err := m.entry.ParseEdit(m.opts.Location)
	if err != nil {
		return err
	}
	rec, err := m.store.Update(ctx, m.editingID, fields)
	if rec.ID != "" {
		m.selectRecord(rec.ID)
		m.Notice = "Updated " + formatter.RecordSummary(rec, m.opts.Location)
	}
	return err
}
