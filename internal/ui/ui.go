package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/sysmoni/internal/config"
	apperrors "github.com/Dicklesworthstone/sysmoni/internal/errors"
	"github.com/Dicklesworthstone/sysmoni/internal/model"
	"github.com/Dicklesworthstone/sysmoni/internal/monitor"
)

// Model renders the monitor's latest snapshot and history. All Monitor
// calls happen on the Bubble Tea update goroutine.
type Model struct {
	ctx  context.Context
	mon  *monitor.Monitor
	cfg  config.Config
	keys keyMap
	help help.Model
	now  func() time.Time

	sortBy  monitor.SortKey
	procs   []model.Process
	cursor  int
	warning string
	width   int
	height  int
}

func New(ctx context.Context, mon *monitor.Monitor, cfg config.Config) *Model {
	return &Model{
		ctx:    ctx,
		mon:    mon,
		cfg:    cfg,
		keys:   defaultKeyMap(),
		help:   help.New(),
		now:    time.Now,
		sortBy: monitor.ParseSortKey(cfg.Sort),
		width:  120,
		height: 40,
	}
}

// Messages
type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return tickCmd(m.cfg.Refresh) }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tickMsg:
		if m.mon.Drain() > 0 {
			m.refreshProcesses(true)
		}
		return m, tickCmd(m.cfg.Refresh)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	// An open warning blocks every action until it is acknowledged.
	if m.warning != "" {
		if key.Matches(msg, m.keys.Acknowledge) {
			m.warning = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.procs)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Sort):
		if m.sortBy == monitor.SortByCPU {
			m.sortBy = monitor.SortByMemory
		} else {
			m.sortBy = monitor.SortByCPU
		}
		m.refreshProcesses(true)
	case key.Matches(msg, m.keys.Refresh):
		m.refreshProcesses(false)
	case key.Matches(msg, m.keys.Kill):
		if p, ok := m.selected(); ok {
			if err := m.mon.Kill(m.ctx, p.PID); err == nil {
				m.refreshProcesses(false)
			}
		}
	case key.Matches(msg, m.keys.Logging):
		m.mon.ToggleLogging()
	case key.Matches(msg, m.keys.ClearLog):
		m.mon.ClearLog()
	case key.Matches(msg, m.keys.Save):
		if _, err := m.mon.SaveSnapshot(m.cfg.ExportDir); err != nil {
			m.warn(err)
		}
	case key.Matches(msg, m.keys.ExportLog):
		if len(m.mon.Log()) == 0 {
			m.warn(apperrors.ErrNoData)
			break
		}
		if err := m.mon.SaveLog(m.logExportPath()); err != nil {
			m.warn(err)
		}
	}
	return m, nil
}

// refreshProcesses rebuilds the process table. With useLatest it never
// resamples and does nothing before the first snapshot.
func (m *Model) refreshProcesses(useLatest bool) {
	if _, ok := m.mon.Latest(); useLatest && !ok {
		return
	}
	procs, err := m.mon.Processes(m.ctx, monitor.ProcessQuery{
		Sort:      m.sortBy,
		Filter:    m.cfg.Filter,
		UseLatest: useLatest,
	})
	if err != nil {
		return
	}
	m.procs = procs
	if m.cursor >= len(m.procs) {
		m.cursor = max(0, len(m.procs)-1)
	}
}

func (m *Model) selected() (model.Process, bool) {
	if m.cursor < 0 || m.cursor >= len(m.procs) {
		return model.Process{}, false
	}
	return m.procs[m.cursor], true
}

func (m *Model) warn(err error) {
	switch {
	case errors.Is(err, apperrors.ErrNoData):
		m.warning = "No data available yet. Wait for a snapshot or start logging first."
	default:
		m.warning = fmt.Sprintf("Export failed: %v", err)
	}
}

func (m *Model) logExportPath() string {
	return filepath.Join(m.cfg.ExportDir, fmt.Sprintf("snapshot_log_%d.json", m.now().Unix()))
}

// RunTUI starts the Bubble Tea program and blocks until the user quits or
// ctx is cancelled.
func RunTUI(ctx context.Context, mon *monitor.Monitor, cfg config.Config) error {
	prog := tea.NewProgram(New(ctx, mon, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
