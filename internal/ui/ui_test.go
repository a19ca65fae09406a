package ui

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/sysmoni/internal/collector"
	"github.com/Dicklesworthstone/sysmoni/internal/config"
	"github.com/Dicklesworthstone/sysmoni/internal/model"
	"github.com/Dicklesworthstone/sysmoni/internal/monitor"
)

type stubSampler struct {
	snap  model.Snapshot
	calls int
}

func (s *stubSampler) Snapshot(ctx context.Context) (model.Snapshot, error) {
	s.calls++
	return s.snap, nil
}

type recordingTerminator struct {
	pids []int32
}

func (r *recordingTerminator) Terminate(ctx context.Context, pid int32) error {
	r.pids = append(r.pids, pid)
	return nil
}

func testSnapshot() model.Snapshot {
	return model.Snapshot{
		Timestamp: time.Unix(1_700_000_000, 0),
		Platform:  model.Platform{System: "Linux", Node: "box01", Release: "6.1", Machine: "x86_64"},
		CPU:       model.CPU{TotalPercent: 42, PerCore: []float64{40, 44}, Count: 2},
		Memory: model.Memory{
			Virtual: model.MemoryStat{Total: 8 << 30, Used: 2 << 30, Percent: 25},
		},
		Disk: model.Disk{
			Partitions: []model.Partition{
				{Device: "/dev/sda1", Mountpoint: "/", FSType: "ext4",
					Usage: &model.Usage{Total: 100 << 30, Used: 50 << 30, Percent: 50}},
				{Device: "/dev/sdb1", Mountpoint: "/mnt/locked", FSType: "xfs"},
			},
		},
		Processes: []model.Process{
			{PID: 10, Name: "alpha", CPUPercent: 50, MemoryPercent: 1},
			{PID: 20, Name: "beta", CPUPercent: 10, MemoryPercent: 30},
			{PID: 30, Name: "gamma", CPUPercent: 5, MemoryPercent: 2},
		},
	}
}

type fixture struct {
	model   *Model
	queue   *collector.Queue
	mon     *monitor.Monitor
	sampler *stubSampler
	killer  *recordingTerminator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	q := collector.NewQueue()
	s := &stubSampler{snap: testSnapshot()}
	k := &recordingTerminator{}
	mon := monitor.New(q, s, monitor.WithTerminator(k),
		monitor.WithClock(func() time.Time { return time.Unix(1_700_000_100, 0) }))
	cfg := config.Default()
	cfg.ExportDir = t.TempDir()
	m := New(context.Background(), mon, cfg)
	m.now = func() time.Time { return time.Unix(1_700_000_200, 0) }
	return &fixture{model: m, queue: q, mon: mon, sampler: s, killer: k}
}

func (f *fixture) deliver() {
	snap := testSnapshot()
	f.queue.Push(collector.Item{Snapshot: &snap})
	f.model.Update(tickMsg(time.Now()))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_BeforeFirstSnapshot(t *testing.T) {
	f := newFixture(t)
	out := f.model.View()
	if !strings.Contains(out, "Waiting for first sample") {
		t.Errorf("expected waiting banner, got:\n%s", out)
	}
	if !strings.Contains(out, "Ready") {
		t.Errorf("expected initial status, got:\n%s", out)
	}
}

func TestTick_DrainsAndRenders(t *testing.T) {
	f := newFixture(t)
	snap := testSnapshot()
	f.queue.Push(collector.Item{Snapshot: &snap})

	_, cmd := f.model.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if f.queue.Len() != 0 {
		t.Errorf("queue not drained, len=%d", f.queue.Len())
	}
	if f.sampler.calls != 0 {
		t.Errorf("tick must not resample, got %d calls", f.sampler.calls)
	}

	out := f.model.View()
	for _, want := range []string{"box01", "CPU", "Memory", "Network", "Disk", "alpha", "/mnt/locked", "N/A"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if len(f.model.procs) != 3 || f.model.procs[0].PID != 10 {
		t.Errorf("procs = %+v", f.model.procs)
	}
}

func TestSortToggle(t *testing.T) {
	f := newFixture(t)
	f.deliver()

	f.model.Update(runes("o"))
	if f.model.sortBy != monitor.SortByMemory {
		t.Fatalf("sortBy = %s", f.model.sortBy)
	}
	if f.model.procs[0].PID != 20 {
		t.Errorf("memory sort head = %d, want 20", f.model.procs[0].PID)
	}

	f.model.Update(runes("o"))
	if f.model.procs[0].PID != 10 {
		t.Errorf("cpu sort head = %d, want 10", f.model.procs[0].PID)
	}
}

func TestCursorBounds(t *testing.T) {
	f := newFixture(t)
	f.deliver()

	f.model.Update(tea.KeyMsg{Type: tea.KeyUp})
	if f.model.cursor != 0 {
		t.Errorf("cursor = %d after up at top", f.model.cursor)
	}
	for range 5 {
		f.model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if f.model.cursor != 2 {
		t.Errorf("cursor = %d, want 2", f.model.cursor)
	}
}

func TestRefreshResamples(t *testing.T) {
	f := newFixture(t)
	f.model.Update(runes("r"))
	if f.sampler.calls != 1 {
		t.Errorf("sampler calls = %d, want 1", f.sampler.calls)
	}
	if len(f.model.procs) != 3 {
		t.Errorf("procs = %d", len(f.model.procs))
	}
	if _, ok := f.mon.Latest(); ok {
		t.Error("resample must not become the latest snapshot")
	}
}

func TestKillSelected(t *testing.T) {
	f := newFixture(t)
	f.deliver()
	f.model.Update(tea.KeyMsg{Type: tea.KeyDown})
	f.model.Update(runes("x"))

	if len(f.killer.pids) != 1 || f.killer.pids[0] != 20 {
		t.Fatalf("terminated %v, want [20]", f.killer.pids)
	}
	if !strings.Contains(f.mon.Status(), "Process 20 terminated") {
		t.Errorf("status = %q", f.mon.Status())
	}
}

func TestKillWithoutRows(t *testing.T) {
	f := newFixture(t)
	f.model.Update(runes("x"))
	if len(f.killer.pids) != 0 {
		t.Errorf("terminated %v with empty table", f.killer.pids)
	}
}

func TestLoggingToggleAndClear(t *testing.T) {
	f := newFixture(t)
	f.model.Update(runes("l"))
	if f.mon.Logging() != monitor.LoggingOn {
		t.Fatal("logging should be on")
	}
	f.deliver()
	f.deliver()
	if len(f.mon.Log()) != 2 {
		t.Errorf("log len = %d, want 2", len(f.mon.Log()))
	}
	if !strings.Contains(f.model.View(), "logging on (2)") {
		t.Error("status line should show log count")
	}

	f.model.Update(runes("c"))
	if len(f.mon.Log()) != 0 {
		t.Errorf("log len = %d after clear", len(f.mon.Log()))
	}
	f.model.Update(runes("l"))
	if f.mon.Logging() != monitor.LoggingOff {
		t.Error("logging should be off")
	}
}

func TestSaveWithoutDataWarns(t *testing.T) {
	f := newFixture(t)
	f.model.Update(runes("s"))
	if f.model.warning == "" {
		t.Fatal("expected warning")
	}
	if !strings.Contains(f.model.View(), "dismiss") {
		t.Error("warning should show how to dismiss it")
	}

	// Other keys are ignored while the warning is open.
	f.model.Update(runes("l"))
	if f.model.warning == "" {
		t.Error("non-acknowledging key dismissed the warning")
	}
	if f.mon.Logging() != monitor.LoggingOff {
		t.Error("key press behind the warning toggled logging")
	}

	f.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if f.model.warning != "" {
		t.Error("enter should dismiss the warning")
	}
}

func TestWarningDismissedByEsc(t *testing.T) {
	f := newFixture(t)
	f.model.Update(runes("e"))
	f.model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if f.model.warning != "" {
		t.Error("esc should dismiss the warning")
	}
}

func TestSaveSnapshotWritesFile(t *testing.T) {
	f := newFixture(t)
	f.deliver()
	f.model.Update(runes("s"))
	if f.model.warning != "" {
		t.Fatalf("unexpected warning %q", f.model.warning)
	}
	entries, err := os.ReadDir(f.model.cfg.ExportDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "snapshot_1700000100.json" {
		t.Errorf("export dir = %v", entries)
	}
}

func TestExportLog(t *testing.T) {
	f := newFixture(t)
	f.model.Update(runes("e"))
	if f.model.warning == "" {
		t.Fatal("empty log export should warn")
	}
	f.model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	f.model.Update(runes("l"))
	f.deliver()
	f.model.Update(runes("e"))
	if f.model.warning != "" {
		t.Fatalf("unexpected warning %q", f.model.warning)
	}
	if _, err := os.Stat(f.model.logExportPath()); err != nil {
		t.Errorf("log file: %v", err)
	}
	if !strings.HasPrefix(f.mon.Status(), "Logs exported:") {
		t.Errorf("status = %q", f.mon.Status())
	}
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := f.model.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit cmd", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: cmd did not quit", msg)
		}
	}
}

func TestWindowResize(t *testing.T) {
	f := newFixture(t)
	f.model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if f.model.width != 80 || f.model.height != 24 || f.model.help.Width != 80 {
		t.Errorf("size = %dx%d help=%d", f.model.width, f.model.height, f.model.help.Width)
	}
}

func TestGaugeBar(t *testing.T) {
	tests := []struct {
		pct    float64
		filled int
		label  string
	}{
		{-5, 0, "0.0%"},
		{0, 0, "0.0%"},
		{50, 5, "50.0%"},
		{100, 10, "100.0%"},
		{150, 10, "100.0%"},
	}
	for _, tt := range tests {
		got := gaugeBar(tt.pct, 10)
		if n := strings.Count(got, gaugeFill); n != tt.filled {
			t.Errorf("gaugeBar(%v) filled = %d, want %d", tt.pct, n, tt.filled)
		}
		if !strings.HasSuffix(got, tt.label) {
			t.Errorf("gaugeBar(%v) = %q, want suffix %q", tt.pct, got, tt.label)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline([]float64{0, 100, -3, 250}, 10); got != "▁█▁█" {
		t.Errorf("sparkline = %q", got)
	}
	vals := make([]float64, 50)
	if got := []rune(sparkline(vals, 20)); len(got) != 20 {
		t.Errorf("len = %d, want 20", len(got))
	}
	if sparkline(nil, 10) != "" {
		t.Error("empty input should render empty")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("systemd-journald", 8); got != "systemd…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("sh", 8); got != "sh" {
		t.Errorf("truncate = %q", got)
	}
}
