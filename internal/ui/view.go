package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/sysmoni/internal/format"
	"github.com/Dicklesworthstone/sysmoni/internal/model"
	"github.com/Dicklesworthstone/sysmoni/internal/monitor"
)

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	onStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle     = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Foreground(lipgloss.Color("214")).
			Padding(0, 1)
	gaugeFill  = "█"
	gaugeEmpty = "░"
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

const (
	chartWidth    = 30
	maxPartitions = 6
	maxProcRows   = 15
)

func (m *Model) View() string {
	s, ok := m.mon.Latest()
	if !ok {
		return m.footer(titleStyle.Render("sysmoni"),
			subtleStyle.Render("Waiting for first sample..."))
	}

	header := titleStyle.Render("sysmoni") + "  " +
		subtleStyle.Render(fmt.Sprintf("%s  %s %s (%s)  %s",
			s.Platform.Node, s.Platform.System, s.Platform.Release, s.Platform.Machine,
			monitor.FormatTimestamp(s.Timestamp)))

	h := m.mon.History()
	line1 := lipgloss.JoinHorizontal(lipgloss.Top,
		cpuCard(s.CPU, h.CPU()),
		memoryCard(s.Memory, h.Memory()),
		networkCard(s.Network))
	line2 := lipgloss.JoinHorizontal(lipgloss.Top,
		diskCard(s.Disk),
		m.processCard())

	return m.footer(header, line1, line2)
}

// footer appends the open warning, status line and help below parts.
func (m *Model) footer(parts ...string) string {
	if m.warning != "" {
		hint := m.help.ShortHelpView([]key.Binding{m.keys.Acknowledge})
		parts = append(parts, warnStyle.Render(m.warning+"\n"+hint))
	}
	parts = append(parts, m.statusLine(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) statusLine() string {
	state := subtleStyle.Render("logging " + m.mon.Logging().String())
	if m.mon.Logging() == monitor.LoggingOn {
		state = onStyle.Render(fmt.Sprintf("logging on (%d)", len(m.mon.Log())))
	}
	return state + "  " + subtleStyle.Render(m.mon.Status())
}

func cpuCard(c model.CPU, hist []float64) string {
	freq := "N/A"
	if c.Freq != nil {
		freq = fmt.Sprintf("%.0f MHz", c.Freq.Current)
	}
	body := fmt.Sprintf("%s\nload %.2f %.2f %.2f  %d cores @ %s\ncores %s\nhist  %s",
		gaugeBar(c.TotalPercent, 20),
		c.LoadAvg[0], c.LoadAvg[1], c.LoadAvg[2], c.Count, freq,
		sparkline(c.PerCore, chartWidth),
		sparkline(hist, chartWidth))
	return card("CPU", body)
}

func memoryCard(mem model.Memory, hist []float64) string {
	v, sw := mem.Virtual, mem.Swap
	body := fmt.Sprintf("%s\n%s / %s  avail %s\nswap %s / %s (%s)\nhist  %s",
		gaugeBar(v.Percent, 20),
		format.Bytes(float64(v.Used)), format.Bytes(float64(v.Total)),
		format.Bytes(float64(v.Available)),
		format.Bytes(float64(sw.Used)), format.Bytes(float64(sw.Total)),
		format.Percent(sw.Percent),
		sparkline(hist, chartWidth))
	return card("Memory", body)
}

func networkCard(n model.Network) string {
	body := fmt.Sprintf("TX %-12s total %s\nRX %-12s total %s\npkts %d/%d  err %d/%d  drop %d/%d",
		format.Rate(n.Rates.BytesSentPerSec), format.Bytes(float64(n.IO.BytesSent)),
		format.Rate(n.Rates.BytesRecvPerSec), format.Bytes(float64(n.IO.BytesRecv)),
		n.IO.PacketsSent, n.IO.PacketsRecv,
		n.IO.Errin, n.IO.Errout,
		n.IO.Dropin, n.IO.Dropout)
	return card("Network", body)
}

func diskCard(d model.Disk) string {
	var b strings.Builder
	fmt.Fprintf(&b, "R %s  W %s\n", format.Rate(d.Rates.ReadBytesPerSec), format.Rate(d.Rates.WriteBytesPerSec))
	fmt.Fprintf(&b, "%-16s %-6s %9s %9s %6s\n", "mount", "fs", "used", "total", "use")
	limit := min(maxPartitions, len(d.Partitions))
	for _, p := range d.Partitions[:limit] {
		if p.Usage == nil {
			fmt.Fprintf(&b, "%-16s %-6s %9s %9s %6s\n",
				truncate(p.Mountpoint, 16), truncate(p.FSType, 6), "N/A", "N/A", "N/A")
			continue
		}
		fmt.Fprintf(&b, "%-16s %-6s %9s %9s %6s\n",
			truncate(p.Mountpoint, 16), truncate(p.FSType, 6),
			format.Bytes(float64(p.Usage.Used)), format.Bytes(float64(p.Usage.Total)),
			format.Percent(p.Usage.Percent))
	}
	return card("Disk", strings.TrimRight(b.String(), "\n"))
}

func (m *Model) processCard() string {
	title := fmt.Sprintf("Processes by %s", m.sortBy)
	if m.cfg.Filter != "" {
		title += fmt.Sprintf(" matching %q", m.cfg.Filter)
	}
	return card(title, renderTable(m.procs, m.cursor, maxProcRows))
}

// Helpers
func gaugeBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := min(int((pct/100)*float64(width)), width)
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

// sparkline draws the last width percentages as block characters.
func sparkline(values []float64, width int) string {
	if len(values) > width {
		values = values[len(values)-width:]
	}
	top := len(sparkRunes) - 1
	var b strings.Builder
	for _, v := range values {
		v = max(0, min(100, v))
		b.WriteRune(sparkRunes[int(v/100*float64(top)+0.5)])
	}
	return b.String()
}

func card(title, body string) string {
	return cardStyle.Render(labelStyle.Render(title) + "\n" + body)
}

// renderTable lists up to limit rows, scrolled so cursor stays visible.
func renderTable(rows []model.Process, cursor, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-7s %-18s %-10s %6s %6s %9s %-8s", "pid", "name", "user", "cpu", "mem", "rss", "status")
	start := 0
	if cursor >= limit {
		start = cursor - limit + 1
	}
	end := min(start+limit, len(rows))
	for i := start; i < end; i++ {
		r := rows[i]
		line := fmt.Sprintf("%-7d %-18s %-10s %6.1f %6.1f %9s %-8s",
			r.PID, truncate(r.Name, 18), truncate(r.Username, 10),
			r.CPUPercent, r.MemoryPercent, format.Bytes(float64(r.MemoryRSS)), truncate(r.Status, 8))
		if i == cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
