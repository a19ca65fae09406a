package monitor

import (
	"context"
	"sort"
	"strings"

	"github.com/Dicklesworthstone/sysmoni/internal/model"
)

// SortKey selects the process table ordering.
type SortKey string

const (
	SortByCPU    SortKey = "cpu"
	SortByMemory SortKey = "memory"
)

// ParseSortKey maps "mem"/"memory" to SortByMemory and anything else to
// SortByCPU.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mem", "memory":
		return SortByMemory
	default:
		return SortByCPU
	}
}

// ProcessQuery describes an on-demand process table refresh.
type ProcessQuery struct {
	Sort   SortKey
	Filter string // case-insensitive name substring
	// UseLatest reads the latest applied snapshot instead of resampling.
	UseLatest bool
}

// Processes returns a re-sorted, filtered copy of a snapshot's process
// list. With UseLatest unset, or before any snapshot was applied, it
// resamples synchronously.
func (m *Monitor) Processes(ctx context.Context, q ProcessQuery) ([]model.Process, error) {
	var src []model.Process
	if latest, ok := m.Latest(); ok && q.UseLatest {
		src = latest.Processes
	} else {
		s, err := m.Resample(ctx)
		if err != nil {
			return nil, err
		}
		src = s.Processes
	}

	needle := strings.ToLower(strings.TrimSpace(q.Filter))
	out := make([]model.Process, 0, len(src))
	for _, p := range src {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		out = append(out, p)
	}

	if q.Sort == SortByMemory {
		sort.SliceStable(out, func(i, j int) bool { return out[i].MemoryPercent > out[j].MemoryPercent })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CPUPercent > out[j].CPUPercent })
	}
	return out, nil
}
