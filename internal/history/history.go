package history

import "time"

// DefaultSize is the number of points kept for charts.
const DefaultSize = 60

// Point is one row of the rolling window.
type Point struct {
	Time   time.Time
	CPU    float64
	Memory float64
}

// History holds three equal-length bounded sequences (timestamps, CPU%,
// memory%). It is owned by the consumer and not safe for concurrent use.
type History struct {
	times *Ring[time.Time]
	cpu   *Ring[float64]
	mem   *Ring[float64]
}

// New creates a History keeping the most recent size points.
func New(size int) *History {
	if size <= 0 {
		size = DefaultSize
	}
	return &History{
		times: NewRing[time.Time](size),
		cpu:   NewRing[float64](size),
		mem:   NewRing[float64](size),
	}
}

// Append records one sample; the oldest is dropped once at capacity.
func (h *History) Append(t time.Time, cpuPct, memPct float64) {
	h.times.Push(t)
	h.cpu.Push(cpuPct)
	h.mem.Push(memPct)
}

// Len returns the number of points held; all three sequences share it.
func (h *History) Len() int { return h.times.Len() }

// Cap returns the window size.
func (h *History) Cap() int { return h.times.Cap() }

// Times returns timestamps oldest first.
func (h *History) Times() []time.Time { return h.times.Slice() }

// CPU returns CPU percentages oldest first.
func (h *History) CPU() []float64 { return h.cpu.Slice() }

// Memory returns memory percentages oldest first.
func (h *History) Memory() []float64 { return h.mem.Slice() }

// Points zips the three sequences, oldest first.
func (h *History) Points() []Point {
	times, cpu, mem := h.Times(), h.CPU(), h.Memory()
	out := make([]Point, len(times))
	for i := range times {
		out[i] = Point{Time: times[i], CPU: cpu[i], Memory: mem[i]}
	}
	return out
}

// Reset empties the window.
func (h *History) Reset() {
	h.times.Reset()
	h.cpu.Reset()
	h.mem.Reset()
}
