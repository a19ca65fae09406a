package sampler

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	apperrors "github.com/Dicklesworthstone/sysmoni/internal/errors"
	"github.com/Dicklesworthstone/sysmoni/internal/logging"
	"github.com/Dicklesworthstone/sysmoni/internal/model"
)

// DefaultTopN is the number of processes kept per snapshot.
const DefaultTopN = 50

// Sampler builds Snapshots from a Source. It owns the previous network and
// disk counters used for rate computation; Snapshot is safe to call from
// several goroutines and calls serialize on that state.
type Sampler struct {
	src      Source
	interval time.Duration
	topN     int
	now      func() time.Time
	log      logging.Logger

	mu       sync.Mutex
	prevNet  *model.NetIO
	prevDisk *model.DiskIO
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithInterval sets the nominal sampling period used as the rate divisor.
// Rates are only accurate when Snapshot is called at this cadence.
func WithInterval(d time.Duration) Option {
	return func(s *Sampler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTopN sets how many processes a snapshot keeps.
func WithTopN(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Sampler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Sampler and captures the initial baseline: network and disk
// counters, plus one process walk so the first snapshot's per-process CPU
// covers the time since New. If the counters cannot be read, the first
// snapshot reports nil rates.
func New(ctx context.Context, src Source, opts ...Option) *Sampler {
	s := &Sampler{
		src:      src,
		interval: time.Second,
		topN:     DefaultTopN,
		now:      time.Now,
		log:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if n, err := src.NetIO(ctx); err == nil {
		s.prevNet = &n
	} else {
		s.log.Warn("network baseline unavailable", logging.Err(err))
	}
	if d, err := src.DiskIO(ctx); err == nil {
		s.prevDisk = &d
	} else {
		s.log.Warn("disk baseline unavailable", logging.Err(err))
	}
	if _, err := src.Processes(ctx); err != nil {
		s.log.Warn("process baseline unavailable", logging.Err(err))
	}
	return s
}

// Interval returns the nominal sampling period.
func (s *Sampler) Interval() time.Duration { return s.interval }

// Snapshot queries the OS and returns a fully populated Snapshot, or an
// *apperrors.OSQueryError naming the query that failed. Previous counters
// only advance on success.
func (s *Sampler) Snapshot(ctx context.Context) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := model.Snapshot{Timestamp: s.now()}
	var err error

	if snap.Platform, err = s.src.Platform(ctx); err != nil {
		return model.Snapshot{}, apperrors.NewOSQueryError("platform", err)
	}
	if snap.CPU, err = s.src.CPU(ctx); err != nil {
		return model.Snapshot{}, apperrors.NewOSQueryError("cpu", err)
	}
	normalizeCPU(&snap.CPU)
	if snap.Memory, err = s.src.Memory(ctx); err != nil {
		return model.Snapshot{}, apperrors.NewOSQueryError("memory", err)
	}
	if snap.Disk.Partitions, err = s.partitions(ctx); err != nil {
		return model.Snapshot{}, apperrors.NewOSQueryError("disk partitions", err)
	}
	if snap.Disk.IO, err = s.src.DiskIO(ctx); err != nil {
		return model.Snapshot{}, apperrors.NewOSQueryError("disk io", err)
	}
	if snap.Network.IO, err = s.src.NetIO(ctx); err != nil {
		return model.Snapshot{}, apperrors.NewOSQueryError("network io", err)
	}
	procs, err := s.src.Processes(ctx)
	if err != nil {
		return model.Snapshot{}, apperrors.NewOSQueryError("processes", err)
	}
	snap.Processes = RankProcesses(procs, s.topN)

	secs := s.interval.Seconds()
	if s.prevNet != nil {
		cur, prev := snap.Network.IO, s.prevNet
		snap.Network.Rates = model.NetRates{
			BytesSentPerSec: model.Float(rate(cur.BytesSent, prev.BytesSent, secs)),
			BytesRecvPerSec: model.Float(rate(cur.BytesRecv, prev.BytesRecv, secs)),
		}
	}
	if s.prevDisk != nil {
		cur, prev := snap.Disk.IO, s.prevDisk
		snap.Disk.Rates = model.DiskRates{
			ReadBytesPerSec:  model.Float(rate(cur.ReadBytes, prev.ReadBytes, secs)),
			WriteBytesPerSec: model.Float(rate(cur.WriteBytes, prev.WriteBytes, secs)),
		}
	}
	netIO, diskIO := snap.Network.IO, snap.Disk.IO
	s.prevNet, s.prevDisk = &netIO, &diskIO

	return snap, nil
}

// partitions lists mounts and attaches usage. A mount whose usage cannot be
// read keeps Usage == nil.
func (s *Sampler) partitions(ctx context.Context) ([]model.Partition, error) {
	parts, err := s.src.Partitions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range parts {
		u, err := s.src.Usage(ctx, parts[i].Mountpoint)
		if err != nil {
			s.log.Debug("partition usage unavailable",
				logging.String("mountpoint", parts[i].Mountpoint), logging.Err(err))
			parts[i].Usage = nil
			continue
		}
		parts[i].Usage = u
	}
	return parts, nil
}

// rate is the per-second delta over the nominal period. A counter that went
// backwards (interface reset) reads as zero.
func rate(cur, prev uint64, secs float64) float64 {
	if cur < prev {
		return 0
	}
	if secs <= 0 {
		secs = 1
	}
	return float64(cur-prev) / secs
}

// normalizeCPU clamps percentages to 0-100 and caps PerCore at Count.
func normalizeCPU(c *model.CPU) {
	c.TotalPercent = clampPercent(c.TotalPercent)
	if c.Count <= 0 {
		c.Count = len(c.PerCore)
	}
	if len(c.PerCore) > c.Count {
		c.PerCore = c.PerCore[:c.Count]
	}
	for i, v := range c.PerCore {
		c.PerCore[i] = clampPercent(v)
	}
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 100:
		return 100
	}
	return v
}

// RankProcesses stable-sorts by (cpu desc, memory desc) and keeps the first
// n entries. The input slice is reordered in place.
func RankProcesses(procs []model.Process, n int) []model.Process {
	sort.SliceStable(procs, func(i, j int) bool {
		if procs[i].CPUPercent != procs[j].CPUPercent {
			return procs[i].CPUPercent > procs[j].CPUPercent
		}
		return procs[i].MemoryPercent > procs[j].MemoryPercent
	})
	if n > 0 && len(procs) > n {
		procs = procs[:n]
	}
	return procs
}
