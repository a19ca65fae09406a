package model

import "time"

// Platform identifies the host. It does not change within a session.
type Platform struct {
	System    string `json:"system"`
	Node      string `json:"node"`
	Release   string `json:"release"`
	Version   string `json:"version"`
	Machine   string `json:"machine"`
	Processor string `json:"processor"`
}

// CPUFreq is the processor clock in MHz.
type CPUFreq struct {
	Current float64 `json:"current"`
}

// CPU aggregates instantaneous CPU usage.
type CPU struct {
	TotalPercent float64    `json:"total_percent"` // percent 0-100
	PerCore      []float64  `json:"per_core"`      // per-core percent, len <= Count
	Count        int        `json:"count"`
	Freq         *CPUFreq   `json:"freq"`
	LoadAvg      [3]float64 `json:"load_avg"` // zero-filled where unsupported
}

// MemoryStat is shared by virtual memory and swap.
type MemoryStat struct {
	Total     uint64  `json:"total"`
	Available uint64  `json:"available"`
	Used      uint64  `json:"used"`
	Free      uint64  `json:"free"`
	Percent   float64 `json:"percent"`
}

// Memory captures RAM and swap usage in bytes.
type Memory struct {
	Virtual MemoryStat `json:"virtual"`
	Swap    MemoryStat `json:"swap"`
}

// Usage is filesystem usage for one partition.
type Usage struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// Partition is a mounted filesystem. Usage is nil when it could not be read.
type Partition struct {
	Device     string `json:"device"`
	Mountpoint string `json:"mountpoint"`
	FSType     string `json:"fstype"`
	Opts       string `json:"opts"` // comma-separated mount options
	Usage      *Usage `json:"usage"`
}

// DiskIO holds cumulative block device counters since boot.
type DiskIO struct {
	ReadCount  uint64 `json:"read_count"`
	WriteCount uint64 `json:"write_count"`
	ReadBytes  uint64 `json:"read_bytes"`
	WriteBytes uint64 `json:"write_bytes"`
	ReadTime   uint64 `json:"read_time"`
	WriteTime  uint64 `json:"write_time"`
}

// DiskRates are per-second deltas of DiskIO. Nil fields mean no prior sample.
type DiskRates struct {
	ReadBytesPerSec  *float64 `json:"read_bytes_per_sec"`
	WriteBytesPerSec *float64 `json:"write_bytes_per_sec"`
}

// Disk groups partitions with aggregate IO.
type Disk struct {
	Partitions []Partition `json:"partitions"`
	IO         DiskIO      `json:"io"`
	Rates      DiskRates   `json:"rates"`
}

// NetIO holds cumulative interface counters since boot, summed over NICs.
type NetIO struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
	Errin       uint64 `json:"errin"`
	Errout      uint64 `json:"errout"`
	Dropin      uint64 `json:"dropin"`
	Dropout     uint64 `json:"dropout"`
}

// NetRates are per-second deltas of NetIO. Nil fields mean no prior sample.
type NetRates struct {
	BytesSentPerSec *float64 `json:"bytes_sent_per_sec"`
	BytesRecvPerSec *float64 `json:"bytes_recv_per_sec"`
}

// Network groups counters with derived rates.
type Network struct {
	IO    NetIO    `json:"io"`
	Rates NetRates `json:"rates"`
}

// Process is a lightweight top entry.
type Process struct {
	PID           int32   `json:"pid"`
	Name          string  `json:"name"`
	Username      string  `json:"username"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryRSS     uint64  `json:"memory_rss"`
	Status        string  `json:"status"`
}

// Snapshot is the full capture exchanged between sampler, monitor, UI and
// JSON exporter. Treat it as immutable once produced.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Platform  Platform  `json:"platform"`
	CPU       CPU       `json:"cpu"`
	Memory    Memory    `json:"memory"`
	Disk      Disk      `json:"disk"`
	Network   Network   `json:"network"`
	Processes []Process `json:"processes"`
}

// Failure is queued in place of a Snapshot when sampling fails.
type Failure struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"error"`
}

// Float returns a pointer to v, for optional rate fields.
func Float(v float64) *float64 { return &v }
