package sampler

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

import (
	"context"

	"github.com/Dicklesworthstone/sysmoni/internal/model"
)

// Source performs the raw OS queries a Sampler assembles into a Snapshot.
// Partitions are returned without usage; the Sampler asks for usage per
// mountpoint so one unreadable filesystem does not fail the whole call.
type Source interface {
	Platform(ctx context.Context) (model.Platform, error)
	CPU(ctx context.Context) (model.CPU, error)
	Memory(ctx context.Context) (model.Memory, error)
	Partitions(ctx context.Context) ([]model.Partition, error)
	Usage(ctx context.Context, mountpoint string) (*model.Usage, error)
	DiskIO(ctx context.Context) (model.DiskIO, error)
	NetIO(ctx context.Context) (model.NetIO, error)
	Processes(ctx context.Context) ([]model.Process, error)
}
