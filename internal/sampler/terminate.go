package sampler

import (
	"context"
	"errors"
	"os"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"

	apperrors "github.com/Dicklesworthstone/sysmoni/internal/errors"
)

// HostTerminator sends graceful termination requests to local processes.
type HostTerminator struct{}

// Terminate asks pid to exit (SIGTERM on unix). Failures are reported as a
// *apperrors.ProcessError wrapping ErrNoSuchProcess or ErrAccessDenied when
// the cause is recognised.
func (HostTerminator) Terminate(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return &apperrors.ProcessError{PID: pid, Cause: classifyKillError(err)}
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		return &apperrors.ProcessError{PID: pid, Cause: classifyKillError(err)}
	}
	return nil
}

func classifyKillError(err error) error {
	switch {
	case errors.Is(err, process.ErrorProcessNotRunning),
		errors.Is(err, os.ErrProcessDone),
		errors.Is(err, syscall.ESRCH):
		return apperrors.ErrNoSuchProcess
	case errors.Is(err, os.ErrPermission):
		return apperrors.ErrAccessDenied
	default:
		return err
	}
}
