//go:build unix

package sampler

import "golang.org/x/sys/unix"

// kernelVersion returns the uname version string, e.g. "#1 SMP PREEMPT_DYNAMIC ...".
func kernelVersion() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Version[:])
}
