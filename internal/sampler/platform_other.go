//go:build !unix

package sampler

func kernelVersion() string { return "" }
