// Package netutil classifies network errors by type rather than by message,
// so docapi startup and acactl probes can report actionable causes.
package netutil

import (
	"errors"
	"net"
	"syscall"
)

// IsAddressInUseError reports whether err is an "address already in use"
// failure from binding a listener.
func IsAddressInUseError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.EADDRINUSE)
	}
	return false
}

// IsConnectionRefusedError reports whether err is a refused TCP connection,
// typically a docapi instance that is not running or not yet started.
func IsConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}
