package netutil

import (
	"fmt"
	"net"
	"strconv"
)

// AddressInUseError reports a listen address that another process holds. It
// wraps the original error so IsAddressInUseError still matches.
type AddressInUseError struct {
	Port    int
	Address string
	Err     error
}

func (e *AddressInUseError) Error() string {
	return fmt.Sprintf("port %d is already in use on %s", e.Port, e.Address)
}

func (e *AddressInUseError) Unwrap() error {
	return e.Err
}

// BindTCP binds a TCP listener on address:port and returns it ready for use.
// docapi binds before starting its HTTP server so that a busy port fails the
// start command instead of a background goroutine.
func BindTCP(address string, port int) (net.Listener, error) {
	addr := net.JoinHostPort(address, strconv.Itoa(port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		if IsAddressInUseError(err) {
			return nil, &AddressInUseError{
				Port:    port,
				Address: address,
				Err:     err,
			}
		}
		return nil, fmt.Errorf("failed to bind TCP to %s: %w", addr, err)
	}

	return listener, nil
}

// ListenerPort returns the port a TCP listener is bound to, which differs
// from the requested port when port 0 was requested.
func ListenerPort(listener net.Listener) (int, error) {
	tcpAddr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("listener is not a TCP listener: %T", listener.Addr())
	}
	return tcpAddr.Port, nil
}
