package netutil

import (
	"errors"
	"testing"
)

// TestBindTCP tests binding, port discovery and address-in-use detection
func TestBindTCP(t *testing.T) {
	listener, err := BindTCP("127.0.0.1", 0)
	if err != nil {
		t.Fatalf("BindTCP() error = %v", err)
	}
	defer listener.Close()

	port, err := ListenerPort(listener)
	if err != nil {
		t.Fatalf("ListenerPort() error = %v", err)
	}
	if port == 0 {
		t.Fatal("ListenerPort() returned 0 for a bound listener")
	}

	_, err = BindTCP("127.0.0.1", port)
	if err == nil {
		t.Fatalf("second BindTCP() on port %d should fail", port)
	}

	var inUse *AddressInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("second BindTCP() error = %T %v, want *AddressInUseError", err, err)
	}
	if inUse.Port != port {
		t.Errorf("AddressInUseError.Port = %d, want %d", inUse.Port, port)
	}
	if !IsAddressInUseError(err) {
		t.Error("IsAddressInUseError() = false for wrapped bind failure")
	}
}

// TestIsConnectionRefusedError tests refused-connection classification
func TestIsConnectionRefusedError(t *testing.T) {
	if IsConnectionRefusedError(errors.New("boom")) {
		t.Error("IsConnectionRefusedError() = true for unrelated error")
	}
	if IsConnectionRefusedError(nil) {
		t.Error("IsConnectionRefusedError(nil) = true")
	}
}
