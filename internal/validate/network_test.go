package validate

import (
	"testing"
)

// TestParseBindAddress tests listen address parsing
func TestParseBindAddress(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		expectedIP   string
		expectedPort int
	}{
		{"valid IPv4 address", "192.168.1.1:8080", false, "192.168.1.1", 8080},
		{"valid localhost", "127.0.0.1:8000", false, "127.0.0.1", 8000},
		{"bare port binds all interfaces", ":8000", false, "0.0.0.0", 8000},
		{"valid high port number", "10.0.0.1:65535", false, "10.0.0.1", 65535},
		{"empty address", "", true, "", 0},
		{"missing port", "192.168.1.1", true, "", 0},
		{"hostname instead of IP", "localhost:8000", true, "", 0},
		{"port out of range", "127.0.0.1:70000", true, "", 0},
		{"non-numeric port", "127.0.0.1:http", true, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseBindAddress(tt.input)
			if tt.expectError {
				if err == nil {
					t.Fatalf("ParseBindAddress(%q) expected error, got %v", tt.input, addr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBindAddress(%q) unexpected error: %v", tt.input, err)
			}
			if addr.Host != tt.expectedIP || addr.Port != tt.expectedPort {
				t.Errorf("ParseBindAddress(%q) = %s:%d, want %s:%d",
					tt.input, addr.Host, addr.Port, tt.expectedIP, tt.expectedPort)
			}
		})
	}
}

// TestNetworkAddressString tests host:port formatting
func TestNetworkAddressString(t *testing.T) {
	addr := NetworkAddress{Host: "127.0.0.1", Port: 8000}
	if got := addr.String(); got != "127.0.0.1:8000" {
		t.Errorf("String() = %q, want 127.0.0.1:8000", got)
	}
}

// TestServiceURL tests base URL normalization
func TestServiceURL(t *testing.T) {
	tests := []struct {
		input       string
		want        string
		expectError bool
	}{
		{"http://127.0.0.1:8000/", "http://127.0.0.1:8000", false},
		{"docapi-a1b2c3d4.westeurope.azurecontainerapps.io", "https://docapi-a1b2c3d4.westeurope.azurecontainerapps.io", false},
		{"", "", true},
		{"ftp://example.com", "", true},
	}

	for _, tt := range tests {
		got, err := ServiceURL(tt.input)
		if tt.expectError {
			if err == nil {
				t.Errorf("ServiceURL(%q) expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ServiceURL(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ServiceURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// TestValidateIntRange tests numeric range validation
func TestValidateIntRange(t *testing.T) {
	if err := ValidateIntRange(10, 1, 100, "max document size"); err != nil {
		t.Errorf("ValidateIntRange(10) unexpected error: %v", err)
	}
	if err := ValidateIntRange(0, 1, 100, "max document size"); err == nil {
		t.Error("ValidateIntRange(0) expected error")
	}
	if err := ValidatePortRange(0); err == nil {
		t.Error("ValidatePortRange(0) expected error")
	}
	if err := ValidateRequiredString("", "image"); err == nil {
		t.Error("ValidateRequiredString(\"\") expected error")
	}
}
