// Package validate provides input validation for acadeploy configuration,
// covering listen addresses, service URLs, Azure regions, image references,
// environment variable keys and numeric limits.
//
// Struct and single-value checks use the go-playground/validator library so
// that every entry point (acactl flags, deployment profiles, docapi env
// settings) reports problems the same way.
package validate

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New()
}

// NetworkAddress is a validated "host:port" pair.
type NetworkAddress struct {
	Host string `validate:"required,ip"`
	Port int    `validate:"min=0,max=65535"`
}

// String returns the address in "host:port" form.
func (na NetworkAddress) String() string {
	return net.JoinHostPort(na.Host, strconv.Itoa(na.Port))
}

// ParseBindAddress parses and validates a "host:port" listen address. A bare
// ":port" binds all interfaces and is normalized to 0.0.0.0.
func ParseBindAddress(addr string) (*NetworkAddress, error) {
	if addr == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address format '%s': %w", addr, err)
	}
	if host == "" {
		host = "0.0.0.0"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port '%s': %w", portStr, err)
	}

	netAddr := &NetworkAddress{
		Host: host,
		Port: port,
	}

	if err := validate.Struct(netAddr); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return netAddr, nil
}

// ServiceURL validates an http(s) base URL for the deployed document API and
// returns it without a trailing slash. A bare FQDN such as the one Container
// Apps reports is promoted to https.
func ServiceURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("service URL cannot be empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	if err := ValidateField(raw, "required,url,startswith=http"); err != nil {
		return "", fmt.Errorf("invalid service URL '%s': %w", raw, err)
	}
	return strings.TrimRight(raw, "/"), nil
}

// ValidateField validates a single value against validator tags.
//
// Example: ValidateField("10.0.0.1", "required,ip")
func ValidateField(value interface{}, tag string) error {
	return validate.Var(value, tag)
}

// Struct validates a struct using its `validate` tags.
func Struct(s interface{}) error {
	return validate.Struct(s)
}
