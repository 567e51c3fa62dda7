// Package version provides centralized version information for the acadeploy
// binaries. acactl (operator CLI) and docapi (document processing service)
// are versioned independently. Versions follow semantic versioning.
package version

// AcactlVersion holds the current acactl CLI version.
// Format: major.minor.patch[-prerelease][+build]
const AcactlVersion = "0.1.0-dev"

// DocapiVersion holds the current docapi service version. It is reported by
// the service info endpoint, so it tracks the API contract rather than the CLI.
const DocapiVersion = "1.0.0"
