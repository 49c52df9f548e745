// Package app wires configuration, logging, telemetry, the venue
// client and the HTTP surface into a runnable application.
package app
