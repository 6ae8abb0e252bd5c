package models

import "strings"

// Server status values reported by the dashboard.
const (
	StatusRunning = "running"
	StatusStopped = "stopped"
	StatusUnknown = "unknown"
)

// Defaults applied when a configuration update omits a field.
const (
	DefaultBindIP = "0.0.0.0"
	DefaultPort   = "1688"
)

// ServerConfig represents the KMS server address and its observed state as
// shown on the dashboard. The live copy is owned by the state store; callers
// only ever see snapshots of it.
type ServerConfig struct {
	IP        string `json:"ip"`
	Port      string `json:"port"`
	Status    string `json:"status"`
	DisplayIP string `json:"display_ip"`
}

// EffectiveIP returns the address clients should dial. A wildcard bind is not
// dialable, so the detected display address stands in for it.
func (c ServerConfig) EffectiveIP() string {
	if c.IP == "0.0.0.0" {
		return c.DisplayIP
	}
	return c.IP
}

// Address returns the client-facing "host:port" of the KMS server.
func (c ServerConfig) Address() string {
	return c.EffectiveIP() + ":" + c.Port
}

// StatusTitle returns the status capitalized for display. Status values are
// plain ASCII words.
func (c ServerConfig) StatusTitle() string {
	if c.Status == "" {
		return ""
	}
	return strings.ToUpper(c.Status[:1]) + c.Status[1:]
}
