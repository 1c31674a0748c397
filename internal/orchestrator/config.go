package orchestrator

import "time"

// Config is the orchestrator's run configuration, populated from CLI
// flags (via go-flagsfiller in cmd/serverseeker) or from tests directly.
type Config struct {
	PortStart int `default:"25565" usage:"First port of the scanned range (per address in rescan mode, passed to the scan engine in discovery mode)"`
	PortEnd   int `default:"25565" usage:"Last port of the scanned range (per address in rescan mode, passed to the scan engine in discovery mode)"`

	Concurrency int `default:"1000" usage:"Maximum number of in-flight ping sessions across both scan modes"`

	ScanEngine string        `default:"masscan" usage:"Port scanner to drive in discovery mode: masscan or rustscan"`
	ScanDelay  time.Duration `default:"0s" usage:"Delay between successive scan iterations"`
	Repeat     bool          `default:"false" usage:"Repeat the scan indefinitely instead of a single-shot run"`

	Targets string `usage:"CIDR, host file path, or direct target accepted by the configured scan engine"`
}
