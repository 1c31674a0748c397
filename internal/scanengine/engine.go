// Package scanengine adapts external port-scanner subprocesses
// (masscan, rustscan) into a uniform line-parsing contract the
// discovery pipeline can drive.
package scanengine

import (
	"fmt"
	"runtime"
)

// Hit is one discovered open host:port pair parsed from a scan engine's
// stdout.
type Hit struct {
	Host string
	Port uint16
}

// Engine adapts one external port-scanner binary: how to invoke it for
// a given target set, and how to parse a line of its stdout into a Hit.
// ParseLine returns ok=false for lines that carry no hit (headers,
// progress output, blank lines) without that being an error.
type Engine interface {
	// BinaryPath returns the path/name used to invoke the scanner,
	// adapted for the current platform (local bin/*.exe on Windows,
	// bare name elsewhere).
	BinaryPath() string

	// BuildArgs returns the scanner's own argument vector for the given
	// target set and port range, excluding any platform privilege
	// escalation — the launcher applies that uniformly.
	BuildArgs(cidrOrHostFile string, portStart, portEnd uint16) ([]string, error)

	// ParseLine parses one line of stdout into a Hit.
	ParseLine(line string) (Hit, bool, error)
}

// Command returns the final argv[0] and arguments to exec for e: on
// Unix-like systems this prepends "sudo" since raw-socket scanning
// requires elevated privileges; on Windows the local bin/*.exe is
// expected to already run without elevation.
func Command(e Engine, cidrOrHostFile string, portStart, portEnd uint16) (string, []string, error) {
	args, err := e.BuildArgs(cidrOrHostFile, portStart, portEnd)
	if err != nil {
		return "", nil, err
	}
	if runtime.GOOS == "windows" {
		return e.BinaryPath(), args, nil
	}
	full := append([]string{e.BinaryPath()}, args...)
	return "sudo", full, nil
}

// localBinaryPath returns the platform-adapted binary path for name: a
// local bin/<name>.exe on Windows, or the bare name to be resolved from
// PATH elsewhere.
func localBinaryPath(name string) string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("bin/%s.exe", name)
	}
	return name
}
