package scanengine

import (
	"fmt"
	"strconv"
	"strings"
)

// RustscanEngine drives rustscan, which emits lines of the form:
//
//	Open 203.0.113.7:25565
//
// A CIDR target is expanded into a newline-delimited host file before
// invocation (the caller is responsible for that expansion and passes
// the resulting file path here) to sidestep rustscan's own upstream
// CIDR-resolution bug.
type RustscanEngine struct{}

const rustscanOpenPrefix = "Open "

func (RustscanEngine) BinaryPath() string {
	return localBinaryPath("rustscan")
}

func (RustscanEngine) BuildArgs(cidrOrHostFile string, portStart, portEnd uint16) ([]string, error) {
	args := []string{
		"-a", cidrOrHostFile,
		"--scripts", "none",
	}
	if portStart == portEnd {
		args = append(args, "-p", strconv.Itoa(int(portStart)))
	} else {
		args = append(args, "-r", fmt.Sprintf("%d-%d", portStart, portEnd))
	}
	return args, nil
}

func (RustscanEngine) ParseLine(line string) (Hit, bool, error) {
	if !strings.HasPrefix(line, rustscanOpenPrefix) {
		return Hit{}, false, nil
	}
	hostport := strings.TrimPrefix(line, rustscanOpenPrefix)

	idx := strings.LastIndexByte(hostport, ':')
	if idx < 0 {
		return Hit{}, false, fmt.Errorf("scanengine: rustscan: missing port in %q", line)
	}
	host, portStr := hostport[:idx], hostport[idx+1:]

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Hit{}, false, fmt.Errorf("scanengine: rustscan: invalid port field %q: %w", portStr, err)
	}
	return Hit{Host: host, Port: uint16(port)}, true, nil
}
