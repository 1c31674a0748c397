package scanengine

import (
	"fmt"
	"net"
	"os"
)

// ExpandCIDRToHostFile writes every host address in cidr to a
// newline-delimited file at path, one IPv4 address per line. rustscan is
// invoked against the resulting file instead of the raw CIDR to sidestep
// its own upstream CIDR-resolution bug.
func ExpandCIDRToHostFile(cidr string, path string) error {
	ip, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return fmt.Errorf("scanengine: parsing cidr %q: %w", cidr, err)
	}
	if ip.To4() == nil {
		return fmt.Errorf("scanengine: %q is not an IPv4 network", cidr)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scanengine: creating host file %q: %w", path, err)
	}
	defer f.Close()

	for addr := ip.Mask(ipnet.Mask); ipnet.Contains(addr); incIP(addr) {
		// addr.String() snapshots the current value before incIP mutates
		// addr in place for the next iteration.
		if _, err := fmt.Fprintln(f, addr.String()); err != nil {
			return fmt.Errorf("scanengine: writing host file %q: %w", path, err)
		}
	}
	return nil
}

// incIP increments ip (assumed IPv4, 4-byte form) in place, carrying
// across octets.
func incIP(ip net.IP) {
	for i := len(ip) - 1; i >= 0; i-- {
		ip[i]++
		if ip[i] != 0 {
			return
		}
	}
}
