package util

import (
	"fmt"
	"net"
)

var privateIPBlocks []*net.IPNet

func init() {
	privateIPs, err := ParseSubnets(
		[]string{
			"10.0.0.0/8",     // RFC1918
			"172.16.0.0/12",  // RFC1918
			"192.168.0.0/16", // RFC1918
			"fc00::/7",       // IPv6 unique local addr
		})

	if err == nil {
		privateIPBlocks = privateIPs
	} else {
		panic(fmt.Sprintf("Error defining private IPs: %v", err.Error()))
	}
}

// ParseSubnets parses the provided subnets into net.IPNet format
func ParseSubnets(subnets []string) ([]*net.IPNet, error) {
	var parsedSubnets []*net.IPNet

	for _, entry := range subnets {
		_, block, err := net.ParseCIDR(entry)
		if err != nil {
			// single addresses become host networks
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("%q is neither an address nor a network", entry)
			}
			bits := 128
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 32
			}
			block = &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}
		}
		parsedSubnets = append(parsedSubnets, block)
	}

	return parsedSubnets, nil
}

// IsIP returns true if string is a valid IP address
func IsIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// IPIsPubliclyRoutable checks if an IP address is publicly routable
func IPIsPubliclyRoutable(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
		return false
	}
	return !ContainsIP(privateIPBlocks, ip)
}

// ContainsIP checks if a collection of subnets contains an IP
func ContainsIP(subnets []*net.IPNet, ip net.IP) bool {
	for _, block := range subnets {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

// AddressScope labels a client address as public, private or invalid
func AddressScope(address string) string {
	ip := net.ParseIP(address)
	switch {
	case ip == nil:
		return "invalid"
	case IPIsPubliclyRoutable(ip):
		return "public"
	}
	return "private"
}
