// Package netutil has small helpers for inspecting request hosts.
package netutil

import (
	"net"
	"strings"
)

// IsLocalhost reports whether host (an http.Request.Host value, with or
// without a port) refers to the local machine: "localhost" in any case, or
// any loopback IP, including bracketed and IPv4-mapped IPv6 forms. Anything
// it cannot positively identify as loopback is not localhost.
func IsLocalhost(host string) bool {
	if host == "" {
		return false
	}

	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	} else if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		hostname = host[1 : len(host)-1]
	}

	if strings.EqualFold(hostname, "localhost") {
		return true
	}
	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
