package netutil

import "testing"

func TestIsLocalhost(t *testing.T) {
	local := []string{
		"localhost",
		"localhost:8080",
		"LOCALHOST",
		"Localhost:3000",
		"127.0.0.1",
		"127.0.0.1:8080",
		"127.255.255.255", // whole 127/8 block is loopback
		"::1",
		"[::1]",
		"[::1]:8080",
		"0:0:0:0:0:0:0:1",
		"[0:0:0:0:0:0:0:1]:80",
		"::ffff:127.0.0.1", // IPv4-mapped
		"[::ffff:127.0.0.1]:8080",
	}
	for _, host := range local {
		if !IsLocalhost(host) {
			t.Errorf("IsLocalhost(%q) = false, want true", host)
		}
	}

	remote := []string{
		"tmheller.dev",
		"tmheller.dev:443",
		"cdn.tmheller.dev",
		"10.0.0.1", // private is still not loopback
		"192.168.1.1:8080",
		"8.8.8.8",
		"fe80::1",
		"2001:db8::1",
	}
	for _, host := range remote {
		if IsLocalhost(host) {
			t.Errorf("IsLocalhost(%q) = true, want false", host)
		}
	}
}

func TestIsLocalhostRejectsLookalikes(t *testing.T) {
	// Anything that merely contains a loopback spelling, or that does not
	// parse as a host at all, must not pass.
	lookalikes := []string{
		"",
		":8080",
		"local",
		"localhost.com",
		"mylocalhost",
		"localhost.tmheller.dev",
		"notlocalhost",
		"localhost123",
		"127.0.0.1.tmheller.dev",
		"128.0.0.1",
		"256.256.256.256",
		"127001",
		"http://localhost",
		"127.0.0.1 ",
		"[[[::1]]]",
		"[::1",
		"]::1[",
	}
	for _, host := range lookalikes {
		if IsLocalhost(host) {
			t.Errorf("IsLocalhost(%q) = true, want false", host)
		}
	}
}
