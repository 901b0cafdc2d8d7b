package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the client IP of r without the port. Behind a proxy,
// chi's RealIP middleware has already replaced RemoteAddr with the
// X-Real-IP / X-Forwarded-For value, so only RemoteAddr is consulted here.
// An address that does not parse as an IP is returned as "".
func FromRequest(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	addr = strings.Trim(addr, "[]")
	if net.ParseIP(addr) == nil {
		return ""
	}
	return addr
}
