package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrPrivateHost is returned when a request, a redirect hop or a dialed
// address points at a loopback, private or link-local host.
var ErrPrivateHost = errors.New("private host not allowed")

// IsPrivateHost reports whether host is localhost or a literal non-public IP.
// Names are not resolved; GuardDialer covers what they resolve to.
func IsPrivateHost(host string) bool {
	h := strings.ToLower(strings.TrimSpace(host))
	h = strings.TrimSuffix(h, ".")
	if h == "localhost" || h == "localhost.localdomain" || strings.HasSuffix(h, ".localhost") {
		return true
	}
	if ip := net.ParseIP(strings.Trim(h, "[]")); ip != nil {
		return IsPrivateIP(ip)
	}
	return false
}

// IsPrivateIP reports whether ip is loopback, private, link-local or unspecified.
func IsPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsInterfaceLocalMulticast() || ip.IsUnspecified()
}

// GuardDialer installs a control hook on d that refuses connections to
// private addresses after DNS resolution. d is modified and returned.
func GuardDialer(d *net.Dialer) *net.Dialer {
	d.ControlContext = func(_ context.Context, _, address string, _ syscall.RawConn) error {
		host, _, err := net.SplitHostPort(address)
		if err != nil {
			host = address
		}
		ip := net.ParseIP(host)
		if ip == nil || IsPrivateIP(ip) {
			return fmt.Errorf("%w: %s", ErrPrivateHost, address)
		}
		return nil
	}
	return d
}

type blockPrivateKey struct{}

// WithBlockPrivateHosts makes requests made with ctx behave as if
// Client.BlockPrivateHosts were set.
func WithBlockPrivateHosts(ctx context.Context) context.Context {
	return context.WithValue(ctx, blockPrivateKey{}, true)
}

func blocksPrivateHosts(ctx context.Context) bool {
	v, _ := ctx.Value(blockPrivateKey{}).(bool)
	return v
}

func (c *Client) checkHost(ctx context.Context, host string) error {
	if (c.BlockPrivateHosts || blocksPrivateHosts(ctx)) && IsPrivateHost(host) {
		return fmt.Errorf("%w: %s", ErrPrivateHost, host)
	}
	return nil
}
