package middleware

import (
	"fmt"
	"net"

	"github.com/labstack/echo/v4"
)

// ClientIP builds the extractor behind c.RealIP, which Actor records on every
// audit entry. X-Forwarded-For is only read when the peer sits in one of the
// trusted CIDRs; echo's implicit trust of loopback and private ranges is off.
// With no CIDRs the TCP peer address is used and forwarding headers are ignored.
func ClientIP(trusted []string) (echo.IPExtractor, error) {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect(), nil
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trusted {
		_, ipnet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", cidr, err)
		}
		opts = append(opts, echo.TrustIPRange(ipnet))
	}
	return echo.ExtractIPFromXFFHeader(opts...), nil
}
