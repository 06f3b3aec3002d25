package app

import (
	"net"
	"net/http"
	"time"

	"github.com/hyperifyio/placepin/internal/fetch"
)

// newHTTPClient returns an outbound client. Per-request deadlines come
// from fetch.Client; timeout is the overall backstop. With guard set the
// client refuses to dial private addresses and ignores proxy settings,
// since a proxy would hide the real destination from the dial check.
func newHTTPClient(timeout time.Duration, guard bool) *http.Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	proxy := http.ProxyFromEnvironment
	if guard {
		dialer = fetch.GuardDialer(dialer)
		proxy = nil
	}
	transport := &http.Transport{
		Proxy:                 proxy,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		// Uploads to OCR APIs can take longer than a page fetch.
		Timeout: 4 * timeout,
	}
}
