package providers

import (
	"net"
	"net/http"
	"time"
	"venued/internal/structures"
)

func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// NewHTTPClientProvider builds the client shared by every outbound call of a tick.
// The feed timeout is the one timeout the core relies on.
func NewHTTPClientProvider(conf *structures.Config) *http.Client {
	return NewHTTPClient(conf.Feed.Timeout)
}
