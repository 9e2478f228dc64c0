package ovsdb

import (
	"crypto/tls"
	"fmt"
	"net"
	"strings"
)

const (
	defaultTCPAddress  = "127.0.0.1:6640"
	defaultUnixAddress = "/var/run/openvswitch/db.sock"
)

// dialEndpoint connects a single endpoint of the form "tcp:host:port",
// "unix:/path/to/socket" or "ssl:host:port", the connection-string
// convention both OVSDB Go clients in use here share.
func dialEndpoint(endpoint string, tlsConfig *tls.Config) (net.Conn, error) {
	scheme, rest, ok := strings.Cut(endpoint, ":")
	if !ok {
		return nil, fmt.Errorf("ovsdb: malformed endpoint %q, expected scheme:address", endpoint)
	}
	switch scheme {
	case "unix":
		path := rest
		if path == "" {
			path = defaultUnixAddress
		}
		return net.Dial("unix", path)
	case "tcp":
		addr := rest
		if addr == "" {
			addr = defaultTCPAddress
		}
		return net.Dial("tcp", addr)
	case "ssl":
		addr := rest
		if addr == "" {
			addr = defaultTCPAddress
		}
		return tls.Dial("tcp", addr, tlsConfig)
	default:
		return nil, fmt.Errorf("ovsdb: unknown connection scheme %q", scheme)
	}
}

// dialAny tries each comma-separated endpoint in turn, returning the first
// successful connection.
func dialAny(endpoints string, tlsConfig *tls.Config) (net.Conn, error) {
	var lastErr error
	for _, endpoint := range strings.Split(endpoints, ",") {
		endpoint = strings.TrimSpace(endpoint)
		if endpoint == "" {
			continue
		}
		conn, err := dialEndpoint(endpoint, tlsConfig)
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no endpoints given")
	}
	return nil, &TransportError{Err: fmt.Errorf("failed to connect to %q: %w", endpoints, lastErr)}
}

// Dial connects to one of the comma-separated OVSDB endpoints, trying each
// in turn until one succeeds.
func Dial(endpoints string, opts ...Option) (*Client, error) {
	cfg := defaultOptions()
	for _, o := range opts {
		o(cfg)
	}
	conn, err := dialAny(endpoints, cfg.tlsConfig)
	if err != nil {
		return nil, err
	}
	return newClient(conn, cfg)
}

// DialTCP connects directly to a TCP endpoint, bypassing the
// comma-separated multi-endpoint convention.
func DialTCP(addr string, opts ...Option) (*Client, error) {
	cfg := defaultOptions()
	for _, o := range opts {
		o(cfg)
	}
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return newClient(conn, cfg)
}

// DialUnix connects directly to a Unix domain socket.
func DialUnix(path string, opts ...Option) (*Client, error) {
	cfg := defaultOptions()
	for _, o := range opts {
		o(cfg)
	}
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return newClient(conn, cfg)
}
