package ovsdb

import (
	"encoding/json"
	"io"

	"github.com/sirupsen/logrus"
)

// adaptedConn wraps a raw byte transport so that it looks, to an ordinary
// strict JSON-RPC 2.0 client, like a well-behaved JSON-RPC 2.0 peer. It
// performs the exact, stateless per-frame rewrite described for the OVSDB
// management protocol dialect (RFC 7047 section 4.1), so that it can be
// handed directly to rpc2/jsonrpc in place of a raw net.Conn.
//
// Outbound frames whose method is "update" are dropped entirely: OVSDB
// pushes update notifications unsolicited, so there is nothing to
// subscribe to and unsubscribing means discarding the local waiter, not
// sending anything.
type adaptedConn struct {
	rwc        io.ReadWriteCloser
	dec        *frameDecoder
	pending    []byte
	readScratch []byte
	logger     logrus.FieldLogger
}

func newAdaptedConn(rwc io.ReadWriteCloser, logger logrus.FieldLogger) *adaptedConn {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &adaptedConn{
		rwc:         rwc,
		dec:         &frameDecoder{},
		readScratch: make([]byte, 4096),
		logger:      logger,
	}
}

// Write rewrites one outbound JSON-RPC frame per the outbound table: drop
// "update" frames, strip "jsonrpc", insert an empty "params" if absent.
func (c *adaptedConn) Write(p []byte) (int, error) {
	var msg map[string]interface{}
	if err := json.Unmarshal(p, &msg); err != nil {
		return 0, &FrameError{Err: err}
	}
	if method, ok := msg["method"]; ok && method == "update" {
		c.logger.Debug("ovsdb: suppressing outbound update frame")
		return len(p), nil
	}
	delete(msg, "jsonrpc")
	if _, ok := msg["params"]; !ok {
		msg["params"] = []interface{}{}
	}
	out, err := json.Marshal(msg)
	if err != nil {
		return 0, &FrameError{Err: err}
	}
	c.logger.WithField("frame", string(out)).Trace("ovsdb: outbound frame")
	if _, err := c.rwc.Write(out); err != nil {
		return 0, &TransportError{Err: err}
	}
	return len(p), nil
}

// Read returns bytes of inbound frames, each rewritten per the inbound
// table: always insert "jsonrpc":"2.0", drop "error" when "result" is
// present, drop a null "id".
func (c *adaptedConn) Read(p []byte) (int, error) {
	for {
		if len(c.pending) > 0 {
			n := copy(p, c.pending)
			c.pending = c.pending[n:]
			return n, nil
		}
		raw, ok, err := c.dec.Next()
		if err != nil {
			return 0, err
		}
		if ok {
			rewritten, rerr := c.rewriteInbound(raw)
			if rerr != nil {
				return 0, rerr
			}
			c.pending = rewritten
			continue
		}
		n, rerr := c.rwc.Read(c.readScratch)
		if n > 0 {
			c.dec.Feed(c.readScratch[:n])
		}
		if rerr != nil {
			if n > 0 {
				continue
			}
			return 0, &TransportError{Err: rerr}
		}
		if n == 0 {
			continue
		}
	}
}

func (c *adaptedConn) rewriteInbound(raw json.RawMessage) ([]byte, error) {
	var msg map[string]interface{}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, &FrameError{Err: err}
	}
	msg["jsonrpc"] = "2.0"
	if _, hasResult := msg["result"]; hasResult {
		delete(msg, "error")
	}
	if idVal, hasID := msg["id"]; hasID && idVal == nil {
		delete(msg, "id")
	}
	out, err := json.Marshal(msg)
	if err != nil {
		return nil, &FrameError{Err: err}
	}
	c.logger.WithField("frame", string(out)).Trace("ovsdb: inbound frame")
	return out, nil
}

func (c *adaptedConn) Close() error {
	return c.rwc.Close()
}
