package ovsdb

import (
	"encoding/json"
	"io"
	"net"
	"sync"

	"github.com/cenkalti/rpc2"
	"github.com/cenkalti/rpc2/jsonrpc"
	"github.com/sirupsen/logrus"
)

const updateChannelDepth = 64

// Client is a connection to one OVSDB management-protocol peer. It wires
// the byte transport, JSON framer and protocol adapter into a single
// io.ReadWriteCloser and hands that to rpc2/jsonrpc exactly the way
// amorenoz-libovsdb's OvsdbClient wires a raw net.Conn into the same call,
// so the peer's non-conformant JSON-RPC dialect is invisible above this
// layer.
type Client struct {
	rpcClient *rpc2.Client
	conn      net.Conn
	logger    logrus.FieldLogger
	events    *eventBus

	updates   chan UpdateNotification
	closeOnce sync.Once
}

func newClient(conn net.Conn, cfg *options) (*Client, error) {
	adapted := newAdaptedConn(conn, cfg.logger)
	c := &Client{
		conn:    conn,
		logger:  cfg.logger,
		events:  newEventBus(),
		updates: make(chan UpdateNotification, updateChannelDepth),
	}

	c.rpcClient = rpc2.NewClientWithCodec(jsonrpc.NewJSONCodec(adapted))
	c.rpcClient.SetBlocking(true)
	c.rpcClient.Handle("echo", c.handleEcho)
	c.rpcClient.Handle("update", c.handleUpdate)

	go c.rpcClient.Run()
	go c.watchDisconnect()

	c.events.Publish(EventConnected, nil)
	c.logger.WithField("addr", conn.RemoteAddr()).Info("ovsdb: connected")
	return c, nil
}

// handleEcho answers the peer's own liveness probe (RFC 7047 section
// 4.1.11): OVSDB servers close the connection if a client never replies to
// echo, so this must be served even though nothing else in the facade
// needs it.
func (c *Client) handleEcho(_ *rpc2.Client, args []interface{}, reply *[]interface{}) error {
	*reply = args
	c.events.Publish(EventEchoed, args)
	return nil
}

func (c *Client) handleUpdate(_ *rpc2.Client, args []interface{}, _ *[]interface{}) error {
	if len(args) != 2 {
		return &ProtocolError{Reason: "update notification requires exactly 2 parameters"}
	}
	var id *string
	if s, ok := args[0].(string); ok {
		id = &s
	}
	raw, err := json.Marshal(args[1])
	if err != nil {
		return &FrameError{Err: err}
	}
	var update TableUpdate
	if err := json.Unmarshal(raw, &update); err != nil {
		return &FrameError{Err: err}
	}
	notif := UpdateNotification{ID: id, Message: update}
	select {
	case c.updates <- notif:
	default:
		c.logger.Warn("ovsdb: dropping update notification, subscriber is not keeping up")
	}
	return nil
}

func (c *Client) watchDisconnect() {
	<-c.rpcClient.DisconnectNotify()
	c.logger.Info("ovsdb: disconnected")
	c.events.Publish(EventDisconnected, nil)
	c.closeUpdates()
}

func (c *Client) closeUpdates() {
	c.closeOnce.Do(func() { close(c.updates) })
}

// OnLifecycleEvent registers h to be called on connect, disconnect and
// inbound echo, decoupled from the row-update stream.
func (c *Client) OnLifecycleEvent(h LifecycleHandler) {
	c.events.Subscribe(h)
}

func (c *Client) call(method string, args interface{}, reply interface{}) error {
	if err := c.rpcClient.Call(method, args, reply); err != nil {
		return &RPCError{Method: method, Details: err.Error(), Err: err}
	}
	return nil
}

// ListDatabases returns the names of the databases served by the peer
// (RFC 7047 section 4.1.1).
func (c *Client) ListDatabases() ([]string, error) {
	var dbs []string
	if err := c.call("list_dbs", []interface{}{}, &dbs); err != nil {
		return nil, err
	}
	return dbs, nil
}

// GetSchema fetches the schema of a named database (RFC 7047 section
// 4.1.2).
func (c *Client) GetSchema(db string) (*DatabaseSchema, error) {
	var schema DatabaseSchema
	if err := c.call("get_schema", []interface{}{db}, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// Echo issues an explicit outbound echo request, returning whatever the
// peer sends back.
func (c *Client) Echo(values []interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := c.call("echo", values, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Monitor requests notification of changes to the given tables of db,
// returning the initial table contents. matcher identifies this monitor in
// subsequent update notifications; it is opaque to
// the client and is usually a freshly generated value, such as a UUID
// string.
func (c *Client) Monitor(db string, matcher interface{}, requests map[string]MonitorRequest) (TableUpdate, error) {
	var initial TableUpdate
	args := []interface{}{db, matcher, requests}
	if err := c.call("monitor", args, &initial); err != nil {
		return nil, err
	}
	return initial, nil
}

// Subscribe returns the channel update notifications are delivered on, in
// the order they are received. The channel is closed when the connection
// is closed or the peer disconnects.
func (c *Client) Subscribe() <-chan UpdateNotification {
	return c.updates
}

// Close terminates the connection. Any monitor subscription is discarded
// silently: nothing is sent to the peer, matching the adapter's
// unconditional suppression of outbound "update" frames.
func (c *Client) Close() error {
	c.closeUpdates()
	return c.rpcClient.Close()
}

var _ io.Closer = (*Client)(nil)
