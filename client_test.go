package ovsdb

import (
	"testing"
	"time"

	"github.com/cenkalti/rpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return &Client{
		logger:  discardLogger(),
		events:  newEventBus(),
		updates: make(chan UpdateNotification, 4),
	}
}

func TestHandleEchoReturnsArgsAndPublishesEvent(t *testing.T) {
	c := newTestClient()
	var seen []interface{}
	c.OnLifecycleEvent(func(event LifecycleEvent, args []interface{}) {
		if event == EventEchoed {
			seen = args
		}
	})

	var reply []interface{}
	in := []interface{}{"a", "b"}
	err := c.handleEcho(&rpc2.Client{}, in, &reply)
	require.NoError(t, err)
	assert.Equal(t, in, reply)
	assert.Equal(t, in, seen)
}

func TestHandleUpdateDeliversNotification(t *testing.T) {
	c := newTestClient()
	payload := map[string]interface{}{
		"Bridge": map[string]interface{}{
			"row-uuid-1": map[string]interface{}{
				"new": map[string]interface{}{"name": "br0"},
			},
		},
	}
	err := c.handleUpdate(&rpc2.Client{}, []interface{}{"monitor-1", payload}, nil)
	require.NoError(t, err)

	select {
	case notif := <-c.updates:
		require.NotNil(t, notif.ID)
		assert.Equal(t, "monitor-1", *notif.ID)
		rowUpdate := notif.Message["Bridge"]["row-uuid-1"]
		require.NotNil(t, rowUpdate.New)
		nameVal := (*rowUpdate.New)["name"]
		name, ok := nameVal.Atom()
		require.True(t, ok)
		s, ok := name.String()
		require.True(t, ok)
		assert.Equal(t, "br0", s)
	case <-time.After(time.Second):
		t.Fatal("update notification was not delivered")
	}
}

func TestHandleUpdateRejectsWrongArity(t *testing.T) {
	c := newTestClient()
	err := c.handleUpdate(&rpc2.Client{}, []interface{}{"only-one"}, nil)
	require.Error(t, err)
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
}

func TestHandleUpdateNullMatcher(t *testing.T) {
	c := newTestClient()
	err := c.handleUpdate(&rpc2.Client{}, []interface{}{nil, map[string]interface{}{}}, nil)
	require.NoError(t, err)

	notif := <-c.updates
	assert.Nil(t, notif.ID)
}

func TestCloseClosesUpdatesChannelOnce(t *testing.T) {
	c := newTestClient()
	c.closeUpdates()
	c.closeUpdates()
	_, ok := <-c.updates
	assert.False(t, ok)
}
