package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediqueue/mediqueue/internal/platform/events"
)

type fakeConn struct {
	msgs []*nats.Msg
	err  error
}

func (f *fakeConn) PublishMsg(m *nats.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, m)
	return nil
}

func TestPublisher_Subject(t *testing.T) {
	assert.Equal(t, "mediqueue.queue.entry_added", NewPublisher(nil, "mediqueue").Subject(events.TypeEntryAdded))
	assert.Equal(t, "queue.reset", NewPublisher(nil, "").Subject(events.TypeQueueReset))
}

func TestPublisher_Publish(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(conn, "clinic")

	ev, err := events.New(events.TopicQueue, events.TypeQueueReset, map[string]int{"removedCount": 4})
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), ev))

	require.Len(t, conn.msgs, 1)
	msg := conn.msgs[0]
	assert.Equal(t, "clinic.queue.reset", msg.Subject)
	assert.Equal(t, ev.ID, msg.Header.Get(nats.MsgIdHdr))

	var got events.Event
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, ev.Type, got.Type)
	assert.JSONEq(t, `{"removedCount":4}`, string(got.Data))
}

func TestPublisher_PublishError(t *testing.T) {
	boom := errors.New("nats: connection closed")
	p := NewPublisher(&fakeConn{err: boom}, "clinic")

	err := p.Publish(context.Background(), events.Event{Type: events.TypeEntryAdded})
	assert.ErrorIs(t, err, boom)
}

func TestPublisher_CloseWithoutConnection(t *testing.T) {
	assert.NoError(t, NewPublisher(&fakeConn{}, "x").Close())
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(Config{URL: "nats://127.0.0.1:1", Name: "test", MaxReconnects: 0}, zerolog.Nop())
	assert.Error(t, err)
}
