package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

// fakeClient records publishes; every other mqtt.Client method is unused.
type fakeClient struct {
	mqtt.Client
	topics   []string
	payloads [][]byte
	err      error
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.topics = append(c.topics, topic)
	c.payloads = append(c.payloads, payload.([]byte))
	return &fakeToken{err: c.err}
}

func TestMQTTNotifier_Notify(t *testing.T) {
	client := &fakeClient{}
	n := NewMQTTNotifier(client, "fleet/events")

	at := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	err := n.Notify(context.Background(), Event{Op: OpFleetItemDeleted, ItemID: "v1", Count: 2, At: at})
	require.NoError(t, err)

	require.Len(t, client.topics, 1)
	assert.Equal(t, "fleet/events/fleet.deleted", client.topics[0])

	var ev Event
	require.NoError(t, json.Unmarshal(client.payloads[0], &ev))
	assert.Equal(t, "v1", ev.ItemID)
	assert.Equal(t, 2, ev.Count)
	assert.True(t, at.Equal(ev.At))
}

func TestMQTTNotifier_PublishError(t *testing.T) {
	client := &fakeClient{err: errors.New("not connected")}
	n := NewMQTTNotifier(client, "fleet/events")
	err := n.Notify(context.Background(), Event{Op: OpFleetCleared})
	assert.EqualError(t, err, "not connected")
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Notify(context.Background(), Event{Op: OpRecordAdded}))
}
