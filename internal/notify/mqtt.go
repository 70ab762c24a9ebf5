package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 5 * time.Second

// MQTTOptions configures the broker connection.
type MQTTOptions struct {
	Broker   string
	ClientID string
	Topic    string
}

// MQTTNotifier publishes events as JSON to <topic>/<op>.
type MQTTNotifier struct {
	client mqtt.Client
	topic  string
}

// NewMQTTNotifier wraps an already connected client.
func NewMQTTNotifier(client mqtt.Client, topic string) *MQTTNotifier {
	return &MQTTNotifier{client: client, topic: topic}
}

// DialMQTT connects to the broker and returns a notifier using it.
func DialMQTT(opts MQTTOptions) (*MQTTNotifier, error) {
	co := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	client := mqtt.NewClient(co)
	tok := client.Connect()
	if !tok.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect to %s: timed out", opts.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", opts.Broker, err)
	}
	return NewMQTTNotifier(client, opts.Topic), nil
}

// Notify publishes ev with QoS 1.
func (n *MQTTNotifier) Notify(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	timeout := publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	tok := n.client.Publish(n.topic+"/"+ev.Op, 1, false, payload)
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt publish %s: timed out", ev.Op)
	}
	return tok.Error()
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
