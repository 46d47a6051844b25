// Package telemetry publishes drilling metrics over MQTT and watches the
// stream for torque anomalies.
package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	// MetricTopicPrefix is the namespace for per-metric telemetry topics,
	// e.g. ares1/telemetry/torque.
	MetricTopicPrefix = "ares1/telemetry/"

	// AnomalyTopic carries detector events.
	AnomalyTopic = "ares1/events/anomaly"
)

// MetricTopic returns the topic for a named metric.
func MetricTopic(name string) string {
	return MetricTopicPrefix + name
}

// Payload is the wire format for a single telemetry sample.
type Payload struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Source    string  `json:"source"`
}

// FormatUTC renders a timestamp the way every publisher on the bus does.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Publisher is the slice of the MQTT client the publishers need. The paho
// client satisfies it directly.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// PublishJSON marshals v and publishes it at QoS 0.
func PublishJSON(p Publisher, topic string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode payload for %s: %v", topic, err)
	}
	token := p.Publish(topic, 0, false, data)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %v", topic, err)
	}
	return nil
}

// Connect dials an MQTT broker and blocks until the session is up.
func Connect(brokerURL, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetKeepAlive(60 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %v", brokerURL, err)
	}
	return client, nil
}
