package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ares-data/wellbore.report/internal/anomaly"
	"github.com/ares-data/wellbore.report/internal/health"
	"github.com/ares-data/wellbore.report/internal/testutil"
	"github.com/ares-data/wellbore.report/internal/timeutil"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type publishedMessage struct {
	topic   string
	payload []byte
}

type fakePublisher struct {
	err      error
	messages []publishedMessage
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.messages = append(p.messages, publishedMessage{topic: topic, payload: payload.([]byte)})
	return &fakeToken{err: p.err}
}

func (p *fakePublisher) onTopic(topic string) []publishedMessage {
	var out []publishedMessage
	for _, m := range p.messages {
		if m.topic == topic {
			out = append(out, m)
		}
	}
	return out
}

func TestPublishJSON(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	payload := Payload{Timestamp: "2026-08-24T12:00:00Z", Value: 42.5, Unit: "m", Source: "synthetic"}
	require.NoError(t, PublishJSON(pub, MetricTopic("depth"), payload))

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "ares1/telemetry/depth", pub.messages[0].topic)

	var decoded Payload
	require.NoError(t, json.Unmarshal(pub.messages[0].payload, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestPublishJSONBrokerError(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{err: errors.New("broker gone")}
	err := PublishJSON(pub, MetricTopic("depth"), Payload{})
	assert.Error(t, err)
}

func TestFormatUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("SAST", 2*60*60)
	ts := time.Date(2026, 8, 24, 14, 30, 0, 0, loc)
	assert.Equal(t, "2026-08-24T12:30:00Z", FormatUTC(ts))
}

func TestSimulatorProgressesDownhole(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(DefaultSimulatorConfig(), rand.New(rand.NewSource(1)))

	var lastDepth float64
	for i := 0; i < 100; i++ {
		sample := sim.Step(float64(i)*0.05, 0.05)
		assert.Greater(t, sample.DepthM, lastDepth)
		assert.GreaterOrEqual(t, sample.ROPMPerHr, 5.0)
		assert.False(t, sample.InSaltZone)
		lastDepth = sample.DepthM
	}
}

func TestSimulatorSaltZoneRaisesTorque(t *testing.T) {
	t.Parallel()

	saltCfg := DefaultSimulatorConfig()
	saltCfg.SaltDepthM = 0 // whole run inside the salt

	salt := NewSimulator(saltCfg, rand.New(rand.NewSource(7)))
	open := NewSimulator(DefaultSimulatorConfig(), rand.New(rand.NewSource(7)))

	saltSample := salt.Step(1.0, 0.05)
	openSample := open.Step(1.0, 0.05)

	assert.True(t, saltSample.InSaltZone)
	assert.False(t, openSample.InSaltZone)
	// Same seed, same draws: the friction step dominates the noise.
	assert.Greater(t, saltSample.TorqueNM, openSample.TorqueNM)
}

func TestSampleMetricsOrder(t *testing.T) {
	t.Parallel()

	sample := Sample{HookloadKN: 1, WOBKN: 2, RPM: 3, TorqueNM: 4, ROPMPerHr: 5, DepthM: 6}
	metrics := sample.Metrics()

	var names []string
	for _, m := range metrics {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"hookload", "wob", "rpm", "torque", "rop", "depth"}, names)
	assert.Equal(t, "N*m", metrics[3].Unit)
	assert.Equal(t, 6.0, metrics[5].Value)
}

func TestReplayerPublishesResolvedChannels(t *testing.T) {
	t.Parallel()

	src := testutil.NewSliceSource(
		[]string{"TIME", "BIT_DEPTH", "ROP", "VIBRATION_0_5"},
		[][]string{
			{"2020-01-01T00:00:00", "1200.5", "14.2", "1.8"},
			{"2020-01-01T00:00:01", "", "15.0", "bad"},
			{"2020-01-01T00:00:02", "1201.0", "15.5", "2.1"},
		},
	)

	pub := &fakePublisher{}
	clock := timeutil.NewMockClock(time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC))
	replayer := NewReplayer(pub, clock, time.Second)

	rows, err := replayer.Run(context.Background(), src, health.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	// Row two skips its blank depth and non-numeric vibration.
	assert.Len(t, pub.onTopic("ares1/telemetry/depth"), 2)
	assert.Len(t, pub.onTopic("ares1/telemetry/rop"), 3)
	assert.Len(t, pub.onTopic("ares1/telemetry/vibration"), 2)

	var payload Payload
	require.NoError(t, json.Unmarshal(pub.onTopic("ares1/telemetry/depth")[0].payload, &payload))
	assert.Equal(t, 1200.5, payload.Value)
	assert.Equal(t, "m", payload.Unit)
	assert.Equal(t, "replay", payload.Source)
	assert.Equal(t, "2026-08-24T12:00:00Z", payload.Timestamp)

	assert.Len(t, clock.Sleeps(), 3, "one pacing sleep per row")
}

func TestReplayerNoResolvedChannels(t *testing.T) {
	t.Parallel()

	src := testutil.NewSliceSource([]string{"PRESSURE", "FLOW"}, [][]string{{"1", "2"}})
	pub := &fakePublisher{}
	replayer := NewReplayer(pub, timeutil.NewMockClock(time.Now()), time.Second)

	rows, err := replayer.Run(context.Background(), src, health.DefaultConfig())
	require.NoError(t, err)
	assert.Zero(t, rows)
	assert.Empty(t, pub.messages)
}

func TestReplayerStopsOnCancel(t *testing.T) {
	t.Parallel()

	src := testutil.NewSliceSource([]string{"BIT_DEPTH"}, [][]string{{"1"}, {"2"}, {"3"}})
	pub := &fakePublisher{}
	replayer := NewReplayer(pub, timeutil.NewMockClock(time.Now()), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows, err := replayer.Run(ctx, src, health.DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rows)
	assert.Empty(t, pub.messages)
}

func newTestWatcher(t *testing.T, pub Publisher) *AnomalyWatcher {
	t.Helper()

	cfg := anomaly.DefaultTorqueDetectorConfig()
	cfg.WindowSize = 20
	cfg.MinSamples = 5
	detector, err := anomaly.NewTorqueDetector(cfg)
	require.NoError(t, err)
	return NewAnomalyWatcher(detector, pub)
}

func metricJSON(t *testing.T, value float64) []byte {
	t.Helper()

	data, err := json.Marshal(Payload{Timestamp: "2026-08-24T12:00:00Z", Value: value, Unit: "N*m", Source: "synthetic"})
	require.NoError(t, err)
	return data
}

func TestAnomalyWatcherPublishesEvent(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	w := newTestWatcher(t, pub)

	depth := 2000.0
	baseline := 0.35 * 3500.0 * depth * 0.1

	w.HandleMessage(MetricTopic("depth"), metricJSON(t, depth))
	for i := 0; i < 10; i++ {
		offset := -50.0
		if i%2 == 0 {
			offset = 50.0
		}
		w.HandleMessage(MetricTopic("torque"), metricJSON(t, baseline+offset))
	}
	require.Empty(t, pub.messages, "nominal torque publishes nothing")

	w.HandleMessage(MetricTopic("torque"), metricJSON(t, baseline+5000.0))

	events := pub.onTopic(AnomalyTopic)
	require.Len(t, events, 1)

	var event anomaly.Event
	require.NoError(t, json.Unmarshal(events[0].payload, &event))
	assert.Equal(t, "torque_anomaly", event.EventType)
	assert.Equal(t, depth, event.DepthM)
	assert.InDelta(t, 5000.0, event.ResidualNM, 1e-9)
}

func TestAnomalyWatcherDropsTorqueBeforeDepth(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	w := newTestWatcher(t, pub)

	w.HandleMessage(MetricTopic("torque"), metricJSON(t, 250000.0))
	assert.Empty(t, pub.messages)
}

func TestAnomalyWatcherIgnoresMalformedPayload(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	w := newTestWatcher(t, pub)

	w.HandleMessage(MetricTopic("torque"), []byte("not json"))
	assert.Empty(t, pub.messages)
}

func TestAnomalyWatcherTopics(t *testing.T) {
	t.Parallel()

	w := newTestWatcher(t, &fakePublisher{})
	assert.Equal(t, []string{"ares1/telemetry/depth", "ares1/telemetry/torque"}, w.Topics())
}
