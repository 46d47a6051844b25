package telemetry

import (
	"encoding/json"
	"strings"

	"github.com/ares-data/wellbore.report/internal/anomaly"
	"github.com/ares-data/wellbore.report/internal/monitoring"
)

// AnomalyWatcher pairs depth and torque samples off the telemetry bus and
// publishes detector events. Torque arriving before the first depth sample
// is dropped, since the baseline needs a depth.
type AnomalyWatcher struct {
	detector *anomaly.TorqueDetector
	pub      Publisher

	depthM    float64
	haveDepth bool
}

func NewAnomalyWatcher(detector *anomaly.TorqueDetector, pub Publisher) *AnomalyWatcher {
	return &AnomalyWatcher{detector: detector, pub: pub}
}

// Topics lists the subscriptions the watcher needs.
func (w *AnomalyWatcher) Topics() []string {
	return []string{MetricTopic("depth"), MetricTopic("torque")}
}

// HandleMessage consumes one telemetry message. Messages that are not valid
// payloads are logged and dropped rather than stopping the watcher.
func (w *AnomalyWatcher) HandleMessage(topic string, data []byte) {
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		monitoring.Logf("anomaly watch: non-JSON payload on %s: %v", topic, err)
		return
	}

	switch {
	case strings.HasSuffix(topic, "/depth"):
		w.depthM = payload.Value
		w.haveDepth = true

	case strings.HasSuffix(topic, "/torque"):
		if !w.haveDepth {
			return
		}
		event, err := w.detector.Update(w.depthM, payload.Value)
		if err != nil {
			monitoring.Logf("anomaly watch: detector rejected sample: %v", err)
			return
		}
		if event == nil {
			return
		}
		if err := PublishJSON(w.pub, AnomalyTopic, event); err != nil {
			monitoring.Logf("anomaly watch: %v", err)
			return
		}
		monitoring.Logf("anomaly watch: z=%.2f depth=%.1f torque=%.1f",
			event.ZScore, event.DepthM, event.TorqueNM)
	}
}
