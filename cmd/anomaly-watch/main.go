// Package main subscribes to the depth and torque telemetry topics, scores
// torque residuals against the physics baseline, and publishes anomaly
// events back onto the bus.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ares-data/wellbore.report/internal/anomaly"
	"github.com/ares-data/wellbore.report/internal/telemetry"
)

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("Failed to parse %s=%q: %v", key, v, err)
	}
	return f
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Failed to parse %s=%q: %v", key, v, err)
	}
	return n
}

func main() {
	_ = godotenv.Load()

	var (
		brokerHost = flag.String("broker-host", envString("MQTT_BROKER_HOST", "localhost"), "MQTT broker host")
		brokerPort = flag.String("broker-port", envString("MQTT_BROKER_PORT", "1883"), "MQTT broker port")
		mu         = flag.Float64("mu", envFloat("ANOMALY_MU", 0.35), "Baseline friction coefficient")
		radius     = flag.Float64("r", envFloat("ANOMALY_R_M", 0.1), "Effective string radius in meters")
		fnPerM     = flag.Float64("fn-per-m", envFloat("ANOMALY_FN_PER_M", 3500), "Normal force per meter in N/m")
		zThreshold = flag.Float64("z", envFloat("ANOMALY_Z_THRESHOLD", 3.0), "Z-score threshold")
		window     = flag.Int("window", envInt("ANOMALY_WINDOW", 60), "Residual window size")
		minSamples = flag.Int("min-samples", envInt("ANOMALY_MIN_SAMPLES", 30), "Samples required before scoring")
	)
	flag.Parse()

	detector, err := anomaly.NewTorqueDetector(anomaly.TorqueDetectorConfig{
		Mu:         *mu,
		RadiusM:    *radius,
		FnPerM:     *fnPerM,
		ZThreshold: *zThreshold,
		WindowSize: *window,
		MinSamples: *minSamples,
	})
	if err != nil {
		log.Fatalf("Failed to build detector: %v", err)
	}

	brokerURL := fmt.Sprintf("tcp://%s:%s", *brokerHost, *brokerPort)
	clientID := fmt.Sprintf("ares1-anomaly-%s", uuid.NewString()[:8])

	log.Printf("Connecting to MQTT at %s", brokerURL)
	client, err := telemetry.Connect(brokerURL, clientID)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Disconnect(250)

	watcher := telemetry.NewAnomalyWatcher(detector, client)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		watcher.HandleMessage(msg.Topic(), msg.Payload())
	}
	for _, topic := range watcher.Topics() {
		token := client.Subscribe(topic, 0, handler)
		token.Wait()
		if err := token.Error(); err != nil {
			log.Fatalf("Failed to subscribe to %s: %v", topic, err)
		}
		log.Printf("Subscribed to %s", topic)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Printf("Stopping anomaly watcher")
}
