// Package main publishes synthetic drilling telemetry to MQTT at a fixed
// rate, with a local CSV log of every sample. The simulated run crosses into
// a salt zone so the anomaly watcher downstream has a real friction step to
// find.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

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

func main() {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	var (
		brokerHost = flag.String("broker-host", envString("MQTT_BROKER_HOST", "localhost"), "MQTT broker host")
		brokerPort = flag.String("broker-port", envString("MQTT_BROKER_PORT", "1883"), "MQTT broker port")
		hz         = flag.Float64("hz", envFloat("TELEMETRY_HZ", 20), "Publish rate in Hz")
		saltDepth  = flag.Float64("salt-depth", envFloat("SALT_DEPTH_M", 2000), "Salt zone entry depth in meters")
		csvPath    = flag.String("csv", "outputs/telemetry_log.csv", "Local CSV log path")
	)
	flag.Parse()

	brokerURL := fmt.Sprintf("tcp://%s:%s", *brokerHost, *brokerPort)
	clientID := fmt.Sprintf("ares1-pub-%s", uuid.NewString()[:8])

	log.Printf("Connecting to MQTT at %s", brokerURL)
	client, err := telemetry.Connect(brokerURL, clientID)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Disconnect(250)

	writer, closeCSV, err := openCSVLog(*csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV log: %v", err)
	}
	defer closeCSV()

	simCfg := telemetry.DefaultSimulatorConfig()
	simCfg.SaltDepthM = *saltDepth
	sim := telemetry.NewSimulator(simCfg, rand.New(rand.NewSource(time.Now().UnixNano())))

	period := time.Duration(float64(time.Second) / *hz)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	log.Printf("Publishing telemetry at %.1f Hz", *hz)
	log.Printf("Logging CSV to %s", *csvPath)

	start := time.Now()
	lastStatus := start
	for {
		select {
		case <-sig:
			log.Printf("Stopping telemetry publisher")
			return
		case now := <-ticker.C:
			sample := sim.Step(now.Sub(start).Seconds(), period.Seconds())

			for _, metric := range sample.Metrics() {
				payload := telemetry.Payload{
					Timestamp: telemetry.FormatUTC(now),
					Value:     metric.Value,
					Unit:      metric.Unit,
					Source:    "synthetic",
				}
				if err := telemetry.PublishJSON(client, telemetry.MetricTopic(metric.Name), payload); err != nil {
					log.Printf("Publish failed: %v", err)
				}
			}

			logSample(writer, now, sample)

			if now.Sub(lastStatus) >= time.Second {
				log.Printf("depth=%.1f m torque=%.1f N*m rop=%.1f m/hr",
					sample.DepthM, sample.TorqueNM, sample.ROPMPerHr)
				lastStatus = now
			}
		}
	}
}

func openCSVLog(path string) (*csv.Writer, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}

	info, statErr := os.Stat(path)
	writeHeader := statErr != nil || info.Size() == 0

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	writer := csv.NewWriter(f)
	if writeHeader {
		if err := writer.Write([]string{
			"timestamp", "depth_m", "hookload_kn", "wob_kn", "rpm",
			"torque_nm", "rop_m_per_hr", "in_salt_zone",
		}); err != nil {
			f.Close()
			return nil, nil, err
		}
	}

	return writer, func() {
		writer.Flush()
		f.Close()
	}, nil
}

func logSample(writer *csv.Writer, now time.Time, sample telemetry.Sample) {
	record := []string{
		telemetry.FormatUTC(now),
		strconv.FormatFloat(sample.DepthM, 'f', -1, 64),
		strconv.FormatFloat(sample.HookloadKN, 'f', -1, 64),
		strconv.FormatFloat(sample.WOBKN, 'f', -1, 64),
		strconv.FormatFloat(sample.RPM, 'f', -1, 64),
		strconv.FormatFloat(sample.TorqueNM, 'f', -1, 64),
		strconv.FormatFloat(sample.ROPMPerHr, 'f', -1, 64),
		strconv.FormatBool(sample.InSaltZone),
	}
	if err := writer.Write(record); err != nil {
		log.Printf("CSV log write failed: %v", err)
	}
	writer.Flush()
}
