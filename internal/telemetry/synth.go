package telemetry

import (
	"math"
	"math/rand"

	"github.com/ares-data/wellbore.report/internal/physics"
)

// SimulatorConfig shapes the synthetic drilling run.
type SimulatorConfig struct {
	SaltDepthM float64 // depth where the string enters the salt zone
	BaseMu     float64 // friction coefficient above the salt
	SaltMu     float64 // friction coefficient inside the salt
	RadiusM    float64
	FnPerM     float64
}

func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		SaltDepthM: 2000.0,
		BaseMu:     0.35,
		SaltMu:     0.55,
		RadiusM:    0.1,
		FnPerM:     3500.0,
	}
}

// Sample is one tick of synthetic surface telemetry.
type Sample struct {
	DepthM     float64
	HookloadKN float64
	WOBKN      float64
	RPM        float64
	TorqueNM   float64
	ROPMPerHr  float64
	InSaltZone bool
}

// Metric is one publishable channel of a sample.
type Metric struct {
	Name  string
	Value float64
	Unit  string
}

// Metrics lists the sample's channels in publish order.
func (s Sample) Metrics() []Metric {
	return []Metric{
		{"hookload", s.HookloadKN, "kN"},
		{"wob", s.WOBKN, "kN"},
		{"rpm", s.RPM, "rpm"},
		{"torque", s.TorqueNM, "N*m"},
		{"rop", s.ROPMPerHr, "m/hr"},
		{"depth", s.DepthM, "m"},
	}
}

// Simulator produces a plausible drilling run: slow sinusoidal drift on each
// channel, gaussian noise, and a friction step when the bit crosses into the
// salt zone so the torque channel has something worth detecting.
type Simulator struct {
	cfg    SimulatorConfig
	rng    *rand.Rand
	depthM float64
}

func NewSimulator(cfg SimulatorConfig, rng *rand.Rand) *Simulator {
	return &Simulator{cfg: cfg, rng: rng}
}

// DepthM reports the current bit depth.
func (s *Simulator) DepthM() float64 {
	return s.depthM
}

// Step advances the run by periodSec seconds at elapsed time tSec and
// returns the new sample.
func (s *Simulator) Step(tSec, periodSec float64) Sample {
	ropMPerHr := math.Max(5.0, 18.0+2.5*math.Sin(tSec/30.0)+s.rng.NormFloat64()*0.4)
	s.depthM += ropMPerHr / 3600.0 * periodSec

	rpm := 120.0 + 8.0*math.Sin(tSec/20.0) + s.rng.NormFloat64()*1.0
	wobKN := 90.0 + 6.0*math.Sin(tSec/15.0) + s.rng.NormFloat64()*1.2
	hookloadKN := 210.0 + wobKN + (s.depthM/1000.0)*5.0 + s.rng.NormFloat64()*0.8

	inSalt := s.depthM >= s.cfg.SaltDepthM
	mu := s.cfg.BaseMu
	noiseScale := 0.02
	if inSalt {
		mu = s.cfg.SaltMu
		noiseScale = 0.06
	}

	// Inputs are non-negative by construction, so the baseline cannot fail.
	baseline, _ := physics.TorqueBaseline(s.depthM, mu, s.cfg.RadiusM, s.cfg.FnPerM)
	torqueNM := baseline + s.rng.NormFloat64()*baseline*noiseScale

	return Sample{
		DepthM:     s.depthM,
		HookloadKN: hookloadKN,
		WOBKN:      wobKN,
		RPM:        rpm,
		TorqueNM:   torqueNM,
		ROPMPerHr:  ropMPerHr,
		InSaltZone: inSalt,
	}
}
