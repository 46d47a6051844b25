// Package physics holds first-order baseline models for drilling mechanics.
package physics

import "fmt"

// TorqueBaseline returns a first-order surface torque estimate in N*m for a
// bit at the given measured depth:
//
//	N_total = fnPerM * depthM
//	torque  = mu * N_total * rM
//
// mu is the friction coefficient, rM the effective string radius in meters
// and fnPerM the distributed normal force per meter of string in N/m. The
// model exists to supply residuals for anomaly detection, not to replace a
// proper torque and drag simulation.
func TorqueBaseline(depthM, mu, rM, fnPerM float64) (float64, error) {
	if depthM < 0 {
		return 0, fmt.Errorf("depth must be non-negative, got %g", depthM)
	}
	if mu < 0 {
		return 0, fmt.Errorf("friction coefficient must be non-negative, got %g", mu)
	}
	if rM <= 0 {
		return 0, fmt.Errorf("radius must be positive, got %g", rM)
	}
	if fnPerM < 0 {
		return 0, fmt.Errorf("normal force per meter must be non-negative, got %g", fnPerM)
	}

	nTotal := fnPerM * depthM
	return mu * nTotal * rM, nil
}
