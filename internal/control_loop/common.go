package control_loop

// ControlLoop turns an error signal into a correction
type ControlLoop interface {
	// Update advances the control loop by dt seconds
	Update(err float64, dt float64) float64
	// Reset clears all accumulated state
	Reset()
}
