package util

import "github.com/asecurityteam/rolling"

func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

// CreateFilledRollingWindow creates a window where every slot already holds value
func CreateFilledRollingWindow(size int, value float64) *rolling.PointPolicy {
	window := CreateRollingWindow(size)
	for i := 0; i < size; i++ {
		window.Append(value)
	}
	return window
}

// GetWindowMax returns the largest value in the window
func GetWindowMax(window *rolling.PointPolicy) float64 {
	return window.Reduce(rolling.Max)
}

// GetWindowMin returns the smallest value in the window
func GetWindowMin(window *rolling.PointPolicy) float64 {
	return window.Reduce(rolling.Min)
}

// GetWindowAvg returns the average of all values in the window
func GetWindowAvg(window *rolling.PointPolicy) float64 {
	return window.Reduce(rolling.Avg)
}
