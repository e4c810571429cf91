package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/geometry"
)

// Platform is the hardware (or simulation) the control loop reads from and drives
type Platform interface {
	// Name of the platform type
	Name() string

	// Connect establishes the connection to the hardware
	Connect(ctx context.Context) error

	// ReadState fills the given state with the latest measurements
	ReadState(state *base.State) error

	// SetTorques sends the given motor torques to the hardware
	SetTorques(torques base.Torques) error

	// Close releases the hardware, leaving all motors without torque
	Close() error
}

func NewPlatform(config configuration.PlatformConfig, g *geometry.BaseGeometry, period time.Duration) (Platform, error) {
	if config.Simulated != nil {
		return NewSimulatedPlatform(*config.Simulated, g, period), nil
	}

	if config.File != nil {
		return NewFilePlatform(*config.File, g), nil
	}

	return nil, fmt.Errorf("no matching platform type for config: %v", config)
}
