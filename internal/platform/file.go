package platform

import (
	"context"
	"encoding/json"
	"os"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/geometry"
	"github.com/markusressel/base2go/internal/util"
	"github.com/pkg/errors"
)

// FileState is the raw state as provided by an external bus bridge
type FileState struct {
	Pose     base.Pose2D      `json:"pose"`
	Velocity base.Pose2D      `json:"velocity"`
	Wheels   []FileWheelState `json:"wheels"`
}

type FileWheelState struct {
	BusIndex int `json:"busIndex"`
	// PivotAngle is the raw, uncalibrated encoder angle
	PivotAngle    float64 `json:"pivotAngle"`
	PivotVelocity float64 `json:"pivotVelocity"`
}

// FileTorques is written for the external bus bridge
type FileTorques struct {
	Wheels []FileWheelTorque `json:"wheels"`
}

type FileWheelTorque struct {
	BusIndex int     `json:"busIndex"`
	Right    float64 `json:"right"`
	Left     float64 `json:"left"`
}

// FilePlatform exchanges state and torques with another process through files
type FilePlatform struct {
	Config   configuration.FilePlatformConfig
	geometry *geometry.BaseGeometry

	statePath  string
	torquePath string
	wheelIndex map[int]int
}

func NewFilePlatform(config configuration.FilePlatformConfig, g *geometry.BaseGeometry) *FilePlatform {
	wheelIndex := map[int]int{}
	for i, busIndex := range g.BusIndexMap() {
		wheelIndex[busIndex] = i
	}
	return &FilePlatform{
		Config:     config,
		geometry:   g,
		statePath:  config.StatePath,
		torquePath: config.TorquePath,
		wheelIndex: wheelIndex,
	}
}

func (p *FilePlatform) Name() string {
	return "file"
}

func (p *FilePlatform) Connect(ctx context.Context) (err error) {
	p.statePath, err = util.ExpandPath(p.Config.StatePath)
	if err != nil {
		return errors.Wrapf(err, "invalid state path %s", p.Config.StatePath)
	}
	p.torquePath, err = util.ExpandPath(p.Config.TorquePath)
	if err != nil {
		return errors.Wrapf(err, "invalid torque path %s", p.Config.TorquePath)
	}

	if _, err = os.Stat(p.statePath); err != nil {
		return errors.Wrap(err, "state file not available")
	}
	if err = util.EnsureParentDir(p.torquePath); err != nil {
		return errors.Wrap(err, "cannot create torque file directory")
	}
	return p.SetTorques(base.Torques{})
}

func (p *FilePlatform) ReadState(state *base.State) error {
	data, err := os.ReadFile(p.statePath)
	if err != nil {
		return errors.Wrap(err, "cannot read state file")
	}

	var raw FileState
	if err = json.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(err, "cannot parse state file %s", p.statePath)
	}
	if len(raw.Wheels) != base.NumWheels {
		return errors.Errorf("expected %d wheels in state file, got %d", base.NumWheels, len(raw.Wheels))
	}

	state.Pose = raw.Pose
	state.Velocity = raw.Velocity

	var seen [base.NumWheels]bool
	for _, wheel := range raw.Wheels {
		idx, ok := p.wheelIndex[wheel.BusIndex]
		if !ok {
			return errors.Errorf("unknown bus index in state file: %d", wheel.BusIndex)
		}
		if seen[idx] {
			return errors.Errorf("duplicate bus index in state file: %d", wheel.BusIndex)
		}
		seen[idx] = true
		state.PivotAngles[idx] = p.geometry.CalibratePivot(idx, wheel.PivotAngle)
		state.PivotVelocities[idx] = wheel.PivotVelocity
	}

	return nil
}

func (p *FilePlatform) SetTorques(torques base.Torques) error {
	out := FileTorques{}
	for i, wheel := range p.geometry.Wheels {
		out.Wheels = append(out.Wheels, FileWheelTorque{
			BusIndex: wheel.BusIndex,
			Right:    torques[base.RightIndex(i)],
			Left:     torques[base.LeftIndex(i)],
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return errors.Wrap(util.WriteFileAtomic(p.torquePath, data), "cannot write torque file")
}

func (p *FilePlatform) Close() error {
	return p.SetTorques(base.Torques{})
}
