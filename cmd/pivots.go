package cmd

import (
	"fmt"
	"math"

	"github.com/markusressel/base2go/internal/base"
	"github.com/spf13/cobra"
)

var pivotDegrees []float64

func addPivotFlag(cmd *cobra.Command) {
	cmd.Flags().Float64SliceVarP(&pivotDegrees, "pivots", "p", []float64{0, 0, 0, 0}, "Calibrated pivot angles of all wheels in degrees")
}

// parsePivots converts the pivot angles given in degrees into radians
func parsePivots(degrees []float64) (result [base.NumWheels]float64, err error) {
	if len(degrees) == 1 {
		for i := range result {
			result[i] = degrees[0] * math.Pi / 180
		}
		return result, nil
	}
	if len(degrees) != base.NumWheels {
		return result, fmt.Errorf("expected 1 or %d pivot angles, got %d", base.NumWheels, len(degrees))
	}
	for i, value := range degrees {
		result[i] = value * math.Pi / 180
	}
	return result, nil
}
