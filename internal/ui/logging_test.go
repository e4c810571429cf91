package ui

import (
	"github.com/pterm/pterm"
	"os"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Printfln("wheel %d: %.1f Nm", 2, 1.5)
	// Output:
	// wheel 2: 1.5 Nm
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(true)
	defer SetDebugEnabled(false)

	Debug("iteration %d", 1000)
	// Output:
	// DEBUG: iteration 1000
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Info("Control loop running at %d Hz", 1000)
	// Output:
	// INFO: Control loop running at 1000 Hz
}

func ExampleSuccess() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Success("Config looks good!")
	// Output:
	// SUCCESS: Config looks good!
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Warning("Loop overrun: %d", 3)
	// Output:
	// WARNING: Loop overrun: 3
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	Error("Unable to release platform: %v", os.ErrClosed)
	// Output:
	// ERROR: Unable to release platform: file already closed
}
