package controller

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/atomic"
)

const (
	noShutdown  int32 = 0
	interrupted int32 = -1
)

// TerminationSignals end the control loop
var TerminationSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT}

// ShutdownCoordinator latches the first shutdown request. The control loop
// polls it once per iteration, signal handling only ever sets it.
type ShutdownCoordinator struct {
	reason *atomic.Int32
}

func NewShutdownCoordinator() *ShutdownCoordinator {
	return &ShutdownCoordinator{
		reason: atomic.NewInt32(noShutdown),
	}
}

// Request latches a shutdown caused by the given signal. Returns false if a shutdown was already requested.
func (s *ShutdownCoordinator) Request(sig os.Signal) bool {
	value := interrupted
	if sysSig, ok := sig.(syscall.Signal); ok {
		value = int32(sysSig)
	}
	return s.reason.CompareAndSwap(noShutdown, value)
}

// Interrupt latches a shutdown that was not caused by a signal
func (s *ShutdownCoordinator) Interrupt() bool {
	return s.reason.CompareAndSwap(noShutdown, interrupted)
}

func (s *ShutdownCoordinator) Requested() bool {
	return s.reason.Load() != noShutdown
}

// Reason describes what caused the shutdown
func (s *ShutdownCoordinator) Reason() string {
	switch value := s.reason.Load(); value {
	case noShutdown:
		return "running"
	case interrupted:
		return "interrupted"
	default:
		return syscall.Signal(value).String()
	}
}

// Listen latches every incoming termination signal until ctx is done.
// Signals after the first one are swallowed.
func (s *ShutdownCoordinator) Listen(ctx context.Context, signals ...os.Signal) error {
	if len(signals) == 0 {
		signals = TerminationSignals
	}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, signals...)
	defer signal.Stop(sig)

	return s.drain(ctx, sig)
}

func (s *ShutdownCoordinator) drain(ctx context.Context, sig <-chan os.Signal) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case received := <-sig:
			s.Request(received)
		}
	}
}
