package signaler

import (
	"os"
	"os/signal"
	"syscall"
)

// WaitForInterrupt returns a channel notified on an interrupt or terminate
// signal
func WaitForInterrupt() chan os.Signal {
	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt, syscall.SIGTERM)
	return sigC
}

// Stop detaches sigC from signal delivery
func Stop(sigC chan os.Signal) {
	signal.Stop(sigC)
}
