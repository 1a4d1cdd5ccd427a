package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

var defaultSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP}

// SignalMux hands every received signal to handler until it returns true.
type SignalMux struct {
	sigChan chan os.Signal
	handler func(os.Signal) bool
}

func NewSignalMux(handler func(os.Signal) bool, signals ...os.Signal) *SignalMux {
	if handler == nil {
		log.Panic("signal handler is nil")
	}
	if len(signals) == 0 {
		signals = defaultSignals
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)

	return &SignalMux{
		sigChan: sigChan,
		handler: handler,
	}
}

func (s *SignalMux) Serve() {
	defer signal.Stop(s.sigChan)

	for sig := range s.sigChan {
		log.Infof("receive signal: %s", sig.String())

		if s.handler(sig) {
			log.Infof("quit on signal: %s", sig.String())
			return
		}
	}
}
