package main

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/senzing-package/internal/application"
	"github.com/eugenenazirov/senzing-package/internal/config"
	"github.com/eugenenazirov/senzing-package/internal/logging"
)

var (
	signalNotify = signal.Notify
	signalStop   = signal.Stop
)

// signalHandler routes SIGINT and SIGTERM to its current handler until Stop.
type signalHandler struct {
	handler atomic.Pointer[func(os.Signal)]
	ch      chan os.Signal
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

func handleSignals(handler func(os.Signal)) *signalHandler {
	h := &signalHandler{
		ch:   make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	h.handler.Store(&handler)
	signalNotify(h.ch, os.Interrupt, syscall.SIGTERM)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		select {
		case sig := <-h.ch:
			(*h.handler.Load())(sig)
		case <-h.done:
		}
	}()
	return h
}

// Rebind replaces the handler. The signals stay registered throughout.
func (h *signalHandler) Rebind(handler func(os.Signal)) {
	h.handler.Store(&handler)
}

// Stop unregisters the signals and waits for the routing goroutine.
func (h *signalHandler) Stop() {
	h.once.Do(func() {
		signalStop(h.ch)
		close(h.done)
		h.wg.Wait()
	})
}

// exitOnSignal is installed before the configuration is known.
func exitOnSignal(os.Signal) {
	exit(0)
}

// logExitOnSignal reports the interrupted run like a normal exit, then exits.
func logExitOnSignal(cfg config.Config, msgs *logging.Messages, sub application.Subcommand, start time.Time) func(os.Signal) {
	return func(sig os.Signal) {
		msgs.With(
			zap.Any("context", application.ExitContext(cfg, start, time.Now())),
			zap.String("signal", sig.String()),
		).Info(logging.MsgExit, sub)
		_ = msgs.Logger().Sync()
		exit(0)
	}
}
