//
// machine.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

// Package machine orchestrates multiple processor.Processor instances,
// one per program thread, running concurrently on this party's node.
// Each Processor is single-threaded; Machine is the host that runs
// several of them on distinct goroutines.
package machine

import (
	"fmt"
	"sync"

	"github.com/spdzgo/runtime/env"
	"github.com/spdzgo/runtime/processor"
)

// Worker is one thread's processor and the program it runs. Run
// executes the thread to completion (or until it returns an error) and
// is supplied by the caller, since program dispatch is outside this
// package's scope.
type Worker struct {
	ThreadNum int
	Proc      *processor.Processor
	Run       func(p *processor.Processor) error
}

// Machine runs a fixed set of workers to completion concurrently,
// grounded in the prior design's goroutine-per-peer style (bmr.Player,
// p2p.Network): one goroutine per thread, joined by a WaitGroup, with
// every blocking call (socket I/O, stop_open/stop_mult, file access)
// living inside the worker's own goroutine rather than shared state.
type Machine struct {
	Config  *env.Config
	workers []*Worker

	mu      sync.Mutex
	errs    []error
}

// New creates a Machine with the given workers.
func New(config *env.Config, workers []*Worker) *Machine {
	return &Machine{Config: config, workers: workers}
}

// Run starts every worker on its own goroutine and waits for all of
// them to finish. It returns the first error encountered, if any,
// tagged with the failing thread number; every worker still runs to
// completion (or its own failure) regardless of another's error.
func (m *Machine) Run() error {
	var wg sync.WaitGroup
	wg.Add(len(m.workers))
	for _, w := range m.workers {
		w := w
		go func() {
			defer wg.Done()
			if err := w.Run(w.Proc); err != nil {
				m.recordErr(fmt.Errorf("machine: thread %d: %w", w.ThreadNum, err))
			}
		}()
	}
	wg.Wait()

	if len(m.errs) == 0 {
		return nil
	}
	return m.errs[0]
}

func (m *Machine) recordErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
	m.Config.Debugf("machine: %v", err)
}

// Close tears down every worker's processor, in the order the workers
// were passed to New, collecting the first teardown error encountered.
func (m *Machine) Close() error {
	var firstErr error
	for _, w := range m.workers {
		if err := w.Proc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
