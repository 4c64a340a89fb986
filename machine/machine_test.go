//
// machine_test.go
//
// Copyright (c) 2026 SPDZ-Go Authors
//
// All rights reserved.

package machine

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/spdzgo/runtime/env"
	"github.com/spdzgo/runtime/processor"
)

func TestRunExecutesEveryWorkerConcurrently(t *testing.T) {
	var ran atomic.Int32
	workers := make([]*Worker, 4)
	for i := range workers {
		workers[i] = &Worker{
			ThreadNum: i,
			Run: func(p *processor.Processor) error {
				ran.Add(1)
				return nil
			},
		}
	}
	m := New(&env.Config{}, workers)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if ran.Load() != 4 {
		t.Fatalf("expected 4 workers to run, got %d", ran.Load())
	}
}

func TestRunReportsWorkerError(t *testing.T) {
	boom := errors.New("boom")
	workers := []*Worker{
		{ThreadNum: 0, Run: func(p *processor.Processor) error { return nil }},
		{ThreadNum: 1, Run: func(p *processor.Processor) error { return boom }},
	}
	m := New(&env.Config{}, workers)
	if err := m.Run(); err == nil {
		t.Fatal("expected an error from the failing worker")
	}
}
