package queue

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// gateProcessor blocks every job until released and tracks concurrency.
type gateProcessor struct {
	mu      sync.Mutex
	active  int
	peak    int
	order   []string
	release chan struct{}
}

func newGateProcessor() *gateProcessor {
	return &gateProcessor{release: make(chan struct{})}
}

func (p *gateProcessor) Process(taskID string) {
	p.mu.Lock()
	p.active++
	if p.active > p.peak {
		p.peak = p.active
	}
	p.order = append(p.order, taskID)
	p.mu.Unlock()

	<-p.release

	p.mu.Lock()
	p.active--
	p.mu.Unlock()
}

func TestPoolLimitsConcurrency(t *testing.T) {
	proc := newGateProcessor()
	pool := NewWorkerPool(2, 10, proc)

	for i := 0; i < 5; i++ {
		pool.AddJob(Job{TaskID: fmt.Sprintf("task-%d", i)})
	}

	// let workers pick up what they are allowed to
	deadline := time.After(2 * time.Second)
	for {
		proc.mu.Lock()
		active := proc.active
		proc.mu.Unlock()
		if active == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("workers never saturated, active = %d", active)
		case <-time.After(10 * time.Millisecond):
		}
	}

	proc.mu.Lock()
	started := append([]string(nil), proc.order...)
	proc.mu.Unlock()
	if len(started) != 2 {
		t.Fatalf("started = %d jobs, want exactly pool capacity", len(started))
	}

	// FIFO admission: the two admitted jobs are the two oldest, in any
	// worker interleaving
	admitted := map[string]bool{started[0]: true, started[1]: true}
	if !admitted["task-0"] || !admitted["task-1"] {
		t.Fatalf("admitted %v, want the two oldest jobs", started)
	}

	close(proc.release)
	pool.Shutdown()

	proc.mu.Lock()
	defer proc.mu.Unlock()
	if proc.peak > 2 {
		t.Fatalf("peak concurrency %d exceeds pool capacity 2", proc.peak)
	}
}
