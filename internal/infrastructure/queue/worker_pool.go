package queue

import (
	"context"
	"sync"
)

// WorkerPool is the admission control point of the pipeline: at most
// workerCount tasks are processed at once, the rest wait in FIFO order
// on the buffered job channel.
type WorkerPool struct {
	JobChan chan Job
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewWorkerPool(workerCount, queueSize int, processor Processor) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		JobChan: make(chan Job, queueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := 0; i < workerCount; i++ {
		worker := &Worker{
			ID:        i,
			JobChan:   pool.JobChan,
			Wg:        &pool.wg,
			Processor: processor,
		}
		pool.wg.Add(1)
		worker.Start(pool.ctx)
	}
	return pool
}

func (p *WorkerPool) AddJob(job Job) {
	p.JobChan <- job
}

func (p *WorkerPool) Shutdown() {
	p.cancel()
	close(p.JobChan)
	p.wg.Wait()
}
