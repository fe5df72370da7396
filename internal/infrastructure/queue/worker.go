package queue

import (
	"context"
	"log"
	"sync"
)

type Worker struct {
	ID        int
	JobChan   <-chan Job
	Wg        *sync.WaitGroup
	Processor Processor
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer w.Wg.Done()
		for {
			select {
			case job, ok := <-w.JobChan:
				if !ok {
					log.Printf("Worker %d: job channel closed", w.ID)
					return
				}
				select {
				case <-ctx.Done():
					log.Printf("Worker %d: job for task %s dropped during shutdown", w.ID, job.TaskID)
					continue
				default:
					log.Printf("Worker %d: processing task %s", w.ID, job.TaskID)
					w.Processor.Process(job.TaskID)
				}
			case <-ctx.Done():
				log.Printf("Worker %d: stopping due to context cancellation", w.ID)
				return
			}
		}
	}()
}
