package dispatch

import (
	"context"
	"sync"

	reportapp "github.com/retailops/backend/internal/application/report"
	"go.uber.org/zap"
)

// Config holds worker pool configuration
type Config struct {
	Workers   int
	QueueSize int
}

// DefaultConfig returns the default worker pool configuration
func DefaultConfig() Config {
	return Config{
		Workers:   4,
		QueueSize: 100,
	}
}

type task struct {
	name string
	run  func(ctx context.Context)
}

// WorkerPool executes submitted tasks on a fixed set of workers.
// Submission is fire-and-forget: Submit returns once the task is queued,
// and submitters observe outcomes only through whatever state the task
// itself writes. Tasks run to completion; there is no per-task
// cancellation or timeout.
type WorkerPool struct {
	config Config
	logger *zap.Logger

	tasks     chan task
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(config Config, logger *zap.Logger) *WorkerPool {
	if config.Workers <= 0 {
		config.Workers = DefaultConfig().Workers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultConfig().QueueSize
	}
	return &WorkerPool{
		config: config,
		logger: logger,
		tasks:  make(chan task, config.QueueSize),
	}
}

// Start launches the workers
func (p *WorkerPool) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.config.Workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.logger.Info("Dispatcher started", zap.Int("workers", p.config.Workers))
	return nil
}

// Stop drains the workers, waiting for in-flight tasks up to ctx's deadline
func (p *WorkerPool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	p.mu.Unlock()

	close(p.tasks)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if p.cancel != nil {
			p.cancel()
		}
		p.logger.Info("Dispatcher stopped gracefully")
		return nil
	case <-ctx.Done():
		if p.cancel != nil {
			p.cancel()
		}
		p.logger.Warn("Dispatcher stop timed out")
		return ctx.Err()
	}
}

// Submit queues a task for execution. It never blocks: a full queue is
// reported as ErrQueueFull.
func (p *WorkerPool) Submit(name string, run func(ctx context.Context)) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return ErrNotRunning
	}
	p.mu.Unlock()

	select {
	case p.tasks <- task{name: name, run: run}:
		p.logger.Debug("Task submitted", zap.String("task", name))
		return nil
	default:
		return ErrQueueFull
	}
}

// worker processes tasks from the queue
func (p *WorkerPool) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()

	for t := range p.tasks {
		p.runTask(ctx, t, workerID)
	}
}

// runTask executes a single task, shielding the worker from panics
func (p *WorkerPool) runTask(ctx context.Context, t task, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Task panicked",
				zap.Int("worker_id", workerID),
				zap.String("task", t.name),
				zap.Any("panic", r),
			)
		}
	}()

	p.logger.Debug("Processing task",
		zap.Int("worker_id", workerID),
		zap.String("task", t.name),
	)
	t.run(ctx)
}

var _ reportapp.Dispatcher = (*WorkerPool)(nil)
