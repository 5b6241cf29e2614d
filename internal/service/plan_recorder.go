package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"github.com/guttosm/meal-planner-service/internal/logger"
	"github.com/guttosm/meal-planner-service/internal/metrics"
)

// RecorderConfig holds configuration for the plan recorder.
type RecorderConfig struct {
	// BufferSize is the capacity of the pending run queue.
	BufferSize int
	// Workers is the number of goroutines writing runs.
	Workers int
	// BatchSize caps how many queued runs one write carries.
	BatchSize int
	// WriteTimeout bounds one write to the history store.
	WriteTimeout time.Duration
}

// DefaultRecorderConfig returns the recorder defaults.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		BufferSize:   1000,
		Workers:      2,
		BatchSize:    50,
		WriteTimeout: 5 * time.Second,
	}
}

// RecorderStats counts recorder activity since start.
type RecorderStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Errors   int64 `json:"errors"`
}

// PlanRecorder writes plan runs to history off the request path through a
// bounded queue and a fixed worker pool. Runs are dropped when the queue is full.
type PlanRecorder struct {
	history PlanHistory
	cfg     RecorderConfig
	runs    chan model.PlanRun
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	errors   atomic.Int64
}

// NewPlanRecorder starts the worker pool.
func NewPlanRecorder(history PlanHistory, cfg RecorderConfig) *PlanRecorder {
	def := DefaultRecorderConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	r := &PlanRecorder{
		history: history,
		cfg:     cfg,
		runs:    make(chan model.PlanRun, cfg.BufferSize),
	}
	for i := 0; i < cfg.Workers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
	return r
}

// Record enqueues run. It never blocks and reports false when the run was dropped.
func (r *PlanRecorder) Record(run model.PlanRun) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.drop()
		return false
	}
	select {
	case r.runs <- run:
		r.enqueued.Add(1)
		return true
	default:
		r.drop()
		return false
	}
}

func (r *PlanRecorder) drop() {
	r.dropped.Add(1)
	metrics.RecordPlanRun("dropped")
}

func (r *PlanRecorder) worker() {
	defer r.wg.Done()

	for run := range r.runs {
		batch := make([]model.PlanRun, 1, r.cfg.BatchSize)
		batch[0] = run
	fill:
		for len(batch) < r.cfg.BatchSize {
			select {
			case next, ok := <-r.runs:
				if !ok {
					break fill
				}
				batch = append(batch, next)
			default:
				break fill
			}
		}
		r.write(batch)
	}
}

func (r *PlanRecorder) write(batch []model.PlanRun) {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.WriteTimeout)
	defer cancel()

	if err := r.history.Save(ctx, batch); err != nil {
		r.errors.Add(int64(len(batch)))
		metrics.RecordPlanRun("error")
		log := logger.Logger()
		log.Warn().Err(err).Int("runs", len(batch)).Msg("Failed to record plan runs")
		return
	}
	r.written.Add(int64(len(batch)))
	for range batch {
		metrics.RecordPlanRun("written")
	}
}

// Stop stops accepting runs and waits until queued runs are written.
// It is safe to call more than once.
func (r *PlanRecorder) Stop() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.runs)
	r.mu.Unlock()

	r.wg.Wait()
}

// Stats returns current recorder statistics.
func (r *PlanRecorder) Stats() RecorderStats {
	return RecorderStats{
		Enqueued: r.enqueued.Load(),
		Dropped:  r.dropped.Load(),
		Written:  r.written.Load(),
		Errors:   r.errors.Load(),
	}
}
