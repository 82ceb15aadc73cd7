package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
)

// DefaultPollInterval is how often a task's status is queried.
const DefaultPollInterval = 5 * time.Second

// PollerConfig is the configuration for the poller.
type PollerConfig struct {
	Store    *Store
	Client   ingestor.Client
	Interval time.Duration
	Logger   log.Logger
}

func (c *PollerConfig) defaults() error {
	if c.Store == nil {
		return fmt.Errorf("store is required")
	}
	if c.Client == nil {
		return fmt.Errorf("client is required")
	}
	if c.Interval <= 0 {
		c.Interval = DefaultPollInterval
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "task.Poller"})
	return nil
}

// Poller runs one cancellable polling loop per pending task, keyed by task
// id. Each loop queries the backend at a fixed interval until the task
// reaches a terminal state or the loop is stopped. Queries are issued
// inline in the loop, so a slow response can never overlap the next one
// for the same task.
type Poller struct {
	store    *Store
	client   ingestor.Client
	interval time.Duration
	logger   log.Logger

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

// NewPoller creates a new poller.
func NewPoller(cfg PollerConfig) (*Poller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Poller{
		store:    cfg.Store,
		client:   cfg.Client,
		interval: cfg.Interval,
		logger:   cfg.Logger,
		cancels:  map[string]context.CancelFunc{},
	}, nil
}

// Start begins polling a task. Starting an already polled task is a no-op.
func (p *Poller) Start(ctx context.Context, taskID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.cancels[taskID]; ok {
		return
	}

	pollCtx, cancel := context.WithCancel(ctx)
	p.cancels[taskID] = cancel

	p.wg.Add(1)
	go p.run(pollCtx, taskID)

	p.logger.Debugf("Started poller for task %s", taskID)
}

// StartPending starts a poller for every pending task currently in the
// store and returns how many were started.
func (p *Poller) StartPending(ctx context.Context) int {
	pending := p.store.PendingTasks()
	for _, t := range pending {
		p.Start(ctx, t.ID)
	}

	return len(pending)
}

// Stop cancels the poller of a single task, if any.
func (p *Poller) Stop(taskID string) {
	p.mu.Lock()
	cancel, ok := p.cancels[taskID]
	p.mu.Unlock()

	if ok {
		cancel()
	}
}

// StopAll cancels every running poller.
func (p *Poller) StopAll() {
	p.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(p.cancels))
	for _, cancel := range p.cancels {
		cancels = append(cancels, cancel)
	}
	p.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Wait blocks until every started poller has finished.
func (p *Poller) Wait() {
	p.wg.Wait()
}

func (p *Poller) run(ctx context.Context, taskID string) {
	defer p.wg.Done()
	defer p.remove(taskID)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debugf("Poller for task %s cancelled", taskID)
			return
		case <-ticker.C:
			if done := p.pollOnce(ctx, taskID); done {
				return
			}
		}
	}
}

// pollOnce queries the task status once and applies it to the store. It
// returns true when polling should stop.
func (p *Poller) pollOnce(ctx context.Context, taskID string) bool {
	status, err := p.client.TaskStatus(ctx, taskID)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		// Transient failures are retried forever on the next tick, they
		// never surface as task errors.
		p.logger.Warningf("Could not get status of task %s, will retry: %s", taskID, err)
		return false
	}

	current, err := p.store.Task(taskID)
	if errors.Is(err, model.ErrNotFound) {
		// The task was removed while we were polling it.
		return true
	}
	if err != nil {
		p.logger.Errorf("Could not read task %s from the store: %s", taskID, err)
		return false
	}

	if status.State != current.State {
		if err := p.store.UpdateTaskStatus(ctx, taskID, status.State, status.Result); err != nil {
			p.logger.Errorf("Could not update task %s: %s", taskID, err)
			return false
		}
	}

	return status.State.Terminal()
}

func (p *Poller) remove(taskID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cancel, ok := p.cancels[taskID]; ok {
		cancel()
		delete(p.cancels, taskID)
	}
}
