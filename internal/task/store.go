// Package task implements ingestion task tracking: the durable task store
// and the background pollers that drive pending tasks to a terminal state.
package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
	"github.com/pinecone-io/ragcli/internal/notify"
	"github.com/pinecone-io/ragcli/internal/storage"
)

// StoreConfig is the configuration for the task store.
type StoreConfig struct {
	Repository storage.TaskRepository
	Bus        *notify.Bus
	Logger     log.Logger
	// NowFn is the clock used for completion timestamps. Defaults to
	// time.Now in UTC.
	NowFn func() time.Time
}

func (c *StoreConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Bus == nil {
		return fmt.Errorf("notification bus is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	if c.NowFn == nil {
		c.NowFn = func() time.Time { return time.Now().UTC() }
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "task.Store"})
	return nil
}

// Store is the single source of truth for ingestion tasks. Every mutation
// is applied to the in-memory list under a lock and mirrored to the
// repository, so a new process run reconstructs the same tasks.
type Store struct {
	repo   storage.TaskRepository
	bus    *notify.Bus
	logger log.Logger
	nowFn  func() time.Time

	mu       sync.Mutex
	tasks    []model.IngestionTask
	notifyWG sync.WaitGroup
}

// NewStore creates a new task store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Store{
		repo:   cfg.Repository,
		bus:    cfg.Bus,
		logger: cfg.Logger,
		nowFn:  cfg.NowFn,
	}, nil
}

// Hydrate replaces the in-memory task list with the persisted one. Calling
// it more than once doesn't duplicate tasks.
func (s *Store) Hydrate(ctx context.Context) error {
	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		return fmt.Errorf("could not load persisted tasks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = tasks
	s.logger.Debugf("Hydrated %d tasks", len(tasks))

	return nil
}

// AddTask registers a new task as unread. A duplicated id is appended as a
// second entry, not deduplicated; mutations address the first match.
func (s *Store) AddTask(ctx context.Context, t model.IngestionTask) error {
	if t.State == "" {
		t.State = model.TaskStatePending
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.nowFn()
	}
	t.Read = false

	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, t)
	if err := s.persistLocked(ctx); err != nil {
		return err
	}

	s.logger.Infof("Tracking ingestion task %s for namespace %s", t.ID, t.NamespaceName)

	return nil
}

// UpdateTaskStatus sets the state of a task, replacing its result when one
// is given. The first transition into a terminal state stamps the
// completion time and schedules document-update notifications for the
// task's namespace; later terminal updates never touch the completion
// time, and a terminal task never goes back to pending.
func (s *Store) UpdateTaskStatus(ctx context.Context, id string, state model.TaskState, result *model.IngestionResult) error {
	if !state.Valid() {
		return fmt.Errorf("invalid task state %q: %w", state, model.ErrNotValid)
	}

	s.mu.Lock()

	i := s.findLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	t := &s.tasks[i]
	if t.State.Terminal() && state == model.TaskStatePending {
		s.mu.Unlock()
		return nil
	}

	firstTerminal := !t.State.Terminal() && state.Terminal()
	t.State = state
	if result != nil {
		t.Result = result
	}
	if firstTerminal {
		now := s.nowFn()
		t.CompletedAt = &now
	}
	namespace := t.NamespaceName

	if err := s.persistLocked(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	if firstTerminal {
		s.logger.Infof("Ingestion task %s reached state %s", id, state)

		// Notifications run on their own goroutine, strictly after the
		// mutation committed, so document refreshes never re-enter the
		// store from within the updating call stack.
		s.notifyWG.Add(1)
		go func() {
			defer s.notifyWG.Done()
			s.bus.Notify(namespace)
		}()
	}

	return nil
}

// MarkAsRead marks a task as acknowledged by the user. It never goes back
// to unread, and marking an unknown or already read task is a no-op.
func (s *Store) MarkAsRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findLocked(id)
	if i < 0 || s.tasks[i].Read {
		return nil
	}

	s.tasks[i].Read = true

	return s.persistLocked(ctx)
}

// RemoveTask deletes every entry with the given id from the store.
func (s *Store) RemoveTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept

	return s.persistLocked(ctx)
}

// Task returns the first task with the given id.
func (s *Store) Task(id string) (*model.IngestionTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	t := s.tasks[i]
	return &t, nil
}

// Tasks returns a copy of all tracked tasks in insertion order.
func (s *Store) Tasks() []model.IngestionTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]model.IngestionTask, len(s.tasks))
	copy(tasks, s.tasks)

	return tasks
}

// PendingTasks returns the tasks still waiting for a terminal state.
func (s *Store) PendingTasks() []model.IngestionTask {
	return s.filter(func(t model.IngestionTask) bool { return t.State == model.TaskStatePending })
}

// CompletedTasks returns the tasks in a terminal state.
func (s *Store) CompletedTasks() []model.IngestionTask {
	return s.filter(func(t model.IngestionTask) bool { return t.State.Terminal() })
}

// UnreadCount returns the number of tasks the user hasn't acknowledged.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, t := range s.tasks {
		if !t.Read {
			count++
		}
	}

	return count
}

// WaitNotifications blocks until every scheduled document-update
// notification has been delivered.
func (s *Store) WaitNotifications() {
	s.notifyWG.Wait()
}

func (s *Store) filter(keep func(model.IngestionTask) bool) []model.IngestionTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := []model.IngestionTask{}
	for _, t := range s.tasks {
		if keep(t) {
			tasks = append(tasks, t)
		}
	}

	return tasks
}

func (s *Store) findLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) error {
	if err := s.repo.SaveTasks(ctx, s.tasks); err != nil {
		return fmt.Errorf("could not persist tasks: %w", err)
	}
	return nil
}
