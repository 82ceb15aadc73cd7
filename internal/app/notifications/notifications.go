package notifications

import (
	"context"
	"fmt"
	"sort"

	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
	"github.com/pinecone-io/ragcli/internal/notify"
	"github.com/pinecone-io/ragcli/internal/task"
)

// ServiceConfig is the configuration for the notifications service.
type ServiceConfig struct {
	Store  *task.Store
	Poller *task.Poller
	Panel  *notify.Panel
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Store == nil {
		return fmt.Errorf("task store is required")
	}
	if c.Poller == nil {
		return fmt.Errorf("poller is required")
	}
	if c.Panel == nil {
		c.Panel = notify.NewPanel()
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Notifications"})
	return nil
}

// Service exposes the ingestion tasks as user-facing notifications.
type Service struct {
	store  *task.Store
	poller *task.Poller
	panel  *notify.Panel
	logger log.Logger
}

// NewService creates a new notifications service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		store:  cfg.Store,
		poller: cfg.Poller,
		panel:  cfg.Panel,
		logger: cfg.Logger,
	}, nil
}

// List returns all tracked tasks ordered for display: unread ones first,
// then read ones, each group newest first (by completion time for finished
// tasks, creation time otherwise).
func (s *Service) List(ctx context.Context) ([]model.IngestionTask, error) {
	tasks := s.store.Tasks()

	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Read != tasks[j].Read {
			return !tasks[i].Read
		}
		return tasks[i].SortTime().After(tasks[j].SortTime())
	})

	return tasks, nil
}

// UnreadCount returns how many notifications the user hasn't seen yet.
func (s *Service) UnreadCount(ctx context.Context) int {
	return s.store.UnreadCount()
}

// MarkRead acknowledges a single notification.
func (s *Service) MarkRead(ctx context.Context, taskID string) error {
	if err := s.store.MarkAsRead(ctx, taskID); err != nil {
		return fmt.Errorf("could not mark task %s as read: %w", taskID, err)
	}
	return nil
}

// MarkAllRead acknowledges every notification.
func (s *Service) MarkAllRead(ctx context.Context) error {
	for _, t := range s.store.Tasks() {
		if t.Read {
			continue
		}
		if err := s.store.MarkAsRead(ctx, t.ID); err != nil {
			return fmt.Errorf("could not mark task %s as read: %w", t.ID, err)
		}
	}
	return nil
}

// Remove deletes a notification and stops its poller if one is running.
func (s *Service) Remove(ctx context.Context, taskID string) error {
	s.poller.Stop(taskID)

	if err := s.store.RemoveTask(ctx, taskID); err != nil {
		return fmt.Errorf("could not remove task %s: %w", taskID, err)
	}

	s.logger.Debugf("Removed notification for task %s", taskID)

	return nil
}

// OpenPanel asks the active notification panel (if any) to show itself and
// reports whether a panel handled the request.
func (s *Service) OpenPanel(ctx context.Context) bool {
	return s.panel.Open()
}
