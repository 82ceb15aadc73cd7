package lib

import (
	"context"
)

// Notifications returns the tracked ingestion tasks ordered for display:
// unread first, then read, each group newest first.
func (c *Client) Notifications(ctx context.Context) ([]Task, error) {
	tasks, err := c.notificationSvc.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, newTask(t))
	}

	return result, nil
}

// UnreadCount returns how many tracked tasks haven't been acknowledged.
func (c *Client) UnreadCount(ctx context.Context) int {
	return c.notificationSvc.UnreadCount(ctx)
}

// MarkRead acknowledges a single task notification. Marking an unknown or
// already read task is a no-op.
func (c *Client) MarkRead(ctx context.Context, taskID string) error {
	return c.notificationSvc.MarkRead(ctx, taskID)
}

// MarkAllRead acknowledges every task notification.
func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.notificationSvc.MarkAllRead(ctx)
}

// RemoveTask stops tracking an ingestion task, stopping its poller when one
// is running.
func (c *Client) RemoveTask(ctx context.Context, taskID string) error {
	return c.notificationSvc.Remove(ctx, taskID)
}
