package lib

import (
	"context"
)

// Settings returns the persisted settings, falling back to the defaults when
// none were ever saved.
func (c *Client) Settings(ctx context.Context) (*Settings, error) {
	return c.settingsSvc.Get(ctx)
}

// UpdateSettings validates and persists the given settings as a whole.
func (c *Client) UpdateSettings(ctx context.Context, s Settings) error {
	return c.settingsSvc.Update(ctx, s)
}

// ResetSettings restores and returns the default settings.
func (c *Client) ResetSettings(ctx context.Context) (*Settings, error) {
	return c.settingsSvc.Reset(ctx)
}
