package settings

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
	"github.com/pinecone-io/ragcli/internal/storage"
)

// ServiceConfig is the configuration for the settings service.
type ServiceConfig struct {
	Repository storage.SettingsRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Settings"})
	return nil
}

// Service manages the locally persisted application settings.
type Service struct {
	repo   storage.SettingsRepository
	logger log.Logger
}

// NewService creates a new settings service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Get returns the persisted settings, falling back to the defaults when the
// user never saved any.
func (s *Service) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.repo.Settings(ctx)
	if errors.Is(err, model.ErrNotFound) {
		def := model.DefaultSettings()
		return &def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not load settings: %w", err)
	}

	return settings, nil
}

// Update validates and persists the given settings as a whole.
func (s *Service) Update(ctx context.Context, settings model.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("could not save settings: %w", err)
	}

	s.logger.Infof("Settings updated")

	return nil
}

// Reset restores the default settings.
func (s *Service) Reset(ctx context.Context) (*model.Settings, error) {
	def := model.DefaultSettings()
	if err := s.repo.SaveSettings(ctx, def); err != nil {
		return nil, fmt.Errorf("could not save settings: %w", err)
	}

	s.logger.Infof("Settings reset to defaults")

	return &def, nil
}

// Import reads YAML settings from r, applying them on top of the current
// ones so a partial file only overrides the keys it sets.
func (s *Service) Import(ctx context.Context, r io.Reader) (*model.Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings := *current
	if err := yaml.NewDecoder(r).Decode(&settings); err != nil {
		return nil, fmt.Errorf("could not decode settings YAML: %w", err)
	}

	if err := s.Update(ctx, settings); err != nil {
		return nil, err
	}

	return &settings, nil
}
