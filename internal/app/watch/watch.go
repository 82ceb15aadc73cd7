package watch

import (
	"context"
	"fmt"

	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
	"github.com/pinecone-io/ragcli/internal/notify"
	"github.com/pinecone-io/ragcli/internal/storage"
	"github.com/pinecone-io/ragcli/internal/task"
)

// ServiceConfig is the configuration for the watch service.
type ServiceConfig struct {
	Client     ingestor.Client
	Store      *task.Store
	Poller     *task.Poller
	Bus        *notify.Bus
	Repository storage.FailedDocumentRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("client is required")
	}
	if c.Store == nil {
		return fmt.Errorf("task store is required")
	}
	if c.Poller == nil {
		return fmt.Errorf("poller is required")
	}
	if c.Bus == nil {
		return fmt.Errorf("notification bus is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("failed document repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Watch"})
	return nil
}

// Service resumes tracking of the persisted pending tasks and drives them to
// completion: it rehydrates the store, restarts a poller per pending task and
// refreshes namespace state every time one of their ingestions finishes.
type Service struct {
	client ingestor.Client
	store  *task.Store
	poller *task.Poller
	bus    *notify.Bus
	repo   storage.FailedDocumentRepository
	logger log.Logger
}

// NewService creates a new watch service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		store:  cfg.Store,
		poller: cfg.Poller,
		bus:    cfg.Bus,
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Result is the outcome of a watch run.
type Result struct {
	// Resumed is how many pending tasks were picked up.
	Resumed int
	// Finished are the tasks that reached a terminal state during the run,
	// in store order.
	Finished []model.IngestionTask
}

// Run hydrates the store, resumes polling every pending task and blocks
// until all of them reach a terminal state or ctx is cancelled. While it
// runs, each finishing task triggers a document refresh of its namespace and
// its failed documents are recorded for later inspection.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	if err := s.store.Hydrate(ctx); err != nil {
		return nil, fmt.Errorf("could not hydrate task store: %w", err)
	}

	pending := s.store.PendingTasks()
	pendingIDs := make(map[string]struct{}, len(pending))

	// One refresh subscription per distinct namespace with work in flight.
	namespaces := map[string]struct{}{}
	for _, t := range pending {
		pendingIDs[t.ID] = struct{}{}
		namespaces[t.NamespaceName] = struct{}{}
	}

	unsubs := make([]func(), 0, len(namespaces))
	for ns := range namespaces {
		ns := ns
		unsubs = append(unsubs, s.bus.Subscribe(ns, func() { s.refreshNamespace(ctx, ns) }))
	}
	defer func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}()

	resumed := s.poller.StartPending(ctx)
	s.logger.Infof("Resumed %d pending ingestion tasks", resumed)

	s.poller.Wait()
	s.store.WaitNotifications()

	finished := []model.IngestionTask{}
	for _, t := range s.store.CompletedTasks() {
		if _, ok := pendingIDs[t.ID]; ok {
			finished = append(finished, t)
		}
	}

	return &Result{Resumed: resumed, Finished: finished}, ctx.Err()
}

// refreshNamespace re-reads the namespace documents and records the failed
// documents of its terminal tasks. It runs from bus callbacks, so errors are
// logged and swallowed.
func (s *Service) refreshNamespace(ctx context.Context, namespace string) {
	docs, err := s.client.ListDocuments(ctx, namespace)
	if err != nil {
		s.logger.Warningf("Could not refresh documents of namespace %s: %s", namespace, err)
	} else {
		s.logger.Infof("Namespace %s now has %d documents", namespace, len(docs))
	}

	failed := []model.FailedDocument{}
	for _, t := range s.store.CompletedTasks() {
		if t.NamespaceName != namespace || t.Result == nil {
			continue
		}
		failed = append(failed, t.Result.FailedDocuments...)
	}

	if err := s.repo.SaveFailedDocuments(ctx, namespace, failed); err != nil {
		s.logger.Warningf("Could not record failed documents of namespace %s: %s", namespace, err)
	}
}
