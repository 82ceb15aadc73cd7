package lib

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"k8s.io/client-go/util/homedir"

	"github.com/pinecone-io/ragcli/internal/app/documentlist"
	"github.com/pinecone-io/ragcli/internal/app/documentremove"
	"github.com/pinecone-io/ragcli/internal/app/faileddocs"
	"github.com/pinecone-io/ragcli/internal/app/namespacecreate"
	"github.com/pinecone-io/ragcli/internal/app/namespacelist"
	"github.com/pinecone-io/ragcli/internal/app/namespaceremove"
	"github.com/pinecone-io/ragcli/internal/app/notifications"
	appsettings "github.com/pinecone-io/ragcli/internal/app/settings"
	"github.com/pinecone-io/ragcli/internal/app/upload"
	"github.com/pinecone-io/ragcli/internal/app/watch"
	"github.com/pinecone-io/ragcli/internal/conventions"
	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/ingestor/rest"
	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/notify"
	"github.com/pinecone-io/ragcli/internal/storage"
	"github.com/pinecone-io/ragcli/internal/storage/sqlite"
	"github.com/pinecone-io/ragcli/internal/task"
)

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. At minimum, an empty
// Config{} will talk to http://localhost:8081 and use ~/.ragcli/ragcli.db
// for storage.
type Config struct {
	// ServerURL is the base URL of the RAG backend.
	// Default: http://localhost:8081.
	ServerURL string

	// DBPath is the SQLite database path for the local task and settings
	// state. Default: ~/.ragcli/ragcli.db.
	DBPath string

	// HTTPClient is the HTTP client used for backend requests.
	// Default: a client with a 60s timeout.
	HTTPClient *http.Client

	// PollInterval is how often pending ingestion tasks are polled.
	// Default: 5s.
	PollInterval time.Duration

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the internal log package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.ServerURL == "" {
		c.ServerURL = conventions.DefaultServerURL
	}
	if c.DBPath == "" {
		c.DBPath = conventions.DBPath(filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir))
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

// Client is the SDK entry point. It is safe for concurrent use.
type Client struct {
	logger   log.Logger
	repo     *sqlite.Repository
	ingestor ingestor.Client
	bus      *notify.Bus
	store    *task.Store
	poller   *task.Poller

	namespaceCreate *namespacecreate.Service
	namespaceList   *namespacelist.Service
	namespaceRemove *namespaceremove.Service
	documentList    *documentlist.Service
	documentRemove  *documentremove.Service
	uploadSvc       *upload.Service
	notificationSvc *notifications.Service
	settingsSvc     *appsettings.Service
	watchSvc        *watch.Service
	failedDocsSvc   *faileddocs.Service
}

// New creates a new SDK client, opening the local state database and loading
// the tracked ingestion tasks.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.DBPath,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	c, err := newClient(ctx, cfg, repo)
	if err != nil {
		repo.Close()
		return nil, err
	}
	c.repo = repo

	return c, nil
}

func newClient(ctx context.Context, cfg Config, repo storage.Repository) (*Client, error) {
	ingestorClient, err := rest.NewClient(rest.ClientConfig{
		ServerURL:  cfg.ServerURL,
		HTTPClient: cfg.HTTPClient,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create backend client: %w", err)
	}

	bus, err := notify.NewBus(notify.BusConfig{Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create notification bus: %w", err)
	}

	store, err := task.NewStore(task.StoreConfig{
		Repository: repo,
		Bus:        bus,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create task store: %w", err)
	}
	if err := store.Hydrate(ctx); err != nil {
		return nil, fmt.Errorf("could not load tracked tasks: %w", err)
	}

	poller, err := task.NewPoller(task.PollerConfig{
		Store:    store,
		Client:   ingestorClient,
		Interval: cfg.PollInterval,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create poller: %w", err)
	}

	c := &Client{
		logger:   cfg.Logger,
		ingestor: ingestorClient,
		bus:      bus,
		store:    store,
		poller:   poller,
	}

	if c.namespaceCreate, err = namespacecreate.NewService(namespacecreate.ServiceConfig{Client: ingestorClient, Logger: cfg.Logger}); err != nil {
		return nil, fmt.Errorf("could not create namespace create service: %w", err)
	}
	if c.namespaceList, err = namespacelist.NewService(namespacelist.ServiceConfig{Client: ingestorClient, Logger: cfg.Logger}); err != nil {
		return nil, fmt.Errorf("could not create namespace list service: %w", err)
	}
	if c.namespaceRemove, err = namespaceremove.NewService(namespaceremove.ServiceConfig{Client: ingestorClient, Logger: cfg.Logger}); err != nil {
		return nil, fmt.Errorf("could not create namespace remove service: %w", err)
	}
	if c.documentList, err = documentlist.NewService(documentlist.ServiceConfig{Client: ingestorClient, Logger: cfg.Logger}); err != nil {
		return nil, fmt.Errorf("could not create document list service: %w", err)
	}
	if c.documentRemove, err = documentremove.NewService(documentremove.ServiceConfig{Client: ingestorClient, Logger: cfg.Logger}); err != nil {
		return nil, fmt.Errorf("could not create document remove service: %w", err)
	}
	if c.uploadSvc, err = upload.NewService(upload.ServiceConfig{Client: ingestorClient, Store: store, Poller: poller, Logger: cfg.Logger}); err != nil {
		return nil, fmt.Errorf("could not create upload service: %w", err)
	}
	if c.notificationSvc, err = notifications.NewService(notifications.ServiceConfig{Store: store, Poller: poller, Logger: cfg.Logger}); err != nil {
		return nil, fmt.Errorf("could not create notifications service: %w", err)
	}
	if c.settingsSvc, err = appsettings.NewService(appsettings.ServiceConfig{Repository: repo, Logger: cfg.Logger}); err != nil {
		return nil, fmt.Errorf("could not create settings service: %w", err)
	}
	if c.watchSvc, err = watch.NewService(watch.ServiceConfig{Client: ingestorClient, Store: store, Poller: poller, Bus: bus, Repository: repo, Logger: cfg.Logger}); err != nil {
		return nil, fmt.Errorf("could not create watch service: %w", err)
	}
	if c.failedDocsSvc, err = faileddocs.NewService(faileddocs.ServiceConfig{Repository: repo, Logger: cfg.Logger}); err != nil {
		return nil, fmt.Errorf("could not create failed documents service: %w", err)
	}

	return c, nil
}

// Close stops every background poller and closes the local state database.
func (c *Client) Close() error {
	c.poller.StopAll()
	c.poller.Wait()
	c.store.WaitNotifications()

	if c.repo != nil {
		return c.repo.Close()
	}

	return nil
}
