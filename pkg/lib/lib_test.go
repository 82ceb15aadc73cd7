package lib_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinecone-io/ragcli/pkg/lib"
)

// Wire types of the fake backend, mirroring the REST API payloads.

type wireMetadataField struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type wireNamespace struct {
	Name           string              `json:"namespace_name"`
	NumEntities    int                 `json:"num_entities"`
	MetadataSchema []wireMetadataField `json:"metadata_schema,omitempty"`
}

type wireDocument struct {
	DocumentName string                 `json:"document_name"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

type wireFailedNamespace struct {
	NamespaceName string `json:"namespace_name"`
	ErrorMessage  string `json:"error_message"`
}

type wireOpResponse struct {
	Message      string                `json:"message"`
	Successful   []string              `json:"successful"`
	Failed       []wireFailedNamespace `json:"failed"`
	TotalSuccess int                   `json:"total_success"`
	TotalFailed  int                   `json:"total_failed"`
}

type wireTaskResult struct {
	Message         string         `json:"message,omitempty"`
	TotalDocuments  int            `json:"total_documents"`
	Documents       []wireDocument `json:"documents"`
	FailedDocuments []struct {
		DocumentName string `json:"document_name"`
		ErrorMessage string `json:"error_message"`
	} `json:"failed_documents"`
}

type backendNamespace struct {
	schema    []wireMetadataField
	documents map[string]map[string]interface{}
}

type backendTask struct {
	namespace string
	documents []string
	polls     int
}

// fakeBackend is an in-memory RAG backend served over HTTP. Uploaded
// documents become namespace documents once their ingestion task is polled
// to completion.
type fakeBackend struct {
	mu         sync.Mutex
	namespaces map[string]*backendNamespace
	tasks      map[string]*backendTask
	taskSeq    int

	// failDocuments marks document names whose ingestion fails, with the
	// error message the backend reports.
	failDocuments map[string]string

	// pendingPolls is how many status polls a task stays pending before
	// finishing.
	pendingPolls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		namespaces:    map[string]*backendNamespace{},
		tasks:         map[string]*backendTask{},
		failDocuments: map[string]string{},
	}
}

func (b *fakeBackend) addNamespace(name string, schema ...wireMetadataField) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.namespaces[name] = &backendNamespace{
		schema:    schema,
		documents: map[string]map[string]interface{}{},
	}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/namespaces":
		b.handleListNamespaces(w)
	case r.Method == http.MethodPost && r.URL.Path == "/api/namespace":
		b.handleCreateNamespace(w, r)
	case r.Method == http.MethodDelete && r.URL.Path == "/api/namespaces":
		b.handleDeleteNamespaces(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/api/documents":
		b.handleListDocuments(w, r)
	case r.Method == http.MethodDelete && r.URL.Path == "/api/documents":
		b.handleDeleteDocuments(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/documents":
		b.handleUpload(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/api/task-status":
		b.handleTaskStatus(w, r)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (b *fakeBackend) handleListNamespaces(w http.ResponseWriter) {
	result := []wireNamespace{}
	for name, ns := range b.namespaces {
		result = append(result, wireNamespace{
			Name:           name,
			NumEntities:    len(ns.documents),
			MetadataSchema: ns.schema,
		})
	}
	writeJSON(w, map[string]interface{}{
		"message":          "ok",
		"total_namespaces": len(result),
		"namespaces":       result,
	})
}

func (b *fakeBackend) handleCreateNamespace(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Name           string              `json:"namespace_name"`
		MetadataSchema []wireMetadataField `json:"metadata_schema"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, ok := b.namespaces[req.Name]; ok {
		writeJSON(w, wireOpResponse{
			Failed:      []wireFailedNamespace{{NamespaceName: req.Name, ErrorMessage: "already exists"}},
			TotalFailed: 1,
		})
		return
	}

	b.namespaces[req.Name] = &backendNamespace{
		schema:    req.MetadataSchema,
		documents: map[string]map[string]interface{}{},
	}
	writeJSON(w, wireOpResponse{Successful: []string{req.Name}, TotalSuccess: 1})
}

func (b *fakeBackend) handleDeleteNamespaces(w http.ResponseWriter, r *http.Request) {
	req := struct {
		NamespaceNames []string `json:"namespace_names"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := wireOpResponse{Successful: []string{}, Failed: []wireFailedNamespace{}}
	for _, name := range req.NamespaceNames {
		if _, ok := b.namespaces[name]; !ok {
			resp.Failed = append(resp.Failed, wireFailedNamespace{NamespaceName: name, ErrorMessage: "not found"})
			continue
		}
		delete(b.namespaces, name)
		resp.Successful = append(resp.Successful, name)
	}
	resp.TotalSuccess = len(resp.Successful)
	resp.TotalFailed = len(resp.Failed)
	writeJSON(w, resp)
}

func (b *fakeBackend) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	ns, ok := b.namespaces[r.URL.Query().Get("namespace_name")]
	if !ok {
		http.Error(w, "namespace not found", http.StatusNotFound)
		return
	}

	docs := []wireDocument{}
	for name, md := range ns.documents {
		docs = append(docs, wireDocument{DocumentName: name, Metadata: md})
	}
	writeJSON(w, map[string]interface{}{
		"message":         "ok",
		"total_documents": len(docs),
		"documents":       docs,
	})
}

func (b *fakeBackend) handleDeleteDocuments(w http.ResponseWriter, r *http.Request) {
	ns, ok := b.namespaces[r.URL.Query().Get("namespace_name")]
	if !ok {
		http.Error(w, "namespace not found", http.StatusNotFound)
		return
	}

	names := []string{}
	if err := json.NewDecoder(r.Body).Decode(&names); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, name := range names {
		delete(ns.documents, name)
	}
	writeJSON(w, map[string]interface{}{"message": "ok"})
}

func (b *fakeBackend) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	envelope := struct {
		NamespaceName string `json:"namespace_name"`
	}{}
	if err := json.Unmarshal([]byte(r.FormValue("data")), &envelope); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, ok := b.namespaces[envelope.NamespaceName]; !ok {
		http.Error(w, "namespace not found", http.StatusNotFound)
		return
	}

	docs := []string{}
	for _, fh := range r.MultipartForm.File["documents"] {
		docs = append(docs, fh.Filename)
	}

	b.taskSeq++
	taskID := fmt.Sprintf("task-%d", b.taskSeq)
	b.tasks[taskID] = &backendTask{namespace: envelope.NamespaceName, documents: docs}

	writeJSON(w, map[string]string{"task_id": taskID})
}

func (b *fakeBackend) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	task, ok := b.tasks[r.URL.Query().Get("task_id")]
	if !ok {
		writeJSON(w, map[string]interface{}{"state": "UNKNOWN"})
		return
	}

	task.polls++
	if task.polls <= b.pendingPolls {
		writeJSON(w, map[string]interface{}{"state": "PENDING"})
		return
	}

	result := wireTaskResult{
		Documents: []wireDocument{},
		FailedDocuments: []struct {
			DocumentName string `json:"document_name"`
			ErrorMessage string `json:"error_message"`
		}{},
	}
	ns := b.namespaces[task.namespace]
	for _, name := range task.documents {
		if msg, failed := b.failDocuments[name]; failed {
			result.FailedDocuments = append(result.FailedDocuments, struct {
				DocumentName string `json:"document_name"`
				ErrorMessage string `json:"error_message"`
			}{DocumentName: name, ErrorMessage: msg})
			continue
		}
		result.Documents = append(result.Documents, wireDocument{DocumentName: name})
		if ns != nil {
			ns.documents[name] = map[string]interface{}{}
		}
	}
	result.TotalDocuments = len(task.documents)

	writeJSON(w, map[string]interface{}{"state": "FINISHED", "result": result})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// newTestClient creates a client with a temp SQLite DB and a fake backend
// for test isolation.
func newTestClient(t *testing.T, backend *fakeBackend) *lib.Client {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	client, err := lib.New(context.Background(), lib.Config{
		ServerURL:    server.URL,
		DBPath:       filepath.Join(t.TempDir(), "test.db"),
		PollInterval: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestCreateNamespace(t *testing.T) {
	tests := map[string]struct {
		backend func() *fakeBackend
		cfg     lib.NamespaceConfig
		expErr  bool
		expIs   error
	}{
		"Creating a namespace should work.": {
			backend: newFakeBackend,
			cfg: lib.NamespaceConfig{
				Name:               "docs",
				EmbeddingDimension: 1024,
			},
		},

		"Creating a namespace with a metadata schema should work.": {
			backend: newFakeBackend,
			cfg: lib.NamespaceConfig{
				Name: "docs",
				MetadataSchema: []lib.MetadataField{
					{Name: "author", Type: lib.MetadataString},
					{Name: "pages", Type: lib.MetadataInteger},
				},
			},
		},

		"Creating a namespace without a name should fail.": {
			backend: newFakeBackend,
			cfg:     lib.NamespaceConfig{EmbeddingDimension: 1024},
			expErr:  true,
			expIs:   lib.ErrNotValid,
		},

		"Creating a namespace with an invalid name should fail.": {
			backend: newFakeBackend,
			cfg:     lib.NamespaceConfig{Name: "1-starts-with-digit"},
			expErr:  true,
			expIs:   lib.ErrNotValid,
		},

		"Creating a namespace that already exists should fail.": {
			backend: func() *fakeBackend {
				b := newFakeBackend()
				b.addNamespace("docs")
				return b
			},
			cfg:    lib.NamespaceConfig{Name: "docs"},
			expErr: true,
			expIs:  lib.ErrAlreadyExists,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			client := newTestClient(t, test.backend())

			err := client.CreateNamespace(context.Background(), test.cfg)

			if test.expErr {
				assert.Error(err)
				if test.expIs != nil {
					assert.True(errors.Is(err, test.expIs), "expected error %v, got: %v", test.expIs, err)
				}
				return
			}

			assert.NoError(err)

			namespaces, err := client.ListNamespaces(context.Background())
			assert.NoError(err)
			assert.Len(namespaces, 1)
			assert.Equal(test.cfg.Name, namespaces[0].Name)
		})
	}
}

func TestListNamespaces(t *testing.T) {
	assert := assert.New(t)
	backend := newFakeBackend()
	backend.addNamespace("zebra")
	backend.addNamespace("alpha")
	backend.addNamespace("middle")
	client := newTestClient(t, backend)

	namespaces, err := client.ListNamespaces(context.Background())

	assert.NoError(err)
	require.Len(t, namespaces, 3)
	assert.Equal("alpha", namespaces[0].Name)
	assert.Equal("middle", namespaces[1].Name)
	assert.Equal("zebra", namespaces[2].Name)
}

func TestDeleteNamespaces(t *testing.T) {
	tests := map[string]struct {
		backend    func() *fakeBackend
		names      []string
		expDeleted []string
		expErr     bool
		expIs      error
	}{
		"Deleting existing namespaces should work.": {
			backend: func() *fakeBackend {
				b := newFakeBackend()
				b.addNamespace("a")
				b.addNamespace("b")
				return b
			},
			names:      []string{"a", "b"},
			expDeleted: []string{"a", "b"},
		},

		"Deleting without names should fail.": {
			backend: newFakeBackend,
			names:   []string{},
			expErr:  true,
			expIs:   lib.ErrNotValid,
		},

		"Partial failures should return the deleted namespaces and an error.": {
			backend: func() *fakeBackend {
				b := newFakeBackend()
				b.addNamespace("a")
				return b
			},
			names:      []string{"a", "ghost"},
			expDeleted: []string{"a"},
			expErr:     true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			client := newTestClient(t, test.backend())

			deleted, err := client.DeleteNamespaces(context.Background(), test.names...)

			if test.expErr {
				assert.Error(err)
				if test.expIs != nil {
					assert.True(errors.Is(err, test.expIs), "expected error %v, got: %v", test.expIs, err)
				}
			} else {
				assert.NoError(err)
			}
			assert.Equal(test.expDeleted, deleted)
		})
	}
}

func TestDocuments(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	backend := newFakeBackend()
	backend.addNamespace("docs")
	backend.namespaces["docs"].documents["b.pdf"] = map[string]interface{}{}
	backend.namespaces["docs"].documents["a.pdf"] = map[string]interface{}{}
	client := newTestClient(t, backend)
	ctx := context.Background()

	// List is sorted by name.
	docs, err := client.ListDocuments(ctx, "docs")
	require.NoError(err)
	require.Len(docs, 2)
	assert.Equal("a.pdf", docs[0].Name)
	assert.Equal("b.pdf", docs[1].Name)

	// Delete one.
	err = client.DeleteDocuments(ctx, "docs", "a.pdf")
	require.NoError(err)

	docs, err = client.ListDocuments(ctx, "docs")
	require.NoError(err)
	require.Len(docs, 1)
	assert.Equal("b.pdf", docs[0].Name)

	// Empty namespace name fails.
	_, err = client.ListDocuments(ctx, "")
	assert.True(errors.Is(err, lib.ErrNotValid), "expected ErrNotValid, got: %v", err)
}

func TestUploadValidation(t *testing.T) {
	tests := map[string]struct {
		backend func() *fakeBackend
		opts    lib.UploadOpts
		expIs   error
	}{
		"Uploading without documents should fail.": {
			backend: func() *fakeBackend {
				b := newFakeBackend()
				b.addNamespace("docs")
				return b
			},
			opts:  lib.UploadOpts{Namespace: "docs"},
			expIs: lib.ErrNotValid,
		},

		"Uploading to an unknown namespace should fail.": {
			backend: newFakeBackend,
			opts: lib.UploadOpts{
				Namespace: "ghost",
				Documents: []lib.UploadDocument{{Name: "a.pdf", Content: strings.NewReader("data")}},
			},
			expIs: lib.ErrNotFound,
		},

		"Uploading metadata outside the namespace schema should fail.": {
			backend: func() *fakeBackend {
				b := newFakeBackend()
				b.addNamespace("docs", wireMetadataField{Name: "author", Type: "string"})
				return b
			},
			opts: lib.UploadOpts{
				Namespace: "docs",
				Documents: []lib.UploadDocument{{
					Name:     "a.pdf",
					Content:  strings.NewReader("data"),
					Metadata: map[string]string{"publisher": "acme"},
				}},
			},
			expIs: lib.ErrNotValid,
		},

		"Uploading metadata of the wrong type should fail.": {
			backend: func() *fakeBackend {
				b := newFakeBackend()
				b.addNamespace("docs", wireMetadataField{Name: "pages", Type: "integer"})
				return b
			},
			opts: lib.UploadOpts{
				Namespace: "docs",
				Documents: []lib.UploadDocument{{
					Name:     "a.pdf",
					Content:  strings.NewReader("data"),
					Metadata: map[string]string{"pages": "not-a-number"},
				}},
			},
			expIs: lib.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			client := newTestClient(t, test.backend())

			_, err := client.Upload(context.Background(), test.opts)

			assert.Error(err)
			assert.True(errors.Is(err, test.expIs), "expected error %v, got: %v", test.expIs, err)
		})
	}
}

func TestUploadAndWait(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	backend := newFakeBackend()
	backend.addNamespace("docs", wireMetadataField{Name: "author", Type: "string"})
	backend.pendingPolls = 2
	client := newTestClient(t, backend)
	ctx := context.Background()

	task, err := client.UploadAndWait(ctx, lib.UploadOpts{
		Namespace: "docs",
		Documents: []lib.UploadDocument{
			{Name: "a.pdf", Content: strings.NewReader("aaa"), Metadata: map[string]string{"author": "jane"}},
			{Name: "b.pdf", Content: strings.NewReader("bbb")},
		},
	})

	require.NoError(err)
	assert.Equal(lib.TaskFinished, task.State)
	assert.True(task.State.Terminal())
	assert.Equal("completed", task.Outcome)
	assert.Equal("docs", task.Namespace)
	assert.Equal([]string{"a.pdf", "b.pdf"}, task.Documents)
	assert.NotNil(task.CompletedAt)
	assert.Empty(task.Failed)

	// The ingested documents show up in the namespace.
	docs, err := client.ListDocuments(ctx, "docs")
	require.NoError(err)
	assert.Len(docs, 2)
}

func TestUploadPartialFailure(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	backend := newFakeBackend()
	backend.addNamespace("docs")
	backend.failDocuments["bad.pdf"] = "unsupported format"
	client := newTestClient(t, backend)

	task, err := client.UploadAndWait(context.Background(), lib.UploadOpts{
		Namespace: "docs",
		Documents: []lib.UploadDocument{
			{Name: "good.pdf", Content: strings.NewReader("aaa")},
			{Name: "bad.pdf", Content: strings.NewReader("bbb")},
		},
	})

	require.NoError(err)
	assert.Equal(lib.TaskFinished, task.State)
	assert.Equal("partially completed", task.Outcome)
	require.Len(task.Failed, 1)
	assert.Equal("bad.pdf", task.Failed[0].Name)
	assert.Equal("unsupported format", task.Failed[0].Error)
}

func TestNotifications(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	backend := newFakeBackend()
	backend.addNamespace("docs")
	client := newTestClient(t, backend)
	ctx := context.Background()

	// A finished upload leaves one unread notification.
	task, err := client.UploadAndWait(ctx, lib.UploadOpts{
		Namespace: "docs",
		Documents: []lib.UploadDocument{{Name: "a.pdf", Content: strings.NewReader("data")}},
	})
	require.NoError(err)

	assert.Equal(1, client.UnreadCount(ctx))

	notifications, err := client.Notifications(ctx)
	require.NoError(err)
	require.Len(notifications, 1)
	assert.Equal(task.ID, notifications[0].ID)
	assert.False(notifications[0].Read)

	// Mark it read.
	err = client.MarkRead(ctx, task.ID)
	require.NoError(err)
	assert.Equal(0, client.UnreadCount(ctx))

	// Remove stops tracking it.
	err = client.RemoveTask(ctx, task.ID)
	require.NoError(err)

	_, err = client.Task(ctx, task.ID)
	assert.True(errors.Is(err, lib.ErrNotFound), "expected ErrNotFound, got: %v", err)
}

func TestNotificationsOrdering(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	backend := newFakeBackend()
	backend.addNamespace("docs")
	client := newTestClient(t, backend)
	ctx := context.Background()

	first, err := client.UploadAndWait(ctx, lib.UploadOpts{
		Namespace: "docs",
		Documents: []lib.UploadDocument{{Name: "first.pdf", Content: strings.NewReader("1")}},
	})
	require.NoError(err)

	second, err := client.UploadAndWait(ctx, lib.UploadOpts{
		Namespace: "docs",
		Documents: []lib.UploadDocument{{Name: "second.pdf", Content: strings.NewReader("2")}},
	})
	require.NoError(err)

	// Unread tasks come first, newest first.
	require.NoError(client.MarkRead(ctx, second.ID))

	notifications, err := client.Notifications(ctx)
	require.NoError(err)
	require.Len(notifications, 2)
	assert.Equal(first.ID, notifications[0].ID)
	assert.Equal(second.ID, notifications[1].ID)

	// MarkAllRead clears the unread count.
	require.NoError(client.MarkAllRead(ctx))
	assert.Equal(0, client.UnreadCount(ctx))
}

func TestTasksSurviveRestart(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	backend := newFakeBackend()
	backend.addNamespace("docs")
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	client, err := lib.New(ctx, lib.Config{
		ServerURL:    server.URL,
		DBPath:       dbPath,
		PollInterval: 10 * time.Millisecond,
	})
	require.NoError(err)

	task, err := client.UploadAndWait(ctx, lib.UploadOpts{
		Namespace: "docs",
		Documents: []lib.UploadDocument{{Name: "a.pdf", Content: strings.NewReader("data")}},
	})
	require.NoError(err)
	require.NoError(client.Close())

	// A new client over the same DB sees the task.
	client, err = lib.New(ctx, lib.Config{
		ServerURL:    server.URL,
		DBPath:       dbPath,
		PollInterval: 10 * time.Millisecond,
	})
	require.NoError(err)
	t.Cleanup(func() { _ = client.Close() })

	got, err := client.Task(ctx, task.ID)
	require.NoError(err)
	assert.Equal(task.ID, got.ID)
	assert.Equal(lib.TaskFinished, got.State)
}

func TestSettings(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	client := newTestClient(t, newFakeBackend())
	ctx := context.Background()

	// Defaults when nothing was ever saved.
	settings, err := client.Settings(ctx)
	require.NoError(err)
	assert.Equal(lib.DefaultSettings(), *settings)

	// Update and read back.
	updated := *settings
	updated.Temperature = 0.9
	updated.ChatModel = "my/model"
	require.NoError(client.UpdateSettings(ctx, updated))

	settings, err = client.Settings(ctx)
	require.NoError(err)
	assert.Equal(0.9, settings.Temperature)
	assert.Equal("my/model", settings.ChatModel)

	// Invalid settings are rejected.
	invalid := *settings
	invalid.Temperature = 3
	err = client.UpdateSettings(ctx, invalid)
	assert.True(errors.Is(err, lib.ErrNotValid), "expected ErrNotValid, got: %v", err)

	// Reset restores the defaults.
	settings, err = client.ResetSettings(ctx)
	require.NoError(err)
	assert.Equal(lib.DefaultSettings(), *settings)
}

func TestWatch(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	backend := newFakeBackend()
	backend.addNamespace("docs")
	backend.failDocuments["bad.pdf"] = "parse error"
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	// First client uploads and shuts down before the task finishes.
	backend.pendingPolls = 1 << 30
	client, err := lib.New(ctx, lib.Config{
		ServerURL:    server.URL,
		DBPath:       dbPath,
		PollInterval: 10 * time.Millisecond,
	})
	require.NoError(err)

	taskID, err := client.Upload(ctx, lib.UploadOpts{
		Namespace: "docs",
		Documents: []lib.UploadDocument{
			{Name: "good.pdf", Content: strings.NewReader("aaa")},
			{Name: "bad.pdf", Content: strings.NewReader("bbb")},
		},
	})
	require.NoError(err)
	require.NoError(client.Close())

	// Second client resumes the pending task and watches it to completion.
	backend.mu.Lock()
	backend.pendingPolls = 0
	backend.mu.Unlock()

	client, err = lib.New(ctx, lib.Config{
		ServerURL:    server.URL,
		DBPath:       dbPath,
		PollInterval: 10 * time.Millisecond,
	})
	require.NoError(err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(client.Watch(ctx))

	task, err := client.Task(ctx, taskID)
	require.NoError(err)
	assert.Equal(lib.TaskFinished, task.State)
	assert.Equal("partially completed", task.Outcome)

	// The failed document was recorded locally.
	failed, err := client.FailedDocuments(ctx, "docs")
	require.NoError(err)
	require.Len(failed, 1)
	assert.Equal("bad.pdf", failed[0].Name)
	assert.Equal("parse error", failed[0].Error)
}
