// Package rest implements the ingestor client over the backend HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pinecone-io/ragcli/internal/ingestor"
	"github.com/pinecone-io/ragcli/internal/log"
	"github.com/pinecone-io/ragcli/internal/model"
)

const defaultTimeout = 60 * time.Second

// ClientConfig is the configuration for the REST client.
type ClientConfig struct {
	// ServerURL is the base URL of the backend (e.g. http://localhost:8081).
	ServerURL string
	// HTTPClient is the HTTP client used for every request. Optional.
	HTTPClient *http.Client
	Logger     log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server url is required")
	}
	if _, err := url.Parse(c.ServerURL); err != nil {
		return fmt.Errorf("invalid server url: %w", err)
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "ingestor.REST"})
	return nil
}

// Client is an HTTP implementation of ingestor.Client.
type Client struct {
	serverURL  string
	httpClient *http.Client
	logger     log.Logger
}

// NewClient creates a new REST client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		serverURL:  strings.TrimRight(cfg.ServerURL, "/"),
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}, nil
}

type namespaceListResponse struct {
	Message         string            `json:"message"`
	TotalNamespaces int               `json:"total_namespaces"`
	Namespaces      []model.Namespace `json:"namespaces"`
}

type namespacesOpResponse struct {
	Message      string                     `json:"message"`
	Successful   []string                   `json:"successful"`
	Failed       []ingestor.FailedNamespace `json:"failed"`
	TotalSuccess int                        `json:"total_success"`
	TotalFailed  int                        `json:"total_failed"`
}

type documentListResponse struct {
	Message        string           `json:"message"`
	TotalDocuments int              `json:"total_documents"`
	Documents      []model.Document `json:"documents"`
}

type uploadResponse struct {
	TaskID string `json:"task_id"`
}

type taskStatusResponse struct {
	State  model.TaskState        `json:"state"`
	Result *model.IngestionResult `json:"result"`
}

// ListNamespaces returns all namespaces known to the backend.
func (c *Client) ListNamespaces(ctx context.Context) ([]model.Namespace, error) {
	resp := namespaceListResponse{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/namespaces", nil, &resp); err != nil {
		return nil, fmt.Errorf("could not list namespaces: %w", err)
	}

	return resp.Namespaces, nil
}

// CreateNamespace creates a namespace.
func (c *Client) CreateNamespace(ctx context.Context, cfg model.NamespaceConfig) (*ingestor.OpResult, error) {
	if cfg.EmbeddingDimension == 0 {
		cfg.EmbeddingDimension = model.DefaultEmbeddingDimension
	}
	if cfg.MetadataSchema == nil {
		cfg.MetadataSchema = []model.MetadataField{}
	}

	resp := namespacesOpResponse{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/namespace", cfg, &resp); err != nil {
		return nil, fmt.Errorf("could not create namespace: %w", err)
	}

	return resp.toOpResult(), nil
}

// DeleteNamespaces deletes namespaces in bulk.
func (c *Client) DeleteNamespaces(ctx context.Context, names []string) (*ingestor.OpResult, error) {
	body := struct {
		NamespaceNames []string `json:"namespace_names"`
	}{NamespaceNames: names}

	resp := namespacesOpResponse{}
	if err := c.doJSON(ctx, http.MethodDelete, "/api/namespaces", body, &resp); err != nil {
		return nil, fmt.Errorf("could not delete namespaces: %w", err)
	}

	return resp.toOpResult(), nil
}

func (r namespacesOpResponse) toOpResult() *ingestor.OpResult {
	return &ingestor.OpResult{
		Message:    r.Message,
		Successful: r.Successful,
		Failed:     r.Failed,
	}
}

// ListDocuments returns the documents of a namespace.
func (c *Client) ListDocuments(ctx context.Context, namespace string) ([]model.Document, error) {
	path := "/api/documents?namespace_name=" + url.QueryEscape(namespace)

	resp := documentListResponse{}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("could not list documents: %w", err)
	}

	return resp.Documents, nil
}

// DeleteDocuments deletes documents of a namespace by name.
func (c *Client) DeleteDocuments(ctx context.Context, namespace string, names []string) error {
	path := "/api/documents?namespace_name=" + url.QueryEscape(namespace)

	if err := c.doJSON(ctx, http.MethodDelete, path, names, nil); err != nil {
		return fmt.Errorf("could not delete documents: %w", err)
	}

	return nil
}

// uploadEnvelope is the JSON metadata part of a multipart upload.
type uploadEnvelope struct {
	NamespaceName  string               `json:"namespace_name"`
	Blocking       bool                 `json:"blocking"`
	CustomMetadata []documentMetadata   `json:"custom_metadata"`
}

type documentMetadata struct {
	Filename string                 `json:"filename"`
	Metadata map[string]interface{} `json:"metadata"`
}

// UploadDocuments uploads documents without blocking and returns the task
// id assigned by the backend.
func (c *Client) UploadDocuments(ctx context.Context, req ingestor.UploadRequest) (string, error) {
	if len(req.Documents) == 0 {
		return "", fmt.Errorf("at least one document is required: %w", model.ErrNotValid)
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	envelope := uploadEnvelope{
		NamespaceName:  req.NamespaceName,
		Blocking:       false,
		CustomMetadata: []documentMetadata{},
	}

	for _, doc := range req.Documents {
		fw, err := mw.CreateFormFile("documents", doc.Name)
		if err != nil {
			return "", fmt.Errorf("could not create form file: %w", err)
		}
		if _, err := io.Copy(fw, doc.Content); err != nil {
			return "", fmt.Errorf("could not write document %s: %w", doc.Name, err)
		}

		if len(doc.Metadata) > 0 {
			envelope.CustomMetadata = append(envelope.CustomMetadata, documentMetadata{
				Filename: doc.Name,
				Metadata: doc.Metadata,
			})
		}
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("could not marshal upload metadata: %w", err)
	}
	if err := mw.WriteField("data", string(data)); err != nil {
		return "", fmt.Errorf("could not write upload metadata: %w", err)
	}

	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("could not finish multipart body: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/api/documents?blocking=false", body)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp := uploadResponse{}
	if err := c.do(httpReq, &resp); err != nil {
		return "", fmt.Errorf("could not upload documents: %w", err)
	}
	if resp.TaskID == "" {
		return "", fmt.Errorf("backend returned no task id")
	}

	c.logger.Debugf("Uploaded %d documents to %s, task %s", len(req.Documents), req.NamespaceName, resp.TaskID)

	return resp.TaskID, nil
}

// TaskStatus returns the current state and result of an ingestion task.
func (c *Client) TaskStatus(ctx context.Context, taskID string) (*ingestor.TaskStatus, error) {
	path := "/api/task-status?task_id=" + url.QueryEscape(taskID)

	resp := taskStatusResponse{}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("could not get task status: %w", err)
	}

	state := resp.State
	if !state.Valid() {
		state = model.TaskStateUnknown
	}

	return &ingestor.TaskStatus{State: state, Result: resp.Result}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, reqBody, respBody interface{}) error {
	var body io.Reader
	if reqBody != nil {
		raw, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("could not marshal request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, respBody)
}

func (c *Client) do(req *http.Request, respBody interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	if respBody == nil {
		return nil
	}

	if err := json.Unmarshal(raw, respBody); err != nil {
		return fmt.Errorf("could not unmarshal response: %w", err)
	}

	return nil
}
