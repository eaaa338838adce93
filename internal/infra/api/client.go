// Package api implements the backend ports over the project management
// REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/runoshun/worklog/internal/domain"
)

// Ensure Client implements the backend ports.
var (
	_ domain.TaskRepository    = (*Client)(nil)
	_ domain.CatalogRepository = (*Client)(nil)
	_ domain.NoteRepository    = (*Client)(nil)
	_ domain.BatchReorderer    = (*Client)(nil)
)

// Config holds configuration for the API client.
type Config struct {
	HTTPClient *http.Client // Overrides the retrying client when set
	Logger     *slog.Logger // Receives retry diagnostics; nil disables them
	NewKey     func() string
	BaseURL    string
	Token      string
	Timeout    time.Duration
	RetryWait  time.Duration // Minimum wait between retries
	Retries    int
}

// Client talks to the backend.
type Client struct {
	http    *http.Client
	newKey  func() string
	baseURL string
	token   string
}

// New creates a Client. BaseURL is required.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, domain.ErrNoBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultTimeout
	}
	if cfg.NewKey == nil {
		cfg.NewKey = uuid.NewString
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = newRetryingClient(cfg)
	}
	return &Client{
		http:    cfg.HTTPClient,
		newKey:  cfg.NewKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
	}, nil
}

func newRetryingClient(cfg Config) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = max(cfg.Retries, 0)
	if cfg.RetryWait > 0 {
		rc.RetryWaitMin = cfg.RetryWait
		rc.RetryWaitMax = 10 * cfg.RetryWait
	}
	// Hand the final response back so callers see the status and body.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	// Assign only a non-nil logger: a nil *slog.Logger stored in the
	// interface-typed field would not compare equal to nil and would panic.
	rc.Logger = nil
	if cfg.Logger != nil {
		rc.Logger = cfg.Logger
	}
	c := rc.StandardClient()
	c.Timeout = cfg.Timeout
	return c
}

// APIError is a non-2xx response.
type APIError struct {
	Body   string
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: API error (status %d): %s", e.Status, e.Body)
}

// Unwrap maps 404 to domain.ErrNotFound.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return nil
}

// do sends a request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	c.setHeaders(req, in != nil)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	// POST is not idempotent by itself; the key lets the backend drop retried duplicates.
	if req.Method == http.MethodPost {
		req.Header.Set("Idempotency-Key", c.newKey())
	}
}

// ListTasks returns the tasks for a date or an inclusive date range.
func (c *Client) ListTasks(ctx context.Context, scope domain.TaskScope) ([]*domain.Task, error) {
	q := url.Values{}
	if scope.IsRange() {
		q.Set("from", domain.FormatDate(scope.From))
		q.Set("to", domain.FormatDate(scope.To))
	} else if !scope.Date.IsZero() {
		q.Set("date", domain.FormatDate(scope.Date))
	}
	if scope.Sprint != "" {
		q.Set("sprint", scope.Sprint)
	}

	var raw []wireTask
	if err := c.do(ctx, http.MethodGet, "/tasks", q, nil, &raw); err != nil {
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(raw))
	for _, w := range raw {
		t, err := fromWire(w)
		if err != nil {
			return nil, fmt.Errorf("api: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// GetTask returns a single task.
func (c *Client) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	var out wireTask
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, mapNotFound(err)
	}
	return fromWire(out)
}

// CreateTask creates a task and returns the stored record.
func (c *Client) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	in := toWire(task)
	in.ID = ""
	var out wireTask
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, in, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("api: create task: response has no id")
	}
	return fromWire(out)
}

// UpdateTask sends a partial update. It returns nil when the backend
// answers without a body.
func (c *Client) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	var out wireTask
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), nil, patchToWire(patch), &out); err != nil {
		return nil, mapNotFound(err)
	}
	if out.ID == "" {
		return nil, nil
	}
	return fromWire(out)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return mapNotFound(c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil, nil))
}

// ReorderTasks persists every change of one board move in a single call.
func (c *Client) ReorderTasks(ctx context.Context, changes []domain.TaskChange) error {
	return c.do(ctx, http.MethodPost, "/tasks/reorder", nil, wireReorder{Changes: changes}, nil)
}

// ListCategories returns all categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var raw []wireCategory
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Category, len(raw))
	for i, w := range raw {
		out[i] = domain.Category{ID: string(w.ID), Name: w.Name, Hex: w.Hex, IsBreak: w.IsBreak}
	}
	return out, nil
}

// ListPriorities returns all priorities.
func (c *Client) ListPriorities(ctx context.Context) ([]domain.Priority, error) {
	var raw []wirePriority
	if err := c.do(ctx, http.MethodGet, "/priorities", nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Priority, len(raw))
	for i, w := range raw {
		out[i] = domain.Priority{ID: string(w.ID), Name: w.Name, Hex: w.Hex}
	}
	return out, nil
}

// ListTags returns the known tag names.
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	var raw []wireTag
	if err := c.do(ctx, http.MethodGet, "/tags", nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if t != "" {
			out = append(out, string(t))
		}
	}
	return out, nil
}

// GetNote returns the note for date, or nil if there is none.
func (c *Client) GetNote(ctx context.Context, date time.Time) (*domain.Note, error) {
	q := url.Values{"date": {domain.FormatDate(date)}}
	var raw []wireNote
	err := c.do(ctx, http.MethodGet, "/notes", q, nil, &raw)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return noteFromWire(raw[0])
}

// CreateNote creates the note for date.
func (c *Client) CreateNote(ctx context.Context, date time.Time, content string) (*domain.Note, error) {
	in := wireNote{Date: domain.FormatDate(date), Content: content}
	var out wireNote
	if err := c.do(ctx, http.MethodPost, "/notes", nil, in, &out); err != nil {
		return nil, err
	}
	note, err := noteFromWire(out)
	if err != nil {
		return nil, err
	}
	if note.Date.IsZero() {
		note.Date = domain.Day(date)
	}
	if out.Content == "" {
		note.Content = content
	}
	return note, nil
}

// UpdateNote replaces the content of an existing note.
func (c *Client) UpdateNote(ctx context.Context, id, content string) error {
	body := map[string]string{"content": content}
	return c.do(ctx, http.MethodPatch, "/notes/"+url.PathEscape(id), nil, body, nil)
}

// mapNotFound turns a 404 on a single task into ErrTaskNotFound.
func mapNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrTaskNotFound, err)
	}
	return err
}
