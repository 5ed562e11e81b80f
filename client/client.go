// Package client is a Go SDK for the CashFlowX API. It validates forms
// locally, attaches the stored bearer token, unwraps the response envelope
// and keeps local list state in step with successful writes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cashflowx/cashflowx_backend/models"
)

const DefaultTimeout = 10 * time.Second

// NetworkErrorMessage is shown when the request never produced a response.
const NetworkErrorMessage = "Network error, please check your connection and try again"

// APIError is a failed call that reached the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type Client struct {
	baseURL  string
	http     *http.Client
	session  SessionStore
	notifier Notifier
	validate *validator.Validate

	categories    *Collection[models.CategoryView, CategoryForm]
	subCategories *Collection[models.SubCategoryView, SubCategoryForm]
	budgets       *Collection[models.BudgetView, BudgetForm]
	transactions  *Collection[models.TransactionView, TransactionForm]
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithSessionStore(store SessionStore) Option {
	return func(c *Client) { c.session = store }
}

func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		session:  NewMemorySessionStore(),
		notifier: nopNotifier{},
		validate: newFormValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.categories = newCollection[models.CategoryView, CategoryForm](c, "/api/category", "category", "categories")
	c.subCategories = newCollection[models.SubCategoryView, SubCategoryForm](c, "/api/sub-category", "subCategory", "subCategories")
	c.budgets = newCollection[models.BudgetView, BudgetForm](c, "/api/budget", "budget", "budgets")
	c.transactions = newCollection[models.TransactionView, TransactionForm](c, "/api/transaction", "transaction", "transactions")
	return c
}

func (c *Client) Categories() *Collection[models.CategoryView, CategoryForm] { return c.categories }

func (c *Client) SubCategories() *Collection[models.SubCategoryView, SubCategoryForm] {
	return c.subCategories
}

func (c *Client) Budgets() *Collection[models.BudgetView, BudgetForm] { return c.budgets }

func (c *Client) Transactions() *Collection[models.TransactionView, TransactionForm] {
	return c.transactions
}

// Session returns the stored session, or nil when signed out.
func (c *Client) Session() (*Session, error) {
	return c.session.Load()
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// request describes one API call. notifySuccess is set for writes whose
// success message the user should see.
type request struct {
	method        string
	path          string
	body          io.Reader
	contentType   string
	notifySuccess bool
}

func jsonRequest(method, path string, payload interface{}, notifySuccess bool) (request, error) {
	req := request{method: method, path: path, notifySuccess: notifySuccess}
	if payload == nil {
		return req, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return req, fmt.Errorf("encode request: %w", err)
	}
	req.body = bytes.NewReader(data)
	req.contentType = "application/json"
	return req, nil
}

// do sends req and returns the envelope's data. A 401 clears the stored
// session. Every failure is notified with the server's message verbatim.
func (c *Client) do(ctx context.Context, req request) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	session, err := c.session.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session != nil && session.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.notifier.Notify(NotifyError, NetworkErrorMessage)
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		env = envelope{Message: http.StatusText(resp.StatusCode)}
		if resp.StatusCode < http.StatusBadRequest {
			c.notifier.Notify(NotifyError, "Unexpected response from server")
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.session.Clear(); err != nil {
			return nil, fmt.Errorf("clear session: %w", err)
		}
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		c.notifier.Notify(NotifyError, env.Message)
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if req.notifySuccess && env.Message != "" {
		c.notifier.Notify(NotifySuccess, env.Message)
	}
	return env.Data, nil
}

// decodeField unmarshals one named member of a data object into out.
func decodeField(data json.RawMessage, name string, out interface{}) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("decode data: missing %q", name)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Health calls the liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return nil
}
