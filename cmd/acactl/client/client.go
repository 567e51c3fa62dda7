// Package client provides the HTTP client acactl uses to probe a deployed
// document API.
//
// The client wraps Resty with the same conventions for every call: a base
// URL validated by internal/validate, a bounded timeout, retries on
// connection errors only, and request/response logging through
// internal/logging. Response bodies decode into the types the service
// itself serves from internal/docapi/handlers.
package client

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/config"
	"github.com/dashanan13/AzureContainerOptionDemo/cmd/acactl/utils"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/docapi/handlers"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/netutil"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/validate"
)

// DocumentList is the body of GET /documents.
type DocumentList struct {
	Documents []handlers.DocumentSummary `json:"documents" yaml:"documents"`
	Count     int                        `json:"count" yaml:"count"`
	Error     string                     `json:"error,omitempty" yaml:"error,omitempty"`
}

// ProcessResult is the body of POST /process and GET /documents/{id}.
type ProcessResult = handlers.ProcessResult

// APIError is a non-2xx answer from the document API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}

// DocAPIClient talks to one deployment of the document API.
type DocAPIClient struct {
	client  *resty.Client
	baseURL string
}

// NewDocAPIClient creates a client for baseURL. A bare FQDN is promoted to
// https, matching what Container Apps ingress serves.
func NewDocAPIClient(baseURL string, timeout time.Duration) (*DocAPIClient, error) {
	baseURL, err := validate.ServiceURL(baseURL)
	if err != nil {
		return nil, err
	}
	if err := validate.ValidatePositiveTimeout(timeout, "timeout"); err != nil {
		return nil, err
	}

	client := resty.New()

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(utils.RestryLogger{})

	client.
		SetTimeout(timeout).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("acactl/%s", config.Version))

	// A fresh Container App may still be pulling its image; only connection
	// errors are retried, never HTTP answers.
	client.
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil
		})

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making API request: %s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("API response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &DocAPIClient{
		client:  client,
		baseURL: baseURL,
	}, nil
}

// BaseURL returns the validated base URL.
func (api *DocAPIClient) BaseURL() string {
	return api.baseURL
}

func (api *DocAPIClient) check(resp *resty.Response, err error) error {
	if err != nil {
		if netutil.IsConnectionRefusedError(err) {
			return fmt.Errorf("document API at %s refused the connection (is it running?): %w", api.baseURL, err)
		}
		return fmt.Errorf("failed to connect to document API at %s: %w", api.baseURL, err)
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Message: resp.String()}
	}
	return nil
}

// Health calls GET /health.
func (api *DocAPIClient) Health(ctx context.Context) (string, error) {
	var response struct {
		Status string `json:"status"`
	}
	resp, err := api.client.R().
		SetContext(ctx).
		SetResult(&response).
		Get("/health")
	if err := api.check(resp, err); err != nil {
		return "", err
	}
	return response.Status, nil
}

// HealthDetail calls GET /api/v1/health.
func (api *DocAPIClient) HealthDetail(ctx context.Context) (*handlers.HealthResponse, error) {
	var response handlers.HealthResponse
	resp, err := api.client.R().
		SetContext(ctx).
		SetResult(&response).
		Get("/api/v1/health")
	if err := api.check(resp, err); err != nil {
		return nil, err
	}
	return &response, nil
}

// Info calls GET /.
func (api *DocAPIClient) Info(ctx context.Context) (*handlers.InfoResponse, error) {
	var response handlers.InfoResponse
	resp, err := api.client.R().
		SetContext(ctx).
		SetResult(&response).
		Get("/")
	if err := api.check(resp, err); err != nil {
		return nil, err
	}
	return &response, nil
}

// ProcessText posts inline content as JSON to /process.
func (api *DocAPIClient) ProcessText(ctx context.Context, content, filename string) (*ProcessResult, error) {
	payload := map[string]string{"content": content}
	if filename != "" {
		payload["filename"] = filename
	}

	var response ProcessResult
	resp, err := api.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&response).
		Post("/process")
	if err := api.check(resp, err); err != nil {
		return nil, err
	}
	return &response, nil
}

// ProcessFile uploads a file as multipart form field "file" to /process.
func (api *DocAPIClient) ProcessFile(ctx context.Context, path string) (*ProcessResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	var response ProcessResult
	resp, err := api.client.R().
		SetContext(ctx).
		SetFileReader("file", filepath.Base(path), f).
		SetResult(&response).
		Post("/process")
	if err := api.check(resp, err); err != nil {
		return nil, err
	}
	return &response, nil
}

// ListDocuments calls GET /documents. Results are per replica, so repeated
// calls against a scaled app may differ.
func (api *DocAPIClient) ListDocuments(ctx context.Context) (*DocumentList, error) {
	var response DocumentList
	resp, err := api.client.R().
		SetContext(ctx).
		SetResult(&response).
		Get("/documents")
	if err := api.check(resp, err); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetDocument calls GET /documents/{id}.
func (api *DocAPIClient) GetDocument(ctx context.Context, id string) (*ProcessResult, error) {
	var response ProcessResult
	resp, err := api.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&response).
		Get("/documents/{id}")
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("document '%s' not found", id)
	}
	if err := api.check(resp, err); err != nil {
		return nil, err
	}
	return &response, nil
}
