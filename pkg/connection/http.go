package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/treelist/treelist.go/pkg/constants"
	"github.com/treelist/treelist.go/pkg/logger"
	"github.com/treelist/treelist.go/pkg/models"
)

// HTTPStore is the default Store implementation. Every call is one POST of
// a JSON body to a fixed path under the base URL; the response carries a
// "code" field that is "ok" on success, or an error code plus message.
//
// HTTP 429 and 5xx responses, and transport-level errors, are retried
// internally with linear backoff and surface to the caller as a single
// error wrapping constants.ErrTransient.
type HTTPStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
	attempts   int
	backoff    time.Duration
	logger     logger.Logger
}

func NewHTTPStore(conf *Config) *HTTPStore {
	h := &HTTPStore{
		baseURL:  conf.BaseURL,
		token:    conf.Token,
		attempts: conf.Attempts,
		backoff:  conf.Backoff,
		logger:   conf.Logger,
	}
	if h.attempts < 1 {
		h.attempts = 1
	}
	if h.logger == nil {
		h.logger = logger.Nop()
	}
	h.httpClient = &http.Client{Timeout: conf.Timeout}
	return h
}

// Connect validates the configuration. It performs no I/O; the service has
// no handshake, so the first real call is the connectivity check.
func (h *HTTPStore) Connect() error {
	if h.baseURL == "" {
		return constants.ErrNoBaseURL
	}
	if h.token == "" {
		return constants.ErrNoToken
	}
	return nil
}

func (h *HTTPStore) SetHTTPClient(client *http.Client) *HTTPStore {
	h.httpClient = client
	return h
}

func (h *HTTPStore) ListFiles(ctx context.Context) ([]models.ListDescriptor, error) {
	var out struct {
		Files []models.ListDescriptor `json:"files"`
	}
	if err := h.call(ctx, "/file/list", struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

func (h *HTTPStore) EditFiles(ctx context.Context, changes []models.FileChange) (*models.FileEditResult, error) {
	req := struct {
		Changes []models.FileChange `json:"changes"`
	}{Changes: changes}
	var out models.FileEditResult
	if err := h.call(ctx, "/file/edit", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *HTTPStore) ReadDocument(ctx context.Context, fileID string) (*models.Document, error) {
	req := struct {
		FileID string `json:"file_id"`
	}{FileID: fileID}
	var out models.Document
	if err := h.call(ctx, "/doc/read", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (h *HTTPStore) EditDocument(ctx context.Context, fileID string, changes []models.Change) (*models.EditResult, error) {
	req := struct {
		FileID  string          `json:"file_id"`
		Changes []models.Change `json:"changes"`
	}{FileID: fileID, Changes: changes}
	var out models.EditResult
	if err := h.call(ctx, "/doc/edit", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type apiEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func (h *HTTPStore) call(ctx context.Context, path string, payload, out any) error {
	if err := h.Connect(); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < h.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * h.backoff):
			}
		}

		respBytes, retry, err := h.once(ctx, path, body)
		if err != nil {
			if !retry {
				return err
			}
			lastErr = err
			h.logger.Warn("retrying transient failure",
				"path", path, "attempt", attempt+1, "error", err.Error())
			continue
		}

		var env apiEnvelope
		if err := json.Unmarshal(respBytes, &env); err != nil {
			return fmt.Errorf("malformed response from %s: %w", path, err)
		}
		if env.Code != "" && env.Code != "ok" {
			return &APIError{Code: env.Code, Message: env.Message}
		}
		if out != nil {
			if err := json.Unmarshal(respBytes, out); err != nil {
				return fmt.Errorf("malformed response from %s: %w", path, err)
			}
		}
		return nil
	}

	return fmt.Errorf("%w: %v", constants.ErrTransient, lastErr)
}

// once performs a single round trip. retry reports whether the failure is
// worth another attempt.
func (h *HTTPStore) once(ctx context.Context, path string, body []byte) (respBytes []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("X-Request-Id", ulid.Make().String())

	resp, err := h.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, err
	}
	defer resp.Body.Close()

	respBytes, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return respBytes, false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("status %d from %s", resp.StatusCode, path)
	default:
		var env apiEnvelope
		if jsonErr := json.Unmarshal(respBytes, &env); jsonErr == nil && env.Code != "" {
			return nil, false, &APIError{Code: env.Code, Message: env.Message}
		}
		return nil, false, fmt.Errorf("status %d from %s", resp.StatusCode, path)
	}
}
