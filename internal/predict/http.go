package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type HTTPOptions struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
	HTTPClient *http.Client
}

// HTTPModel calls a remote model server: POST {base}/v1/models/{model}:predict.
type HTTPModel struct {
	endpoint   string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	Label *int `json:"label"`
}

// HTTPError is a non-2xx answer from the model server.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		body = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("model server: status=%d body=%s", e.StatusCode, body)
}

func (e *HTTPError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func NewHTTPModel(opts HTTPOptions) (*HTTPModel, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("predictor base URL required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		return nil, errors.New("predictor model name required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = 250 * time.Millisecond
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &HTTPModel{
		endpoint:   baseURL + "/v1/models/" + url.PathEscape(model) + ":predict",
		apiKey:     strings.TrimSpace(opts.APIKey),
		timeout:    timeout,
		maxRetries: maxRetries,
		backoff:    backoff,
		httpClient: httpClient,
	}, nil
}

func (model *HTTPModel) Predict(ctx context.Context, features []float64) (int, error) {
	payload, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return 0, err
	}

	callCtx, cancel := context.WithTimeout(ctx, model.timeout)
	defer cancel()

	var lastErr error
	backoff := model.backoff
	for attempt := 0; attempt <= model.maxRetries; attempt++ {
		if callCtx.Err() != nil {
			return 0, callCtx.Err()
		}

		label, retry, err := model.once(callCtx, payload)
		if err == nil {
			return label, nil
		}
		lastErr = err
		if !retry || attempt == model.maxRetries {
			break
		}

		select {
		case <-callCtx.Done():
			return 0, callCtx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return 0, lastErr
}

func (model *HTTPModel) once(ctx context.Context, payload []byte) (int, bool, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, model.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, false, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	if model.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+model.apiKey)
	}

	response, err := model.httpClient.Do(request)
	if err != nil {
		return 0, true, err
	}
	raw, readErr := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	_ = response.Body.Close()
	if readErr != nil {
		return 0, true, readErr
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		httpErr := &HTTPError{StatusCode: response.StatusCode, Body: string(raw)}
		return 0, httpErr.retryable(), httpErr
	}

	var decoded predictResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return 0, false, fmt.Errorf("decode model response: %w", err)
	}
	if decoded.Label == nil {
		return 0, false, errors.New("model response has no label")
	}
	return *decoded.Label, false, nil
}
