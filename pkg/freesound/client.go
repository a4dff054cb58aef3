package freesound

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/me/freesound/internal/logging"
	"github.com/me/freesound/pkg/mapping"
	"github.com/me/freesound/pkg/query"
	"github.com/me/freesound/pkg/query/token"
	"github.com/me/freesound/pkg/response"
)

// Client sends queries to the Freesound API. It is safe for concurrent use;
// the queries it executes are not.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *slog.Logger
	limiter    *rate.Limiter
}

// NewClient creates a new Freesound API client with the given configuration.
func NewClient(config Config, logger *slog.Logger) *Client {
	logger = logging.OrDiscard(logger)

	c := &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
		logger: logger.With("component", "freesound-client"),
	}
	if config.RequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), 1)
	}
	return c
}

// Config returns the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// requestID generates a unique request identifier.
func requestID() string {
	return "req_" + uuid.New().String()[:8]
}

// Execute sends a JSON query and returns its envelope. An error is returned
// only when no response was obtained; error responses from the API are
// reported through the envelope.
func Execute[R any](ctx context.Context, c *Client, q query.JSONQuery[R]) (*response.Response[R], error) {
	op := q.Method() + " " + q.PathTemplate()

	resp, err := c.send(ctx, op, q, q.Method(), q.PathTemplate(), q.RouteParameters(), q.QueryParameters())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp)
	if err != nil {
		return nil, WrapError(op, err)
	}
	return q.ProcessResponse(resp.StatusCode, statusText(resp), body), nil
}

// Download sends a binary query. On success the envelope's Results is the
// open response body, which the caller must close. On an error response the
// body has already been consumed and closed.
func Download(ctx context.Context, c *Client, q query.BinaryQuery) (*response.Response[io.ReadCloser], error) {
	op := q.Method() + " " + q.PathTemplate()

	resp, err := c.send(ctx, op, q, q.Method(), q.PathTemplate(), q.RouteParameters(), q.QueryParameters())
	if err != nil {
		return nil, err
	}

	envelope := q.ProcessResponse(resp.StatusCode, statusText(resp), resp.Body)
	if envelope.IsError() {
		resp.Body.Close()
	}
	return envelope, nil
}

// DownloadTo sends a binary query and copies the file to w. An error response
// is returned as *APIError.
func DownloadTo(ctx context.Context, c *Client, q query.BinaryQuery, w io.Writer) (int64, error) {
	envelope, err := Download(ctx, c, q)
	if err != nil {
		return 0, err
	}
	if err := CheckResponse(envelope); err != nil {
		return 0, err
	}
	body := envelope.Results()
	defer body.Close()

	n, err := io.Copy(w, body)
	if err != nil {
		return n, WrapError(q.Method()+" "+q.PathTemplate(), fmt.Errorf("copying download: %w", err))
	}
	return n, nil
}

// send performs a request with retries. The caller owns the returned body.
func (c *Client) send(ctx context.Context, op string, q any, method, path string, route map[string]string, params map[string]any) (*http.Response, error) {
	expanded, err := query.ExpandPath(path, route)
	if err != nil {
		return nil, WrapError(op, err)
	}
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + expanded

	auth, err := c.authorization(q)
	if err != nil {
		return nil, WrapError(op, err)
	}

	body, contentType, err := encodeParams(method, params)
	if err != nil {
		return nil, WrapError(op, err)
	}
	if method == http.MethodGet && len(params) > 0 {
		endpoint += "?" + formValues(params).Encode()
	}

	reqID := requestID()
	logger := c.logger.With("method", method, "url", endpoint, "request_id", reqID)
	logger.Debug("sending request")

	var lastErr error
	var retryAfter time.Duration
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := retryAfter
			retryAfter = 0
			delay := c.config.RetryDelay * time.Duration(math.Pow(2, float64(attempt-1)))
			if wait > delay {
				delay = wait
			}
			logger.Debug("retrying after delay", "attempt", attempt, "delay", delay)

			select {
			case <-ctx.Done():
				return nil, WrapError(op, ctx.Err())
			case <-time.After(delay):
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, WrapError(op, err)
			}
		}

		resp, err := c.doRequest(ctx, method, endpoint, body, contentType, auth, reqID)
		if err != nil {
			lastErr = err
			if !IsRetryable(err) {
				return nil, WrapError(op, err)
			}
			logger.Warn("request failed, will retry", "error", err, "attempt", attempt)
			continue
		}

		if retryableStatus(resp.StatusCode) && attempt < c.config.MaxRetries {
			retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
			logger.Warn("retryable status, will retry", "status", resp.StatusCode, "attempt", attempt)
			continue
		}

		logger.Debug("response received", "status", resp.StatusCode)
		return resp, nil
	}

	return nil, WrapError(op, fmt.Errorf("all retries exhausted: %w", lastErr))
}

// doRequest performs a single HTTP request.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body []byte, contentType, auth, reqID string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if auth != "" {
		httpReq.Header.Set("Authorization", auth)
	}
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	httpReq.Header.Set("X-Request-ID", reqID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &transportError{err: err}
	}
	return resp, nil
}

// authorization returns the Authorization header for q. Credentialed queries
// use their bearer token, the token exchange sends its credentials in the
// body, and everything else uses the API key.
func (c *Client) authorization(q any) (string, error) {
	if cred, ok := q.(query.Credentialed); ok {
		if cred.BearerToken() == "" {
			return "", ErrNotAuthenticated
		}
		return "Bearer " + cred.BearerToken(), nil
	}
	if _, ok := q.(*token.Exchange); ok {
		return "", nil
	}
	if c.config.ClientSecret == "" {
		return "", nil
	}
	return "Token " + c.config.ClientSecret, nil
}

// encodeParams builds the request body. GET requests carry their parameters
// in the URL and have no body. Parameters holding a query.File are sent as
// multipart/form-data, all others as a urlencoded form.
func encodeParams(method string, params map[string]any) ([]byte, string, error) {
	if method == http.MethodGet || len(params) == 0 {
		return nil, "", nil
	}

	hasFile := false
	for _, v := range params {
		if _, ok := v.(query.File); ok {
			hasFile = true
			break
		}
	}
	if !hasFile {
		return []byte(formValues(params).Encode()), "application/x-www-form-urlencoded", nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range sortedKeys(params) {
		switch v := params[name].(type) {
		case query.File:
			if err := writeFilePart(mw, name, string(v)); err != nil {
				return nil, "", err
			}
		default:
			if err := mw.WriteField(name, query.FormatValue(v)); err != nil {
				return nil, "", fmt.Errorf("writing field %s: %w", name, err)
			}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

func writeFilePart(mw *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	part, err := mw.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("reading upload: %w", err)
	}
	return nil
}

func formValues(params map[string]any) url.Values {
	values := url.Values{}
	for name, v := range params {
		values.Set(name, query.FormatValue(v))
	}
	return values
}

func sortedKeys(params map[string]any) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// decodeBody decodes a JSON object body. An empty body decodes to an empty
// object. An error response whose body is not JSON gets its text as detail.
func decodeBody(resp *http.Response) (mapping.Object, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return mapping.Object{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj mapping.Object
	if err := dec.Decode(&obj); err != nil || obj == nil {
		if resp.StatusCode >= 400 {
			return mapping.Object{"detail": nonJSONDetail(resp, raw)}, nil
		}
		if err == nil {
			err = fmt.Errorf("response is not a JSON object")
		}
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	return obj, nil
}

func nonJSONDetail(resp *http.Response, raw []byte) string {
	const maxDetail = 512
	text := strings.TrimSpace(string(raw))
	if len(text) > maxDetail {
		cut := maxDetail
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	if text == "" || strings.HasPrefix(text, "<") {
		return statusText(resp)
	}
	return text
}

// statusText returns the reason phrase of resp, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
