package api

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

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simurg/simurg-desktop/internal/model"
)

// Endpoint paths
const (
	PathCoordinates       = "/coordinates"
	PathGeneratePlot      = "/generate_plot/"
	PathGenerateArchive   = "/generate_archive_and_animation/"
	PathRequestProgress   = "/get_request_progress/"
	PathArchiveProgress   = "/get_archive_progress/"
	PathDownloadProgress  = "/download_progress/"
	PathDownloadResult    = "/download_result/"
	PathDownloadImages    = "/download_images/"
	PathDownloadAnimation = "/download_animation/"
	FieldObsFile          = "obsfile"
	FieldNavFile          = "navfile"
	HeaderRequestID       = "X-Request-ID"
	HeaderSessionID       = "X-Session-ID"
	contentTypeJSON       = "application/json"
	userAgentPrefix       = "simurg/"
)

// Client issues requests to the SIMURG API. Every method performs exactly one
// HTTP call; there is no retry, backoff or caching.
type Client struct {
	BaseURL   *url.URL
	Client    *http.Client
	UserAgent string
	SessionID string
	Logger    logrus.FieldLogger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.Client = httpClient
	}
}

// WithTimeout sets a per-call timeout; zero means none
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.Client.Timeout = timeout
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		c.Logger = logger
	}
}

// NewClient constructs a new API client.
func NewClient(baseURL, version string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}

	c := &Client{
		BaseURL:   parsed,
		Client:    &http.Client{},
		UserAgent: userAgentPrefix + version,
		SessionID: uuid.NewString(),
		Logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CalculateCoordinates uploads an observation and a navigation file and returns
// the computed receiver coordinates. Only 200 and 201 count as success.
func (c *Client) CalculateCoordinates(ctx context.Context, obs, nav Upload) (model.CoordinatesResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writePart(writer, FieldObsFile, obs); err != nil {
		return model.CoordinatesResult{}, err
	}
	if err := writePart(writer, FieldNavFile, nav); err != nil {
		return model.CoordinatesResult{}, err
	}
	if err := writer.Close(); err != nil {
		return model.CoordinatesResult{}, fmt.Errorf("close multipart: %w", err)
	}

	var result model.CoordinatesResult
	err := c.do(ctx, http.MethodPost, PathCoordinates, nil, &body, writer.FormDataContentType(),
		acceptCreated, decodeJSON(&result))
	if err != nil {
		return model.CoordinatesResult{}, err
	}
	return result, nil
}

// GeneratePlot creates a single plot job
func (c *Client) GeneratePlot(ctx context.Context, req model.GeneratePlotRequest) (model.GenerateResponse, error) {
	var response model.GenerateResponse
	err := c.doJSON(ctx, http.MethodPost, PathGeneratePlot, nil, req, &response)
	return response, err
}

// GenerateArchiveAndAnimation creates an archive/animation job over a time range
func (c *Client) GenerateArchiveAndAnimation(ctx context.Context, req model.ArchiveAnimationRequest) (model.GenerateResponse, error) {
	var response model.GenerateResponse
	err := c.doJSON(ctx, http.MethodPost, PathGenerateArchive, nil, req, &response)
	return response, err
}

// GetRequestProgress returns the progress of a single plot job
func (c *Client) GetRequestProgress(ctx context.Context, requestID string) (model.ProgressResponse, error) {
	return c.progress(ctx, PathRequestProgress, requestID)
}

// GetArchiveProgress returns the progress of an archive/animation job
func (c *Client) GetArchiveProgress(ctx context.Context, requestID string) (model.ProgressResponse, error) {
	return c.progress(ctx, PathArchiveProgress, requestID)
}

// GetDownloadProgress returns the server-side progress of fetching a source data URL
func (c *Client) GetDownloadProgress(ctx context.Context, sourceURL string) (model.ProgressResponse, error) {
	var response model.ProgressResponse
	err := c.doJSON(ctx, http.MethodGet, PathDownloadProgress, downloadProgressParams{URL: sourceURL}, nil, &response)
	return response, err
}

// DownloadResult fetches the rendered image of a single plot job
func (c *Client) DownloadResult(ctx context.Context, requestID, filename string) ([]byte, error) {
	if requestID == "" {
		return nil, ErrEmptyRequestID
	}
	return c.doBinary(ctx, PathDownloadResult, downloadResultParams{RequestID: requestID, Filename: filename})
}

// DownloadImages fetches the zipped images of an archive job
func (c *Client) DownloadImages(ctx context.Context, requestID string) ([]byte, error) {
	if requestID == "" {
		return nil, ErrEmptyRequestID
	}
	return c.doBinary(ctx, PathDownloadImages, requestIDParams{RequestID: requestID})
}

// DownloadAnimation fetches the animation of an archive job
func (c *Client) DownloadAnimation(ctx context.Context, requestID string) ([]byte, error) {
	if requestID == "" {
		return nil, ErrEmptyRequestID
	}
	return c.doBinary(ctx, PathDownloadAnimation, requestIDParams{RequestID: requestID})
}

type requestIDParams struct {
	RequestID string `url:"request_id"`
}

type downloadResultParams struct {
	RequestID string `url:"request_id"`
	Filename  string `url:"filename"`
}

type downloadProgressParams struct {
	URL string `url:"url"`
}

func (c *Client) progress(ctx context.Context, path, requestID string) (model.ProgressResponse, error) {
	if requestID == "" {
		return model.ProgressResponse{}, ErrEmptyRequestID
	}
	var response model.ProgressResponse
	err := c.doJSON(ctx, http.MethodGet, path, requestIDParams{RequestID: requestID}, nil, &response)
	return response, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, params, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		reader = bytes.NewReader(encoded)
		contentType = contentTypeJSON
	}
	return c.do(ctx, method, path, params, reader, contentType, accept2xx, decodeJSON(out))
}

func (c *Client) doBinary(ctx context.Context, path string, params any) ([]byte, error) {
	var data []byte
	err := c.do(ctx, http.MethodGet, path, params, nil, "", accept2xx, func(r io.Reader) error {
		var err error
		data, err = io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	})
	return data, err
}

func (c *Client) do(ctx context.Context, method, path string, params any, body io.Reader, contentType string,
	accept func(int) bool, handle func(io.Reader) error) error {
	requestURL, err := c.endpoint(path, params)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set(HeaderSessionID, c.SessionID)
	req.Header.Set("User-Agent", c.UserAgent)

	log := c.Logger.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"http_req_id": requestID,
	})
	started := time.Now()

	resp, err := c.Client.Do(req)
	if err != nil {
		log.WithError(err).Debug("api request failed")
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(started).String(),
	}).Debug("api request done")

	if !accept(resp.StatusCode) {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(bodyBytes)),
		}
	}

	if handle == nil {
		return nil
	}
	return handle(resp.Body)
}

func (c *Client) endpoint(path string, params any) (string, error) {
	u := *c.BaseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawPath = ""
	u.RawQuery = ""
	if params != nil {
		values, err := query.Values(params)
		if err != nil {
			return "", fmt.Errorf("encode query: %w", err)
		}
		u.RawQuery = values.Encode()
	}
	return u.String(), nil
}

func writePart(writer *multipart.Writer, field string, upload Upload) error {
	if upload.Content == nil {
		return fmt.Errorf("%s: no content", field)
	}
	part, err := writer.CreateFormFile(field, upload.FileName)
	if err != nil {
		return fmt.Errorf("create %s part: %w", field, err)
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return fmt.Errorf("write %s part: %w", field, err)
	}
	return nil
}

func decodeJSON(out any) func(io.Reader) error {
	if out == nil {
		return nil
	}
	return func(r io.Reader) error {
		if err := json.NewDecoder(r).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}

func accept2xx(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

func acceptCreated(code int) bool {
	return code == http.StatusOK || code == http.StatusCreated
}
