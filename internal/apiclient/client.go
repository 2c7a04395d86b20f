package apiclient

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rag-console/internal/model"
)

const requestIDHeader = "X-Request-ID"

// Client talks to the RAG API under a single root such as http://host/api/v1.
type Client struct {
	root       string
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a client for root. The default http.Client has no timeout;
// requests end when the server answers or the context is cancelled.
func New(root string, opts ...Option) *Client {
	c := &Client{
		root:       strings.TrimRight(root, "/"),
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Root() string {
	return c.root
}

// Chat sends prompt to POST /chat and returns the reply text.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	bodyBytes, err := json.Marshal(model.ChatRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("marshal chat request failed: %w", err)
	}

	var out model.ChatResponse
	if err := c.do(ctx, "chat", http.MethodPost, "/chat", "application/json", bytes.NewReader(bodyBytes), &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// ListDocuments fetches every document from GET /admin/documents.
func (c *Client) ListDocuments(ctx context.Context) ([]model.Document, error) {
	var docs []model.Document
	if err := c.do(ctx, "list documents", http.MethodGet, "/admin/documents", "", nil, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []model.Document{}
	}
	return docs, nil
}

// UploadDocument posts content as multipart field "file" named filename.
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) (*model.UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form failed: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read upload content failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload form failed: %w", err)
	}

	var out model.UploadResult
	if err := c.do(ctx, "upload document", http.MethodPost, "/admin/documents/upload", writer.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDocument removes the document with id. A success carries no body.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, "delete document", http.MethodDelete, "/admin/documents/"+url.PathEscape(id), "", nil, nil)
}

// do runs one request. out may be nil when a success has no body to read.
func (c *Client) do(ctx context.Context, action, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.root+path, body)
	if err != nil {
		return fmt.Errorf("build %s request failed: %w", action, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	log := c.logger.With().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Logger()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("api request failed")
		return transportErr(action+" request", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("read api response failed")
		return transportErr("read "+action+" response", err)
	}
	log.Debug().Int("status", resp.StatusCode).Int("bytes", len(raw)).Msg("api response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(action, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return transportErr("parse "+action+" json", err)
	}
	return nil
}

// decodeAPIError keeps the status even when the body is not the expected
// JSON; such errors also match ErrTransport.
func decodeAPIError(action string, status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status}
	if len(bytes.TrimSpace(raw)) == 0 {
		return apiErr
	}

	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("parse %s error json failed: %w: %w: %w", action, ErrTransport, apiErr, err)
	}
	if len(body.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(body.Detail, &detail); err == nil {
			apiErr.Detail = detail
		} else if string(body.Detail) != "null" {
			// validation errors send a list of objects
			apiErr.Detail = string(body.Detail)
		}
	}
	return apiErr
}
