// Package rag is the HTTP client for the retrieval service: question
// answering, document listing, and PDF upload.
package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ragstack/ragdb-mcp/internal/config"
	"github.com/ragstack/ragdb-mcp/internal/logging"
)

const maxQuestionLength = 1000

// Client talks to the retrieval service over HTTP. All requests carry
// the configured bearer token and run under per-operation deadlines.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logging.Logger

	askTimeout    time.Duration
	uploadTimeout time.Duration
	listTimeout   time.Duration
}

// NewClient builds a client from the service configuration.
func NewClient(cfg *config.RAGConfig, logger *logging.Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.GetBaseURL(), "/"),
		apiKey:        cfg.GetAPIKey(),
		httpClient:    &http.Client{},
		logger:        logger,
		askTimeout:    cfg.GetAskTimeout(),
		uploadTimeout: cfg.GetUploadTimeout(),
		listTimeout:   cfg.GetListTimeout(),
	}
}

// Configured reports whether the client has both a base URL and an API
// key. Unconfigured clients fail per call instead of at startup.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

func (c *Client) checkConfigured() error {
	if c.baseURL == "" {
		return fmt.Errorf("RAG service URL is not configured")
	}
	if c.apiKey == "" {
		return fmt.Errorf("RAG API key is not configured")
	}
	return nil
}

// Ask sends a question to the retrieval service, optionally scoped to
// one document. Length limits are enforced here as well as at the tool
// boundary so direct callers get the same contract.
func (c *Client) Ask(ctx context.Context, question, documentID string) (*Answer, error) {
	if err := c.checkConfigured(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question cannot be empty")
	}
	if utf8.RuneCountInString(question) > maxQuestionLength {
		return nil, fmt.Errorf("question exceeds maximum length of %d characters", maxQuestionLength)
	}

	payload := map[string]interface{}{
		"question": question,
	}
	if documentID != "" {
		payload["document_id"] = documentID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode question: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.askTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var answer Answer
	if err := c.do(req, &answer); err != nil {
		return nil, err
	}

	c.logger.Info("Question answered", map[string]interface{}{
		"document_id": documentID,
		"sources":     len(answer.Sources),
	})
	return &answer, nil
}

// Upload sends a local PDF to the retrieval service for ingestion.
func (c *Client) Upload(ctx context.Context, filePath string, meta Metadata) (*UploadResult, error) {
	if err := c.checkConfigured(); err != nil {
		return nil, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	if !strings.EqualFold(filepath.Ext(filePath), ".pdf") {
		return nil, fmt.Errorf("only PDF files are supported")
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if !meta.IsZero() {
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata: %w", err)
		}
		if err := writer.WriteField("metadata", string(metaJSON)); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	c.logger.Info("PDF uploaded", map[string]interface{}{
		"file":        filepath.Base(filePath),
		"document_id": result.DocumentID,
	})
	return &result, nil
}

// List returns all documents known to the retrieval service.
func (c *Client) List(ctx context.Context) ([]Document, error) {
	if err := c.checkConfigured(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.listTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/documents", nil)
	if err != nil {
		return nil, err
	}

	var docs []Document
	if err := c.do(req, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocument fetches one document's metadata. A 404 from the service
// yields (nil, nil): absence is a result, not a failure.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*Document, error) {
	if err := c.checkConfigured(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.listTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/documents/"+documentID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("RAG service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode RAG service response: %w", err)
	}
	return &doc, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("RAG service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode RAG service response: %w", err)
	}
	return nil
}

func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		return fmt.Errorf("RAG service returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("RAG service returned status %d: %s", resp.StatusCode, detail)
}
