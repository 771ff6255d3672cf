// Package analyzer talks to the remote image-analysis service: one
// multipart POST per analysis, JSON {success, analysis|error} back.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jask/pixlens/internal/upload"
)

// formField is the multipart field name the server reads the image from.
const formField = "image"

const defaultFailureMessage = "analysis failed"

// RemoteError is a failure declared by the server, either as a non-2xx
// status or as success=false in an otherwise healthy response. Both are
// the same failure class to callers.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return defaultFailureMessage
}

// Client issues analysis requests. No retries; one POST per call.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// New creates a client for the service at baseURL. timeout bounds the
// whole round trip; <= 0 means no client-side timeout.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

type analyzeResponse struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis"`
	Error    string `json:"error"`
}

// Analyze submits the selected file and returns the analysis text.
// Failures declared by the server come back as *RemoteError; transport
// failures are returned as-is.
func (c *Client) Analyze(ctx context.Context, f upload.SelectedFile) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, formField, f.Name))
	if f.MediaType != "" {
		hdr.Set("Content-Type", f.MediaType)
	}
	part, err := w.CreatePart(hdr)
	if err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return "", fmt.Errorf("write form: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", &body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	started := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("file", f.Name).Msg("analyze request failed")
		return "", fmt.Errorf("contact analysis service: %w", err)
	}
	defer resp.Body.Close()

	var decoded analyzeResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := defaultFailureMessage
		if decodeErr == nil && decoded.Error != "" {
			msg = decoded.Error
		}
		c.log.Warn().Int("status", resp.StatusCode).Str("file", f.Name).Msg("analyze rejected")
		return "", &RemoteError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode analysis response: %w", decodeErr)
	}
	if !decoded.Success {
		msg := decoded.Error
		if msg == "" {
			msg = defaultFailureMessage
		}
		return "", &RemoteError{StatusCode: resp.StatusCode, Message: msg}
	}

	c.log.Info().
		Str("file", f.Name).
		Int64("bytes", f.Size).
		Dur("took", time.Since(started)).
		Msg("analysis complete")
	return decoded.Analysis, nil
}

// Health probes the service's health endpoint. Used as a startup
// connectivity check; any non-healthy answer is an error.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("contact analysis service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &RemoteError{StatusCode: resp.StatusCode, Message: "service unhealthy"}
	}
	var status struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&status); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	if status.Status != "healthy" {
		return &RemoteError{StatusCode: resp.StatusCode, Message: "service reports " + status.Status}
	}
	return nil
}
