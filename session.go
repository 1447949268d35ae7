package pandasai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIURL is the PandaAI platform endpoint used when PANDABI_API_URL
// is not set.
const DefaultAPIURL = "https://api.pandabi.ai"

// FormFile is one multipart upload entry: a repeated form field carrying a
// file body with an explicit content type.
type FormFile struct {
	Field       string
	Name        string
	ContentType string
	Body        io.Reader
}

// Session posts multipart requests to the remote dataset API. It is an
// interface so tests can observe the exact request without a network.
type Session interface {
	Post(ctx context.Context, endpoint string, files []FormFile, params url.Values, headers map[string]string) (*http.Response, error)
}

// APISession is the production Session: a thin authenticated HTTP client
// bound to the platform base URL.
type APISession struct {
	BaseURL string
	Client  *http.Client
}

// NewAPISession builds a session against PANDABI_API_URL, falling back to
// the public platform URL.
func NewAPISession(env Environ) *APISession {
	base := env.Get("PANDABI_API_URL")
	if base == "" {
		base = DefaultAPIURL
	}
	return &APISession{
		BaseURL: strings.TrimRight(base, "/"),
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Post issues a single multipart POST. One attempt, no retries; transport
// errors are returned unchanged.
func (s *APISession) Post(ctx context.Context, endpoint string, files []FormFile, params url.Values, headers map[string]string) (*http.Response, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Name))
		header.Set("Content-Type", file.ContentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("multipart part %s: %w", file.Name, err)
		}
		if _, err := io.Copy(part, file.Body); err != nil {
			return nil, fmt.Errorf("multipart copy %s: %w", file.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("multipart close: %w", err)
	}

	u := s.BaseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}

var _ Session = (*APISession)(nil)
