// Package apiclient talks to the remote shop REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/models"
)

const maxResponseBytes = 10 << 20

// ErrInvalidResponse wraps upstream payloads that do not match the expected shape.
var ErrInvalidResponse = errors.New("apiclient: invalid response")

// Cookie is an upstream session cookie kept on behalf of a visitor.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Credentials authenticate a visitor against the shop API.
type Credentials struct {
	Token   string   `json:"token,omitempty"`
	Cookies []Cookie `json:"cookies,omitempty"`
}

func (c Credentials) Empty() bool {
	return c.Token == "" && len(c.Cookies) == 0
}

// File is an upload forwarded as a multipart part.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Client issues requests against one shop API base URL.
type Client struct {
	baseURL string
	http    *http.Client
	creds   Credentials
}

// New creates a client with its own connection pool.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: timeout,
		},
	}
}

// WithCredentials returns a copy of the client that authenticates as creds.
// The copy shares the connection pool.
func (c *Client) WithCredentials(creds Credentials) *Client {
	cp := *c
	cp.creds = creds
	return &cp
}

func (c *Client) Credentials() Credentials { return c.creds }

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.creds.Token)
	}
	for _, ck := range c.creds.Cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	return req, nil
}

// send executes req, turns non-2xx statuses into *APIError and decodes the
// body into out when both are present.
func (c *Client) send(req *http.Request, out any) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp, fmt.Errorf("%s %s: read body: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return resp, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp, fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, req.Method, req.URL.Path, err)
	}
	if err := models.Validate(out); err != nil {
		return resp, fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, req.Method, req.URL.Path, err)
	}
	return resp, nil
}

// do sends an optional JSON body and decodes an optional JSON response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// multipartForm is a set of text fields and file parts.
type multipartForm struct {
	fields [][2]string
	files  map[string][]File
}

func (f *multipartForm) add(name, value string) {
	f.fields = append(f.fields, [2]string{name, value})
}

func (f *multipartForm) attach(name string, files []File) {
	if f.files == nil {
		f.files = make(map[string][]File)
	}
	f.files[name] = append(f.files[name], files...)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, form multipartForm, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range form.fields {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return fmt.Errorf("encode field %s: %w", field[0], err)
		}
	}
	for name, files := range form.files {
		for _, file := range files {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, file.Name))
			contentType := file.ContentType
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			h.Set("Content-Type", contentType)
			part, err := w.CreatePart(h)
			if err != nil {
				return fmt.Errorf("encode file %s: %w", file.Name, err)
			}
			if _, err := part.Write(file.Data); err != nil {
				return fmt.Errorf("encode file %s: %w", file.Name, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("encode multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, err = c.send(req, out)
	return err
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
