package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// DefaultURL is the course key/message server.
	DefaultURL     = "http://voyager.cs.rit.edu:5050"
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader carries a per request uuid.
	RequestIDHeader = "X-Request-Id"
)

var (
	ErrNotFound = errors.New("transport: nothing stored for this email")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("transport: %s %s returned status: %s", e.Method, e.URL, e.Status)
}

// Key is the JSON envelope of /Key/<email>.
type Key struct {
	Email string `json:"email"`
	Key   string `json:"key"`
}

// Message is the JSON envelope of /Message/<email>.
type Message struct {
	Email   string `json:"email"`
	Content string `json:"content"`
}

// Client talks to the key/message server.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient returns a client for baseURL. A nil httpClient gets DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "transport: invalid server url %q", baseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("transport: unsupported url scheme %q", u.Scheme)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{base: u, http: httpClient}, nil
}

// PutKey uploads key as the public key of email.
func (c *Client) PutKey(ctx context.Context, email, key string) error {
	return c.put(ctx, "Key", email, Key{Email: email, Key: key})
}

// GetKey downloads the public key of email.
func (c *Client) GetKey(ctx context.Context, email string) (*Key, error) {
	var k Key
	if err := c.get(ctx, "Key", email, &k); err != nil {
		return nil, err
	}
	return &k, nil
}

// PutMessage stores an encrypted message for email.
func (c *Client) PutMessage(ctx context.Context, email, content string) error {
	return c.put(ctx, "Message", email, Message{Email: email, Content: content})
}

// GetMessage fetches the encrypted message stored for email.
func (c *Client) GetMessage(ctx context.Context, email string) (*Message, error) {
	var m Message
	if err := c.get(ctx, "Message", email, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) endpoint(resource, email string) string {
	return c.base.String() + "/" + resource + "/" + url.PathEscape(email)
}

func (c *Client) put(ctx context.Context, resource, email string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	res, err := c.do(ctx, http.MethodPut, c.endpoint(resource, email), bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

func (c *Client) get(ctx context.Context, resource, email string, out interface{}) error {
	res, err := c.do(ctx, http.MethodGet, c.endpoint(resource, email), nil)
	if err != nil {
		if se := new(StatusError); errors.As(err, &se) && se.Code == http.StatusNotFound {
			return ErrNotFound
		}
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "transport: failed to read response")
	}
	if len(bytes.TrimSpace(body)) == 0 || string(bytes.TrimSpace(body)) == "null" {
		return ErrNotFound
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "transport: malformed %s response", resource)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	id := uuid.New().String()
	req.Header.Set(RequestIDHeader, id)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	ctxLog := log.WithFields(log.Fields{"method": method, "url": target, "request_id": id})
	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		ctxLog.WithError(err).Debug("request failed")
		return nil, errors.Wrapf(err, "transport: %s %s", method, target)
	}
	ctxLog.WithFields(log.Fields{"status": res.StatusCode, "elapsed": time.Since(start)}).Debug("response")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		return nil, &StatusError{Method: method, URL: target, Status: res.Status, Code: res.StatusCode}
	}
	return res, nil
}
