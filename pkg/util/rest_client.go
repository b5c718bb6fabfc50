package util

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// HTTPError is returned by RestClient for every non 2xx answer.
type HTTPError struct {
	Method  string
	URL     string
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d, message: %s", e.Method, e.URL, e.Status, e.Message)
}

// RestClient talks JSON to one upstream service.
type RestClient struct {
	server string // http://server/prefix
	client *http.Client
}

func NewRestClient(server string, timeout time.Duration) *RestClient {
	return &RestClient{
		server: strings.TrimRight(server, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// Execute sends body as JSON (when not nil) and decodes a 2xx response into result (when not nil).
func (r *RestClient) Execute(ctx context.Context, method, path string, query url.Values, header http.Header, body any, result any) error {
	endPoint := r.server + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endPoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endPoint, reader)
	if err != nil {
		return err
	}
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	status := resp.StatusCode
	if status/100 != 2 {
		message, _ := io.ReadAll(resp.Body)
		logrus.Debugf("%s %s returned %d: %s", method, endPoint, status, string(message))
		return &HTTPError{Method: method, URL: endPoint, Status: status, Message: string(message)}
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, endPoint, err)
	}
	return nil
}
