package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

const callTimeout = 30 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: callTimeout}
}

// callJSON performs one outbound API call with a JSON body (nil for none)
// and decodes the JSON response. Non-2xx statuses are not errors here;
// adapters read the upstream error shape out of the decoded payload.
func callJSON(ctx context.Context, hc *http.Client, method, url string,
	headers map[string]string, body any) (map[string]any, int, error) {

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<22))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	var payload map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			log.WithError(err).WithField("url", url).Debug("non-JSON upstream response")
			return nil, resp.StatusCode, fmt.Errorf("upstream returned non-JSON response (status %d): %w", resp.StatusCode, err)
		}
	}
	return payload, resp.StatusCode, nil
}
