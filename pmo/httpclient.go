// net/http backed webhook poster //
package pmo

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

type HTTPPoster struct{}

// Post sends the json payload and captures status and body
// non-2xx responses are results, not errors
func (HTTPPoster) Post(url string, body []byte, timeout time.Duration) (*Response, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode, Body: string(respBody)}, nil
}
