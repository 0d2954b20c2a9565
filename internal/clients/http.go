package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

const maxResponseBodySize = 16 << 20 // 16 MB

var ErrBodyTooLarge = errors.New("response body too large")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Url        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Url, e.StatusCode)
}

func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))

	if resp.StatusCode/100 != 2 {
		return &StatusError{Url: url, StatusCode: resp.StatusCode}
	}
	return nil
}

// readBody returns the response body, transparently decoding zstd.
func readBody(resp *http.Response) ([]byte, error) {
	body := io.LimitReader(resp.Body, maxResponseBodySize)
	if resp.Header.Get("Content-Encoding") != "zstd" {
		return io.ReadAll(body)
	}
	dec, err := zstd.NewReader(body, zstd.WithDecoderMaxMemory(maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()
	data, err := io.ReadAll(io.LimitReader(dec, maxResponseBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxResponseBodySize {
		return nil, ErrBodyTooLarge
	}
	return data, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, dst any) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "zstd")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return resp, &StatusError{Url: url, StatusCode: resp.StatusCode}
	}
	data, err := readBody(resp)
	if err != nil {
		return resp, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return resp, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return resp, fmt.Errorf("decode %s: %w", url, err)
	}
	return resp, nil
}
