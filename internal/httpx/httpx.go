package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	DefaultTimeout = 20 * time.Second
	// MaxBody caps a response body; font files stay well under it.
	MaxBody int64 = 16 << 20
	// UserAgent is sent with every request. Google Fonts serves TrueType
	// sources to clients it does not recognise as browsers.
	UserAgent = "snippetkit"
)

// Client is the HTTP client used by Get. Tests swap it.
var Client = http.DefaultClient

// Get fetches url and returns the body of a 2xx response.
func Get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	resp, err := Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("GET %s: %s (%d)", url, string(b), resp.StatusCode)
	}
	all, err := io.ReadAll(io.LimitReader(resp.Body, MaxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(all)) > MaxBody {
		return nil, fmt.Errorf("GET %s: body exceeds %d bytes", url, MaxBody)
	}
	return all, nil
}
