package httpclient

import (
	"net/http"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// New returns a plain client with a request timeout, for the paths that
// bypass the go-github client (raw .diff downloads, completion endpoints).
func New(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
