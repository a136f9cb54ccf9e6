package web

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// NewRetryingClient returns an http.Client that retries connection errors
// and 5xx responses up to retries times.
func NewRetryingClient(retries int, timeout time.Duration) *http.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retries
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = timeout
	client.Logger = nil // Disable retryable client logging

	return client.StandardClient()
}
