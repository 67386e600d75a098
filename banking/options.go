package banking

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	mode        Mode
	timeout     time.Duration
	httpClient  *http.Client
	concurrency int
}

func defaultOptions() clientOptions {
	return clientOptions{
		mode:        ModeBlocking,
		timeout:     30 * time.Second,
		concurrency: 4,
	}
}

// WithMode selects the execution strategy. The mode is fixed for the
// lifetime of the Client.
func WithMode(mode Mode) Option {
	return func(o *clientOptions) {
		o.mode = mode
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client. The timeout option is
// ignored when one is provided.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithConcurrency sets the dispatcher pool size used in ModeConcurrent.
func WithConcurrency(workers int) Option {
	return func(o *clientOptions) {
		if workers > 0 {
			o.concurrency = workers
		}
	}
}
