// Package vendors holds the HTTP gateway clients for the two pharmacy
// backends. Each client maps its vendor's wire shapes onto the portal's
// neutral types; nothing vendor-specific leaks past this package.
package vendors

import (
	"net/http"
	"time"
)

const requestBodyReadLimit int64 = 1024

type options struct {
	httpClient *http.Client
}

// Option configures optional gateway behavior.
type Option func(*options)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

func buildOptions(timeout time.Duration, opts []Option) options {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	built := options{httpClient: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		if opt != nil {
			opt(&built)
		}
	}
	if built.httpClient == nil {
		built.httpClient = &http.Client{Timeout: timeout}
	}
	return built
}
