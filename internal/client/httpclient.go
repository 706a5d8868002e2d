package client

import (
	"log/slog"
	"net/http"
	"time"
)

// CreateHTTPClient initializes an HTTP client with a request timeout and redirect logging.
func CreateHTTPClient(log *slog.Logger, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, _ []*http.Request) error {
			log.Debug("Redirected to URL", "URL", req.URL)

			return nil
		},
	}
}
