package main

import (
	"net/http"
	"time"
)

// newHTTPServer sets connection timeouts. WriteTimeout is left at zero:
// send-notification answers only after the whole paced broadcast, which has
// no upper bound on its duration.
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}
}
