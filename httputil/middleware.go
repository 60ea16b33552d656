package httputil

import (
	"io"
	"net/http"

	"github.com/pvigilev/zipper/capnslog"
	"github.com/pvigilev/zipper/container/gzip"
)

var plog = capnslog.NewPackageLogger("github.com/pvigilev/zipper", "httputil")

// LoggingMiddleware logs each request's method and URL before delegating
// to Next.
type LoggingMiddleware struct {
	Next http.Handler
}

func (l *LoggingMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	plog.Infof("HTTP %s %v", r.Method, r.URL)
	l.Next.ServeHTTP(w, r)
}

// DecodeHandler reads a gzip-framed body from each request, decompresses
// it via container/gzip, and writes the decompressed bytes back as the
// response body.
type DecodeHandler struct{}

func (DecodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	out, _, err := gzip.Decode(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(out)
}
