package middleware

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/TigerNinja22/Mini-URL/internal/logger"
)

// compressReader implements io.ReadCloser over a gzip-compressed body.
type compressReader struct {
	r  io.ReadCloser
	zr *gzip.Reader
}

func newCompressReader(r io.ReadCloser) (*compressReader, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("new gzip reader: %w", err)
	}

	return &compressReader{
		r:  r,
		zr: zr,
	}, nil
}

func (c compressReader) Read(p []byte) (n int, err error) {
	return c.zr.Read(p)
}

func (c *compressReader) Close() error {
	if err := c.r.Close(); err != nil {
		return fmt.Errorf("close failed: %w", err)
	}
	return c.zr.Close()
}

// Decompress replaces the body of requests that carry a gzip content
// encoding with a decompressing reader, so that handlers always read
// plain bodies.
func Decompress(log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			contentEncoding := r.Header.Get("Content-Encoding")
			if strings.Contains(contentEncoding, "gzip") {
				cr, err := newCompressReader(r.Body)
				if err != nil {
					log.With(r.Context()).Errorf("new compress reader: %v", err)
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				r.Body = cr
				defer func() {
					if err = cr.Close(); err != nil {
						log.With(r.Context()).Errorf("close compress reader: %v", err)
					}
				}()
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(f)
	}
}
