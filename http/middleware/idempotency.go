package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"io"
	"net/http"
)

// IdempotencyHeader carries the client-chosen key uniquely identifying a POST.
const IdempotencyHeader = "Idempotency-Key"

var _ http.ResponseWriter = replayWriter{}

// Idempotent enables idempotency on a POST endpoint.
// GET, DELETE, PUT, & PATCH are idempotent by definition.
//
// Idempotent pulls a key (a UUID v4 string) from request headers
// to base the uniqueness of a POST request around.
//
// If a previous request has not used that key,
// Idempotent pairs all of the following values to the key:
// - a digest of the body of the request
// - the body of the resulting response
// - the status code of the resulting response
//
// If that key has been used before (and has not expired),
// Idempotent falls into one of these scenarios:
//
//   - if a status code has not been set for that key,
//     Idempotent responds with 409 since the idempotent request is still processing
//
//   - if the newly requested resource (the URI) or request body
//     does not match the original, Idempotent responds with 422
//
//   - otherwise, Idempotent replays the status code and body saved for the key
//
// cache can be nil; an in-memory MemoryCache is used in its place.
//
// Idempotent implements the draft Idempotent HTTP Header Field specification:
// https://tools.ietf.org/id/draft-idempotency-header-01.html
func Idempotent(cache ResponseCacher) Adapter {
	if cache == nil {
		cache = NewMemoryCache()
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}

			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			sum := sha256.Sum256(body)

			cr, ok := cache.Get(r.Context(), key)
			if ok {
				if cr.Status == 0 {
					w.WriteHeader(http.StatusConflict)
					return
				}

				if cr.URI != r.URL.RequestURI() || !bytes.Equal(cr.ReqDigest, sum[:]) {
					w.WriteHeader(http.StatusUnprocessableEntity)
					return
				}

				w.WriteHeader(cr.Status)
				w.Write(cr.Body)
				return
			}

			cr = CachedResponse{URI: r.URL.RequestURI(), ReqDigest: sum[:]}
			cache.Set(r.Context(), key, cr)

			handler.ServeHTTP(replayWriter{
				ctx: r.Context(),
				c:   cache,
				cr:  &cr,
				key: key,
				w:   w,
			}, r)
		})
	}
}

// A CachedResponse is data from an HTTP response
// that can be replayed when another request
// matches the same idempotency key.
type CachedResponse struct {
	Body      []byte
	ReqDigest []byte
	Status    int
	URI       string
}

// A replayWriter mirrors everything a handler writes into a CachedResponse,
// persisting it in the cache as it goes.
type replayWriter struct {
	ctx context.Context
	c   ResponseCacher
	cr  *CachedResponse
	key string
	w   http.ResponseWriter
}

func (rw replayWriter) Header() http.Header { return rw.w.Header() }

func (rw replayWriter) Write(b []byte) (int, error) {
	select {
	case <-rw.ctx.Done():
		return 0, nil
	default:
		if rw.cr.Status == 0 {
			rw.WriteHeader(http.StatusOK)
		}

		n, err := rw.w.Write(b)
		if err != nil {
			return n, err
		}

		rw.cr.Body = append(rw.cr.Body, b...)
		rw.c.Set(rw.ctx, rw.key, *rw.cr)
		return n, nil
	}
}

func (rw replayWriter) WriteHeader(s int) {
	select {
	case <-rw.ctx.Done():
		return
	default:
		rw.w.WriteHeader(s)
		rw.cr.Status = s
		rw.c.Set(rw.ctx, rw.key, *rw.cr)
	}
}
