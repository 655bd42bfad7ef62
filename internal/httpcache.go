/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/swisscut/s3cache"
)

// NewCachedHttpClient returns an http.Client whose responses are kept in the
// S3 web cache for maxAge. If the bucket isn't reachable it falls back to a
// process local in-memory cache, which still spares repeated fetches of the
// same rounds page within one run.
func NewCachedHttpClient(ctx context.Context, maxAge time.Duration) *http.Client {
	cache := s3cache.New(ctx, WebCacheBucket, s3cache.WithGzip(true),
		s3cache.WithErrorLogging(true))

	if err := cache.Init(); err != nil {
		log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to in-memory cache",
			err)
		return newCachedHttpClient(httpcache.NewMemoryCache(), maxAge)
	}

	return newCachedHttpClient(cache, maxAge)
}

func newCachedHttpClient(cache httpcache.Cache, maxAge time.Duration) *http.Client {
	hc := httpcache.NewTransport(cache)
	// origin servers tend to mark tournament pages uncacheable, so the TTL is
	// imposed client side
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: http.DefaultTransport,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// NewHeaderOverrideTransport wraps rt with the given hooks. A nil rt means
// http.DefaultTransport.
func NewHeaderOverrideTransport(rt http.RoundTripper,
	request func(req *http.Request),
	response func(resp *http.Response) error) *HeaderOverrideTransport {

	if rt == nil {
		rt = http.DefaultTransport
	}
	return &HeaderOverrideTransport{
		Request:   request,
		Response:  response,
		wrappedRT: rt,
	}
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don’t stomp on the caller’s original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}
