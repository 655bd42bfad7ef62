/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache provides an implementation of httpcache.Cache that stores and
 * retrieves data using Amazon S3. It is based on the original
 * github.com/sourcegraph/s3cache but updated to use the more modern
 * aws-sdk-go-v2 and golang standard library functions
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// DefaultPrefix is the object key prefix used when none is configured.
const DefaultPrefix = "s3cache"

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client the cache should used when interacting with S3.
	// By default this is initialized in Init() with the default Config, but
	// callers can optionally override this with their own s3 client if desired.
	Client *s3.Client

	bucketName string
	prefix     string
	gzip       bool
	logErrors  bool

	// The context to specify when initiating s3 requests
	ctx context.Context
}

// Option configures a Cache.
type Option func(c *Cache)

// WithGzip compresses cache entries. Object keys get a ".gz" suffix so
// compressed and uncompressed entries never collide.
func WithGzip(enabled bool) Option {
	return func(c *Cache) {
		c.gzip = enabled
	}
}

// WithErrorLogging logs S3 failures other than cache misses.
func WithErrorLogging(enabled bool) Option {
	return func(c *Cache) {
		c.logErrors = enabled
	}
}

// WithPrefix stores entries under prefix instead of DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New returns a new Cache with underlying storage in the specified Amazon S3
// bucket. Callers should take care to invoke Init() on the returned Cache
// object before use unless they supply their own Client.
func New(ctx context.Context, bucketName string, opts ...Option) *Cache {
	c := &Cache{
		ctx:        ctx,
		bucketName: bucketName,
		prefix:     DefaultPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the cached entry for key, if any.
func (c *Cache) Get(key string) ([]byte, bool) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.ObjectKey(key)),
	}

	resp, err := c.Client.GetObject(c.ctx, input)
	if err != nil {
		if !IsNotFound(err) {
			c.logf("s3cache.get: failed to get object %v/%v: %v", c.bucketName,
				*input.Key, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if c.gzip {
		gr, err := gzip.NewReader(rdr)
		if err != nil {
			c.logf("s3cache.get: failed to open compressed object %v/%v: %v",
				c.bucketName, *input.Key, err)
			return nil, false
		}
		defer gr.Close()
		rdr = gr
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		c.logf("s3cache.get: failed to read object %v/%v: %v", c.bucketName,
			*input.Key, err)
		return nil, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *Cache) Set(key string, data []byte) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.ObjectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		buf, err := compress(data)
		if err != nil {
			c.logf("s3cache.set: failed to gzip data for %v/%v: %v",
				c.bucketName, *input.Key, err)
			return
		}
		input.Body = buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		c.logf("s3cache.set: put failed for %v/%v: %v", c.bucketName,
			*input.Key, err)
	}
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.ObjectKey(key)),
	}

	if _, err := c.Client.DeleteObject(c.ctx, input); err != nil {
		c.logf("s3cache.delete: delete failed for %v/%v: %v", c.bucketName,
			*input.Key, err)
	}
}

// ObjectKey maps a cache key (typically a URL) to the S3 object key holding
// its entry.
func (c *Cache) ObjectKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	objKey := path.Join(c.prefix, hex.EncodeToString(sum[:]))
	if c.gzip {
		objKey += ".gz"
	}

	return objKey
}

func (c *Cache) logf(format string, args ...any) {
	if c.logErrors {
		log.Printf(format, args...)
	}
}

func compress(data []byte) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return &buf, nil
}

// IsNotFound reports whether err is S3 telling us the object doesn't exist.
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

// The default configuration sources are:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
// To use different credentials, modify the returned Cache object's
// Config and Client fields.
func (c *Cache) Init() error {
	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(c.Config)

	// Permission check: verify bucket exists and is accessible
	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w", c.bucketName, err)
	}

	// Permission check: verify ability to list objects under our prefix
	if _, err = c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucketName),
		Prefix:  aws.String(c.prefix + "/"),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects failed for %s: %w", c.bucketName, err)
	}

	return nil
}
