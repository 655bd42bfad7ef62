/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mikeb26/swisscut/s3cache"
)

// StdioName selects stdin/stdout in place of a pairings file.
const StdioName = "-"

// S3Location is a parsed s3://bucket/key reference.
type S3Location struct {
	Bucket string
	Key    string
}

// ParseS3Location parses s3://bucket/key. ok is false if loc is not an S3
// reference at all.
func ParseS3Location(loc string) (S3Location, bool, error) {
	if !strings.HasPrefix(loc, "s3://") {
		return S3Location{}, false, nil
	}
	u, err := url.Parse(loc)
	if err != nil {
		return S3Location{}, true, fmt.Errorf("invalid s3 location %v: %w",
			loc, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return S3Location{}, true,
			fmt.Errorf("invalid s3 location %v: expected s3://bucket/key", loc)
	}

	return S3Location{Bucket: u.Host, Key: key}, true, nil
}

// ReadPairingLines reads the flat pairing file at src, which is a local path,
// "-" for stdin, or s3://bucket/key. Blank lines are significant: they mark
// undecided results.
func ReadPairingLines(ctx context.Context, src string) ([]string, error) {
	if src == StdioName {
		return scanLines(os.Stdin)
	}

	loc, isS3, err := ParseS3Location(src)
	if err != nil {
		return nil, err
	}
	if !isS3 {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("unable to open pairings: %w", err)
		}
		defer f.Close()
		return scanLines(f)
	}

	client, err := newS3Client(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		if s3cache.IsNotFound(err) {
			return nil, fmt.Errorf("no pairings at %v: %w", src, os.ErrNotExist)
		}
		return nil, fmt.Errorf("unable to fetch pairings from %v: %w", src, err)
	}
	defer resp.Body.Close()

	return scanLines(resp.Body)
}

// WritePairingLines writes lines to dst, which is a local path, "-" for
// stdout, or s3://bucket/key.
func WritePairingLines(ctx context.Context, dst string, lines []string) error {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteString("\n")
	}

	if dst == StdioName {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}

	loc, isS3, err := ParseS3Location(dst)
	if err != nil {
		return err
	}
	if !isS3 {
		if err := os.WriteFile(dst, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("unable to write pairings: %w", err)
		}
		return nil
	}

	client, err := newS3Client(ctx)
	if err != nil {
		return err
	}
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(loc.Bucket),
		Key:         aws.String(loc.Key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("unable to store pairings at %v: %w", dst, err)
	}

	return nil
}

func newS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func scanLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read pairings: %w", err)
	}

	return lines, nil
}
