/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseS3Location(t *testing.T) {
	cases := []struct {
		in      string
		want    S3Location
		isS3    bool
		wantErr bool
	}{
		{in: "pairings.txt"},
		{in: "s3://bucket/events/gnk.txt", isS3: true,
			want: S3Location{Bucket: "bucket", Key: "events/gnk.txt"}},
		{in: "s3://bucket/", isS3: true, wantErr: true},
		{in: "s3:///key", isS3: true, wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, isS3, err := ParseS3Location(c.in)
			if isS3 != c.isS3 {
				t.Errorf("isS3 = %v; want %v", isS3, c.isS3)
			}
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v; wantErr %v", err, c.wantErr)
			}
			if got != c.want {
				t.Errorf("got %+v; want %+v", got, c.want)
			}
		})
	}
}

func TestPairingLinesLocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pairings.txt")
	lines := []string{"Alice", "6", "Bob", "0", "Carol", "", "Dave", ""}

	if err := WritePairingLines(ctx, path, lines); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := ReadPairingLines(ctx, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(got, "|") != strings.Join(lines, "|") {
		t.Errorf("got %q; want %q", got, lines)
	}
}

func TestReadPairingLinesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairings.txt")
	if err := os.WriteFile(path, []byte("Alice\r\n6\r\nBob\r\n\r\n"),
		0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := ReadPairingLines(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Alice", "6", "Bob", ""}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %q; want %q", got, want)
	}
}

func TestReadPairingLinesMissing(t *testing.T) {
	_, err := ReadPairingLines(context.Background(),
		filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
