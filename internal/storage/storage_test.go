package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func newLocalImages(t *testing.T, maxBytes int64) (*Images, string) {
	t.Helper()

	dir := t.TempDir()
	local, err := NewLocal(dir, PublicPrefix)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	return NewImages(local, maxBytes, 100), dir
}

func TestImages_SaveAndRemove(t *testing.T) {
	imgs, dir := newLocalImages(t, 1<<20)
	ctx := context.Background()
	raw := samplePNG(t)

	url, err := imgs.Save(ctx, Upload{
		Filename:    "photo.png",
		ContentType: "image/png",
		Size:        int64(len(raw)),
		Body:        bytes.NewReader(raw),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".webp") {
		t.Fatalf("unexpected url %q", url)
	}

	stored := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("file not written: %v", err)
	}

	imgs.Remove(ctx, url)
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Fatalf("file not removed: %v", err)
	}

	// Removing twice is harmless.
	imgs.Remove(ctx, url)
}

func TestImages_Rejects(t *testing.T) {
	ctx := context.Background()
	raw := samplePNG(t)

	tests := []struct {
		name     string
		maxBytes int64
		up       Upload
		want     error
	}{
		{
			name:     "wrong extension",
			maxBytes: 1 << 20,
			up:       Upload{Filename: "a.txt", ContentType: "image/png", Body: bytes.NewReader(raw)},
			want:     ErrUnsupportedImage,
		},
		{
			name:     "declared too large",
			maxBytes: 10,
			up:       Upload{Filename: "a.png", ContentType: "image/png", Size: 11, Body: bytes.NewReader(raw)},
			want:     ErrImageTooLarge,
		},
		{
			name:     "body larger than declared",
			maxBytes: 10,
			up:       Upload{Filename: "a.png", ContentType: "image/png", Size: 1, Body: bytes.NewReader(raw)},
			want:     ErrImageTooLarge,
		},
		{
			name:     "not decodable",
			maxBytes: 1 << 20,
			up:       Upload{Filename: "a.png", ContentType: "image/png", Body: strings.NewReader("nope")},
			want:     ErrUnsupportedImage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imgs, _ := newLocalImages(t, tt.maxBytes)
			if _, err := imgs.Save(ctx, tt.up); !errors.Is(err, tt.want) {
				t.Fatalf("got %v want %v", err, tt.want)
			}
		})
	}
}

func TestLocal_DeleteIgnoresForeignURLs(t *testing.T) {
	local, err := NewLocal(t.TempDir(), PublicPrefix)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if err := local.Delete(context.Background(), "https://elsewhere/x.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestS3_RequiresBucket(t *testing.T) {
	if _, err := NewS3(context.Background(), S3Config{Region: "us-east-1"}); err == nil {
		t.Fatal("expected error without bucket")
	}
}
