// Package storage keeps uploaded images on local disk or in S3.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/event-manager/internal/config"
	"github.com/BruksfildServices01/event-manager/internal/imaging"
	"github.com/BruksfildServices01/event-manager/internal/validators"
)

var (
	ErrUnsupportedImage = errors.New("only jpeg, jpg, png, gif and webp images are allowed")
	ErrImageTooLarge    = errors.New("image exceeds the maximum upload size")
)

// Backend stores opaque objects and hands back the URL clients fetch them from.
type Backend interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Images validates uploads, normalises them and stores them on a Backend.
type Images struct {
	backend  Backend
	maxBytes int64
	maxDim   int
	newKey   func() string
}

func NewImages(backend Backend, maxBytes int64, maxDim int) *Images {
	return &Images{
		backend:  backend,
		maxBytes: maxBytes,
		maxDim:   maxDim,
		newKey:   uuid.NewString,
	}
}

// New builds the backend named by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config) (*Images, error) {
	var backend Backend

	switch strings.ToLower(cfg.StorageDriver) {
	case "", "local":
		local, err := NewLocal(cfg.UploadDir, PublicPrefix)
		if err != nil {
			return nil, err
		}
		backend = local
	case "s3":
		s3b, err := NewS3(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, err
		}
		backend = s3b
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	return NewImages(backend, cfg.UploadMaxBytes, cfg.ImageMaxDimension), nil
}

func (i *Images) Save(ctx context.Context, up Upload) (string, error) {
	if !validators.IsAllowedImage(up.Filename, up.ContentType) {
		return "", ErrUnsupportedImage
	}
	if i.maxBytes > 0 && up.Size > i.maxBytes {
		return "", ErrImageTooLarge
	}

	body := up.Body
	if i.maxBytes > 0 {
		body = io.LimitReader(up.Body, i.maxBytes+1)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if i.maxBytes > 0 && int64(len(raw)) > i.maxBytes {
		return "", ErrImageTooLarge
	}

	out, err := imaging.Normalize(bytes.NewReader(raw), i.maxDim)
	if err != nil {
		return "", ErrUnsupportedImage
	}

	return i.backend.Put(ctx, i.newKey()+imaging.Extension, out, imaging.ContentType)
}

// Remove deletes a stored image. Failures are logged; the caller has nothing
// left to roll back.
func (i *Images) Remove(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := i.backend.Delete(ctx, url); err != nil {
		log.Printf("storage: delete %s: %v", url, err)
	}
}
