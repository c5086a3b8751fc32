// Package eventdata holds the submission workflows for attribute values.
package eventdata

import (
	"context"

	"github.com/BruksfildServices01/event-manager/internal/storage"
)

// ImageStore keeps uploaded pictures. Remove is best effort.
type ImageStore interface {
	Save(ctx context.Context, up storage.Upload) (string, error)
	Remove(ctx context.Context, url string)
}

const entity = "event_data"

var _ ImageStore = (*storage.Images)(nil)
