package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-manager/internal/audit"
	"github.com/BruksfildServices01/event-manager/internal/httperr"
	"github.com/BruksfildServices01/event-manager/internal/middleware"
	"github.com/BruksfildServices01/event-manager/internal/optional"
	"github.com/BruksfildServices01/event-manager/internal/timezone"
)

// bindJSON answers 400 and returns false when the body does not decode.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			httperr.BadRequest(c, "invalid_request", "request body is required")
			return false
		}
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

// ImageRemover releases stored images; failures are logged by the store.
type ImageRemover interface {
	Remove(ctx context.Context, url string)
}

func releaseImages(ctx context.Context, images ImageRemover, urls []string) {
	for _, url := range urls {
		images.Remove(ctx, url)
	}
}

func writeAudit(d *audit.Dispatcher, c *gin.Context, action, entity, entityID string, meta any) {
	var actor string
	if u := middleware.CurrentUser(c); u != nil {
		actor = u.ID
	}
	d.Dispatch(audit.Event{
		ActorID:  actor,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: meta,
	})
}

// nonEmpty drops empty strings so that a blank required field on update
// leaves the stored value alone.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func parseDatePtr(s *string, loc *time.Location) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := timezone.ParseDate(*s, loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", err.Error())
	}
	return &t, nil
}

// parseDateField keeps absent and null as they are; an empty string counts
// as absent.
func parseDateField(f optional.Field[string], loc *time.Location) (optional.Field[time.Time], error) {
	switch {
	case !f.Set:
		return optional.Field[time.Time]{}, nil
	case f.Null:
		return optional.Null[time.Time](), nil
	case f.Value == "":
		return optional.Field[time.Time]{}, nil
	}
	t, err := timezone.ParseDate(f.Value, loc)
	if err != nil {
		return optional.Field[time.Time]{}, httperr.ErrValidation("invalid_date", err.Error())
	}
	return optional.Of(t), nil
}

// decodeData accepts any JSON value. A JSON string that itself holds JSON
// is unwrapped, the way form submissions send it.
func decodeData(raw []byte) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, httperr.ErrValidation("invalid_data", "data must be valid JSON")
	}

	var s string
	if raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		if inner := bytes.TrimSpace([]byte(s)); len(inner) > 0 && json.Valid(inner) {
			return inner, nil
		}
	}
	return raw, nil
}
