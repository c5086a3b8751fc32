package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/domain/access"
)

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", ErrValidation("name_required", "name is required"), http.StatusBadRequest, "name_required"},
		{"store not found", fmt.Errorf("load: %w", domain.ErrNotFound), http.StatusNotFound, "not_found"},
		{"duplicate attribute", domain.ErrDuplicateAttribute, http.StatusBadRequest, "duplicate_attribute"},
		{"denied", access.ErrDenied, http.StatusForbidden, "forbidden"},
		{"not owner", access.ErrNotOwner, http.StatusForbidden, "not_owner"},
		{"image", access.ErrImageDisabled, http.StatusBadRequest, "image_not_allowed"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("status %d want %d", w.Code, tt.wantStatus)
			}
			var body HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode || body.Message == "" {
				t.Fatalf("unexpected body %+v", body)
			}
			if tt.wantStatus == http.StatusInternalServerError && body.Message != "internal server error" {
				t.Fatalf("internal detail leaked: %q", body.Message)
			}
		})
	}
}
