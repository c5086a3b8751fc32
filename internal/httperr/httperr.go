package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-manager/internal/auth"
	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/domain/access"
	"github.com/BruksfildServices01/event-manager/internal/storage"
)

type HTTPError struct {
	Message string `json:"error"`
	Code    string `json:"code"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Message: message,
		Code:    code,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

var statusByKind = map[Kind]int{
	KindValidation:      http.StatusBadRequest,
	KindUnauthenticated: http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusBadRequest,
	KindTooManyRequests: http.StatusTooManyRequests,
}

// Classify turns store, auth and access errors into BusinessErrors. Unknown
// errors come back unchanged with ok false.
func Classify(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return BusinessError{Kind: KindNotFound, Code: "not_found", Message: "resource not found"}, true
	case errors.Is(err, domain.ErrDuplicateEmail):
		return BusinessError{Kind: KindConflict, Code: "email_taken", Message: err.Error()}, true
	case errors.Is(err, domain.ErrDuplicateAttribute):
		return BusinessError{Kind: KindConflict, Code: "duplicate_attribute", Message: err.Error()}, true
	case errors.Is(err, domain.ErrDuplicateAssociation):
		return BusinessError{Kind: KindConflict, Code: "duplicate_association", Message: err.Error()}, true
	case errors.Is(err, auth.ErrInvalidCredentials):
		return BusinessError{Kind: KindUnauthenticated, Code: "invalid_credentials", Message: err.Error()}, true
	case errors.Is(err, auth.ErrUnauthenticated):
		return BusinessError{Kind: KindUnauthenticated, Code: "unauthenticated", Message: "invalid or expired token"}, true
	case errors.Is(err, access.ErrDenied):
		return BusinessError{Kind: KindForbidden, Code: "forbidden", Message: err.Error()}, true
	case errors.Is(err, access.ErrNotOwner):
		return BusinessError{Kind: KindForbidden, Code: "not_owner", Message: err.Error()}, true
	case errors.Is(err, access.ErrImageDisabled):
		return BusinessError{Kind: KindValidation, Code: "image_not_allowed", Message: err.Error()}, true
	case errors.Is(err, storage.ErrUnsupportedImage):
		return BusinessError{Kind: KindValidation, Code: "invalid_image", Message: err.Error()}, true
	case errors.Is(err, storage.ErrImageTooLarge):
		return BusinessError{Kind: KindValidation, Code: "image_too_large", Message: err.Error()}, true
	}
	return BusinessError{}, false
}

// Respond writes err as JSON. Anything unclassified is logged and answered
// with a generic 500.
func Respond(c *gin.Context, err error) {
	be, ok := Classify(err)
	if !ok {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), err)
		Internal(c, "internal_error", "internal server error")
		return
	}

	status, found := statusByKind[be.Kind]
	if !found {
		status = http.StatusBadRequest
	}
	Write(c, status, be.Code, be.Error())
}
