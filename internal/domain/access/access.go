// Package access decides what a user may do with the data of an event attribute.
package access

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/models"
)

type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

var (
	ErrDenied        = errors.New("insufficient permissions")
	ErrNotOwner      = errors.New("only the author can modify this entry")
	ErrImageDisabled = errors.New("this attribute does not accept images")
)

// PermissionFinder is the part of the store the evaluator reads.
type PermissionFinder interface {
	FindPermission(ctx context.Context, userID, attributeID string) (*models.Permission, error)
}

// Allowed reports whether the flags on p grant op. A nil row grants nothing.
func Allowed(p *models.Permission, op Operation) bool {
	if p == nil {
		return false
	}
	switch op {
	case OpCreate:
		return p.CanCreate
	case OpRead:
		return p.CanRead
	case OpUpdate:
		return p.CanUpdate
	case OpDelete:
		return p.CanDelete
	}
	return false
}

// Evaluator looks the permission row up on every call; decisions are never cached.
type Evaluator struct {
	perms PermissionFinder
}

func NewEvaluator(perms PermissionFinder) *Evaluator {
	return &Evaluator{perms: perms}
}

// Authorize checks op on attributeID for u. Admins pass without a row.
func (e *Evaluator) Authorize(ctx context.Context, u *models.User, op Operation, attributeID string) error {
	if u == nil {
		return ErrDenied
	}
	if u.IsAdmin() {
		return nil
	}

	p, err := e.perms.FindPermission(ctx, u.ID, attributeID)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrDenied
	}
	if err != nil {
		return err
	}

	if !Allowed(p, op) {
		return ErrDenied
	}
	return nil
}

// AuthorizeRow checks update or delete on an existing submission: non-admins
// must be its author and hold the flag on its attribute.
func (e *Evaluator) AuthorizeRow(ctx context.Context, u *models.User, op Operation, row *models.EventData) error {
	if u == nil {
		return ErrNotOwner
	}
	if u.IsAdmin() {
		return nil
	}
	if row.UserID != u.ID {
		return ErrNotOwner
	}
	return e.Authorize(ctx, u, op, row.EventAttributeID)
}

// CheckImage rejects an image on an attribute that does not allow one.
func CheckImage(attr *models.EventAttribute, hasImage bool) error {
	if hasImage && !attr.AllowImage {
		return ErrImageDisabled
	}
	return nil
}
