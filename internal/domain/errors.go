package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrDuplicateAttribute   = errors.New("an attribute with that name already exists for this event")
	ErrDuplicateAssociation = errors.New("provider already associated with this event")
)
