package errs

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMissingTenant marks tenant-scoped calls made without a tenant.
	ErrMissingTenant = errors.New("missing tenant")
)
