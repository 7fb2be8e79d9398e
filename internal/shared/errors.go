package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Structural errors
	ErrNotFound      = fmt.Errorf("collection not found")
	ErrDuplicateName = fmt.Errorf("collection name already exists")
	ErrCycleDetected = fmt.Errorf("move would create a cycle")
	ErrSelfParent    = fmt.Errorf("collection cannot be its own parent")

	// Access errors
	ErrUnauthorized = fmt.Errorf("owner does not match resource")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
