package directory

import "errors"

var (
	// ErrInvalidRecord is returned when a stored tenant document cannot be decoded.
	ErrInvalidRecord = errors.New("directory: invalid tenant record")

	// ErrInvalidConfig is returned by constructors given unusable settings.
	ErrInvalidConfig = errors.New("directory: invalid configuration")
)
