package tenant

import "errors"

var (
	// ErrTenantNotFound is returned by a Directory when no tenant matches.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrNoTenant is returned by accessors when resolution ended without a tenant.
	ErrNoTenant = errors.New("no tenant in context")

	// ErrInactiveTenant is returned when trying to use an inactive tenant.
	ErrInactiveTenant = errors.New("tenant is inactive")

	// ErrNilDirectory is returned when a resolver is built without a directory.
	ErrNilDirectory = errors.New("tenant directory is required")

	// ErrNilNormalizer is returned when a resolver is built without a normalizer.
	ErrNilNormalizer = errors.New("tenant normalizer is required")

	// ErrNilParser is returned when the parser chain contains a nil parser.
	ErrNilParser = errors.New("tenant parser chain contains a nil parser")

	// ErrInvalidPattern is returned when a host or path pattern cannot be used.
	ErrInvalidPattern = errors.New("invalid tenant pattern")

	// ErrInvalidParserSpec is returned when a declarative parser spec is malformed.
	ErrInvalidParserSpec = errors.New("invalid parser spec")
)
