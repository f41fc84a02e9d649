package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors, surfaced as 400-class responses
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	// Lookup errors, surfaced as 404-class responses
	ErrTrackNotFound    = fmt.Errorf("track not found")
	ErrGenreNotFound    = fmt.Errorf("genre not found")
	ErrSubGenreNotFound = fmt.Errorf("sub-genre not found")

	// Storage and aggregation errors, surfaced as 500-class responses.
	// Detail is logged server-side, never echoed to clients.
	ErrDataAccess = fmt.Errorf("data access failed")

	// External catalog API errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
)
