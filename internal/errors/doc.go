// Package errors provides typed errors with exit codes for vlsmctl.
//
// # Error Types
//
// PlanError is the base error type that wraps an error with an exit code:
//
//	type PlanError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess         = 0 // Success
//	ExitGeneralError    = 1 // General/unknown errors
//	ExitMalformedPrefix = 2 // Malformed prefix or requirement set
//	ExitInfeasible      = 3 // Requirements do not fit the parent network
//	ExitConfigError     = 4 // Configuration error
//	ExitNotFound        = 5 // Missing plan, profile or address
//
// # Kinds
//
// Two PlanErrors with the same code are the same kind, so the sentinels
// can be matched through any amount of wrapping:
//
//	if errors.Is(err, errors.ErrInfeasible) { ... }
//
// ErrNoPlan and ErrNotFound both exit with ExitNotFound but stay distinct
// kinds: a missing profile never matches ErrNoPlan.
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
