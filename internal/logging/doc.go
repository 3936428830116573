// Package logging provides logging utilities for vlsmctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("derived bit widths", "prefix", prefix, "bits", bits)
//	logging.Warn("skipping invalid profile", "file", file, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Loading profile %s...", name)
//	logging.UserSuccess("Planned %d subnets in %s", n, prefix)
//	logging.UserWarning("Utilization %.0f%% leaves no room to grow", pct)
//	logging.UserError("Plan failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: Stdout (os.Stdout unless redirected)
//   - UserWarning, UserError: Stderr (os.Stderr unless redirected)
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
