// Package git provides low-level Git operations.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Running git (or any executable) in a working directory and capturing
//     the outcome as a Result
//   - Read-only state queries (branches, current branch, graph log)
//   - Validating and opening a repository handle
//
// This package should be the only place where external commands are executed.
package git
