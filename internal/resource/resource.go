// Package resource reports whether an input the pipeline depends on (a data
// file, the query definition or the store itself) is available.
package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// State is the outcome of checking a resource.
type State int

const (
	// StateFound means the resource exists and can be used.
	StateFound State = iota
	// StateMissing means the resource does not exist.
	StateMissing
	// StateFailed means the resource could not be checked or is unusable.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateFound:
		return "found"
	case StateMissing:
		return "missing"
	default:
		return "failed"
	}
}

// Result is the tagged outcome of a resource check. Err is set only when
// State is StateFailed.
type Result struct {
	State State
	Path  string
	Err   error
}

// Found returns a found result for path.
func Found(path string) Result {
	return Result{State: StateFound, Path: path}
}

// Missing returns a missing result for path.
func Missing(path string) Result {
	return Result{State: StateMissing, Path: path}
}

// Failed returns a failed result for path carrying err.
func Failed(path string, err error) Result {
	return Result{State: StateFailed, Path: path, Err: err}
}

// OK reports whether the resource was found.
func (r Result) OK() bool {
	return r.State == StateFound
}

// Describe explains a missing or failed result; it is empty when found.
func (r Result) Describe() string {
	switch r.State {
	case StateFound:
		return ""
	case StateMissing:
		return fmt.Sprintf("%s: not found", r.Path)
	default:
		return fmt.Sprintf("%s: %v", r.Path, r.Err)
	}
}

// Check inspects a file on disk. Regular files are found, absent paths are
// missing, and directories or stat failures are failed.
func Check(path string) Result {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Missing(path)
	case err != nil:
		return Failed(path, err)
	case info.IsDir():
		return Failed(path, fmt.Errorf("is a directory"))
	}
	return Found(path)
}
