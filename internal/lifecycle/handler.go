// Package lifecycle wraps command execution with timing and a completion
// callback. It has no dependencies and starts no goroutines.
package lifecycle

import "time"

// Observer is told when a wrapped command finishes.
type Observer interface {
	// OnCommandComplete receives the command name, whether it returned
	// without error, and how long it ran.
	OnCommandComplete(name string, success bool, duration time.Duration)
}

// Run executes fn and reports its outcome to observer. A nil observer only
// runs fn. The error from fn is returned unchanged.
func Run(observer Observer, name string, fn func() error) error {
	if observer == nil {
		return fn()
	}

	start := time.Now()
	err := fn()
	observer.OnCommandComplete(name, err == nil, time.Since(start))
	return err
}
