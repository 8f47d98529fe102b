package provider

import (
	"errors"
	"fmt"
)

// ProviderError wraps any failure of an upstream data source. The core never
// retries; the matchup being processed is skipped.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Wrap returns err as a ProviderError, leaving nil and existing
// ProviderErrors untouched.
func Wrap(name, op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsProviderError(err); ok {
		return err
	}
	return &ProviderError{Provider: name, Op: op, Err: err}
}

// AsProviderError attempts to unwrap an error into a ProviderError.
func AsProviderError(err error) (*ProviderError, bool) {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr, true
	}
	return nil, false
}
