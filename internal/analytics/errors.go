package analytics

import (
	"errors"
	"fmt"
)

// ErrInsufficientData matches any InsufficientDataError via errors.Is.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError reports a window with zero eligible games.
type InsufficientDataError struct {
	Subject string
	Window  Window
}

func (e *InsufficientDataError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("insufficient data: no eligible games in window %s", e.Window)
	}
	return fmt.Sprintf("insufficient data for %s: no eligible games in window %s", e.Subject, e.Window)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// withSubject names what was being computed when err is an
// InsufficientDataError; other errors pass through unchanged.
func withSubject(err error, subject string) error {
	var ide *InsufficientDataError
	if errors.As(err, &ide) && ide.Subject == "" {
		return &InsufficientDataError{Subject: subject, Window: ide.Window}
	}
	return err
}
