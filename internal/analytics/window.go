package analytics

import (
	"fmt"
	"strconv"
	"strings"
)

// Window is a trailing-window size. The zero value, All, takes every
// qualifying game; a positive N takes the most recent N.
type Window int

// All selects the full filtered sequence.
const All Window = 0

// Label returns "All" or "L<N>".
func (w Window) Label() string {
	if w <= All {
		return "All"
	}
	return "L" + strconv.Itoa(int(w))
}

func (w Window) String() string {
	return w.Label()
}

// MarshalText encodes the window as its label so JSON output reads "L10".
func (w Window) MarshalText() ([]byte, error) {
	return []byte(w.Label()), nil
}

// UnmarshalText accepts either a label ("All", "L10") or a bare size.
func (w *Window) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if len(s) > 1 && (s[0] == 'L' || s[0] == 'l') {
		s = s[1:]
	}
	parsed, err := ParseWindow(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// ParseWindow parses "all" or a positive integer.
func ParseWindow(s string) (Window, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all" {
		return All, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return All, fmt.Errorf("invalid window %q: want \"all\" or a positive integer", s)
	}
	if n <= 0 {
		return All, fmt.Errorf("invalid window %q: size must be positive", s)
	}
	return Window(n), nil
}

// ParseWindows parses a comma-separated window list such as "all,15,10,5".
func ParseWindows(s string) ([]Window, error) {
	parts := strings.Split(s, ",")
	windows := make([]Window, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		w, err := ParseWindow(p)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("no windows in %q", s)
	}
	return windows, nil
}

// Tail returns the last N elements of seq. For All, or when seq holds fewer
// than N elements, the whole sequence is returned.
func Tail[T any](seq []T, w Window) []T {
	if w <= All || int(w) >= len(seq) {
		return seq
	}
	return seq[len(seq)-int(w):]
}

// Reducer folds a windowed sequence into a single value.
type Reducer[T, V any] func(seq []T) (V, error)

// Aggregate applies reduce to the trailing window of seq. An empty window
// fails with *InsufficientDataError for every reducer.
func Aggregate[T, V any](seq []T, w Window, reduce Reducer[T, V]) (V, error) {
	sub := Tail(seq, w)
	if len(sub) == 0 {
		var zero V
		return zero, &InsufficientDataError{Window: w}
	}
	return reduce(sub)
}
