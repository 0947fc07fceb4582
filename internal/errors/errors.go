package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrNoServer          = errors.New("no server configured")
	ErrServerNotFound    = errors.New("server not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrQueueExhausted    = errors.New("queue exhausted")
	ErrAdvanceInProgress = errors.New("advance already in progress")
	ErrNoStoredSession   = errors.New("no stored playback session")
	ErrNetworkError      = errors.New("network error")
	ErrTimeout           = errors.New("request timeout")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ResolutionError describes a failure to turn a queue item into a playable
// session. The queue cursor is left untouched when one of these occurs.
type ResolutionError struct {
	ItemID string
	Reason string
	Err    error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot play item %s: %s: %v", e.ItemID, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot play item %s: %s", e.ItemID, e.Reason)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ReelError wraps an error with a user-friendly suggestion.
type ReelError struct {
	Err        error
	Suggestion string
}

func (e *ReelError) Error() string {
	return e.Err.Error()
}

func (e *ReelError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &ReelError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already a ReelError with suggestion
	var reelErr *ReelError
	if errors.As(err, &reelErr) && reelErr.Suggestion != "" {
		return reelErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Authentication errors
	if errors.Is(err, ErrNotAuthenticated) || strings.Contains(errStr, "not authenticated") ||
		strings.Contains(errStr, "invalid token") || strings.Contains(errStr, "401") {
		return "Run 'reel servers add' to store credentials for your server"
	}

	// Server selection errors
	if errors.Is(err, ErrNoServer) || strings.Contains(errStr, "no server configured") {
		return "Run 'reel servers add' to register a server, or 'reel servers discover' to find one"
	}

	if errors.Is(err, ErrServerNotFound) || strings.Contains(errStr, "server not found") {
		return "Run 'reel servers list' to see configured servers"
	}

	// Queue errors
	if errors.Is(err, ErrQueueExhausted) {
		return "The queue has no item in that direction. Run 'reel queue' to inspect it"
	}

	if errors.Is(err, ErrNoStoredSession) {
		return "Start playback first with 'reel play <item-id>'"
	}

	// Item errors
	if errors.Is(err, ErrItemNotFound) || strings.Contains(errStr, "404") {
		return "Check the item id; the server does not know it"
	}

	// Network errors
	if errors.Is(err, ErrNetworkError) || errors.Is(err, ErrTimeout) ||
		strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") {
		return "Check your connection and that the server is reachable"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || strings.Contains(errStr, "config") {
		return "Create ~/.reelrc or run 'reel servers add' to get started"
	}

	// Server errors
	if strings.Contains(errStr, "500") || strings.Contains(errStr, "server error") {
		return "The server is having issues. Try again in a moment"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
