package session

import (
	"context"
	"errors"
	"time"
)

// ErrBack is returned by UI selection methods when the player backs out of
// a cancellable selection.
var ErrBack = errors.New("selection cancelled")

// Severity classifies transient messages.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
)

// ListOptions constrains a multi-selection.
type ListOptions struct {
	Prompt string

	// Min and Max bound how many entries may be picked.
	Min int
	Max int

	// AllowBack permits cancelling the selection with ErrBack. Forced
	// interstitials (drop, steal, lose-skills) leave this false.
	AllowBack bool
}

// UI is the presentation port. The core never draws or reads a device
// directly; sessions run against any implementation of this interface,
// which is also what makes the controller testable without a connection.
type UI interface {
	// ShowText displays a block of story text.
	ShowText(text string) error

	// ShowMessage surfaces a transient status line, e.g. a choice denial.
	// The duration is a hint; implementations may ignore it.
	ShowMessage(text string, sev Severity, d time.Duration) error

	// PresentChoices shows a numbered menu and returns the selected index.
	// Returns ErrBack when allowBack is set and the player cancels.
	PresentChoices(ctx context.Context, prompt string, options []string, allowBack bool) (int, error)

	// PresentList shows a multi-select over options subject to the
	// constraints, returning the selected indexes.
	PresentList(ctx context.Context, options []string, opts ListOptions) ([]int, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, prompt string) (bool, error)
}
