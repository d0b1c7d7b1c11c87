package tui

import (
	"github.com/vitrinashop/vitrina/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CatalogLoadedMsg signals that the catalog finished loading. Err is
// non-nil when the load degraded (persisted or empty catalog); the
// products are whatever the store settled on.
type CatalogLoadedMsg struct {
	Products   []domain.Product
	Categories []domain.Category
	Err        error
}

// CategorySelectedMsg signals that a sidebar category was chosen
type CategorySelectedMsg struct {
	Tag string
}

// SuggestionsMsg carries ranked omnibar suggestions
type SuggestionsMsg struct {
	Query    string
	Products []domain.Product
}

// ContactSubmittedMsg signals the outcome of a contact form submission
type ContactSubmittedMsg struct {
	Receipt domain.ContactReceipt
	Err     error
}

// TickMsg is a general tick message for the loading spinner
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message (the toast surface)
type StatusMsg struct {
	Message string
	IsError bool
}

// === Grid reveal (render token) ===

// RevealTickMsg advances the staggered card reveal for one render
// generation. Ticks from a superseded generation are dropped.
type RevealTickMsg struct {
	Gen uint64
}

// RevealSafetyMsg force-clears the render-in-progress flag for a
// generation after a fixed ceiling, in case the reveal chain was
// interrupted.
type RevealSafetyMsg struct {
	Gen uint64
}

// === Rotation session ===

// RotationStartMsg arms a rotation session for the open modal after
// the stabilization delay. The product ID is re-checked against the
// modal before any timer is created (open/close race guard).
type RotationStartMsg struct {
	ProductID string
}

// RotationRestartMsg re-arms a paused session after a manual thumbnail
// jump, once the progress reset transition has settled.
type RotationRestartMsg struct {
	ProductID string
}

// RotationAdvanceMsg is one advance timer firing for an epoch
type RotationAdvanceMsg struct {
	Gen uint64
}

// RotationProgressMsg is one progress timer firing for an epoch
type RotationProgressMsg struct {
	Gen uint64
}
