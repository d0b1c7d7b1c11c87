package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitrinashop/vitrina/internal/catalog"
	"github.com/vitrinashop/vitrina/internal/contact"
	"github.com/vitrinashop/vitrina/internal/domain"
	"github.com/vitrinashop/vitrina/internal/rotation"
	"github.com/vitrinashop/vitrina/internal/search"
)

// Command factories for async operations

// LoadCatalogCmd loads the product catalog
func LoadCatalogCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		err := svc.Load(ctx)
		return CatalogLoadedMsg{
			Products:   svc.Products(),
			Categories: svc.Categories(),
			Err:        err,
		}
	}
}

// RefreshCatalogCmd forces a re-fetch, clearing all memoized queries
func RefreshCatalogCmd(svc *catalog.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		err := svc.Refresh(ctx)
		return CatalogLoadedMsg{
			Products:   svc.Products(),
			Categories: svc.Categories(),
			Err:        err,
		}
	}
}

// SuggestCmd ranks omnibar suggestions for a query
func SuggestCmd(svc *search.Service, query string, products []domain.Product) tea.Cmd {
	return func() tea.Msg {
		ranked := svc.Suggest(query, products, 8)
		results := make([]domain.Product, len(ranked))
		for i, s := range ranked {
			results[i] = s.Product
		}
		return SuggestionsMsg{Query: query, Products: results}
	}
}

// SubmitContactCmd submits the contact form
func SubmitContactCmd(svc *contact.Service, msg domain.ContactMessage) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		receipt, err := svc.Submit(ctx, msg)
		return ContactSubmittedMsg{Receipt: receipt, Err: err}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// === Grid reveal ===

// RevealTickCmd schedules the next card reveal for a render generation
func RevealTickCmd(gen uint64, stagger time.Duration) tea.Cmd {
	return tea.Tick(stagger, func(t time.Time) tea.Msg {
		return RevealTickMsg{Gen: gen}
	})
}

// RevealSafetyCmd schedules the force-clear of the render flag
func RevealSafetyCmd(gen uint64, ceiling time.Duration) tea.Cmd {
	return tea.Tick(ceiling, func(t time.Time) tea.Msg {
		return RevealSafetyMsg{Gen: gen}
	})
}

// === Rotation timers ===

// rotationStabilizeDelay is the wait between opening the modal and
// arming the first rotation session.
const rotationStabilizeDelay = 250 * time.Millisecond

// StartRotationCmd schedules the arming of a rotation session for a
// freshly opened modal
func StartRotationCmd(productID string) tea.Cmd {
	return tea.Tick(rotationStabilizeDelay, func(t time.Time) tea.Msg {
		return RotationStartMsg{ProductID: productID}
	})
}

// RestartRotationCmd schedules the session restart after a manual
// thumbnail jump
func RestartRotationCmd(productID string) tea.Cmd {
	return tea.Tick(rotation.RestartDelay, func(t time.Time) tea.Msg {
		return RotationRestartMsg{ProductID: productID}
	})
}

// AdvanceTickCmd arms one advance timer firing for an epoch
func AdvanceTickCmd(gen uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RotationAdvanceMsg{Gen: gen}
	})
}

// ProgressTickCmd arms one progress timer firing for an epoch
func ProgressTickCmd(gen uint64) tea.Cmd {
	return tea.Tick(rotation.ProgressTickEvery, func(t time.Time) tea.Msg {
		return RotationProgressMsg{Gen: gen}
	})
}

// ArmRotationCmd arms both timers of a fresh session epoch together
func ArmRotationCmd(gen uint64, interval time.Duration) tea.Cmd {
	return tea.Batch(
		AdvanceTickCmd(gen, interval),
		ProgressTickCmd(gen),
	)
}
