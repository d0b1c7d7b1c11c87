package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitrinashop/vitrina/internal/domain"
	"github.com/vitrinashop/vitrina/internal/tui/styles"
)

// Omnibar is the global search palette. It fires a suggestion query on
// every keystroke; results arriving for a stale query are dropped by
// comparing against the current input value.
type Omnibar struct {
	input       textinput.Model
	suggestions []domain.Product
	cursor      int

	screenWidth  int
	screenHeight int
	visible      bool
}

// NewOmnibar creates the omnibar component
func NewOmnibar() Omnibar {
	ti := textinput.New()
	ti.Placeholder = "search products..."
	ti.Prompt = "▸ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.CharLimit = 100

	return Omnibar{input: ti}
}

// Show opens the omnibar with an empty query
func (o *Omnibar) Show() {
	o.visible = true
	o.input.SetValue("")
	o.input.Focus()
	o.suggestions = nil
	o.cursor = 0
}

// Hide closes the omnibar
func (o *Omnibar) Hide() {
	o.visible = false
	o.input.Blur()
	o.suggestions = nil
}

// IsVisible returns whether the omnibar is shown
func (o Omnibar) IsVisible() bool {
	return o.visible
}

// SetSize updates the screen dimensions
func (o *Omnibar) SetSize(width, height int) {
	o.screenWidth = width
	o.screenHeight = height
}

// Query returns the current input value
func (o Omnibar) Query() string {
	return o.input.Value()
}

// SetSuggestions installs results for a query. Stale results (query no
// longer matches the input) are ignored.
func (o *Omnibar) SetSuggestions(query string, products []domain.Product) {
	if query != o.input.Value() {
		return
	}
	o.suggestions = products
	if o.cursor >= len(products) {
		o.cursor = 0
	}
}

// Selected returns the highlighted suggestion, nil when none
func (o Omnibar) Selected() *domain.Product {
	if len(o.suggestions) == 0 || o.cursor >= len(o.suggestions) {
		return nil
	}
	return &o.suggestions[o.cursor]
}

// Update handles messages. queryCmd is invoked with the new input value
// whenever it changes.
func (o Omnibar) Update(msg tea.Msg, queryCmd func(query string) tea.Cmd) (Omnibar, tea.Cmd) {
	if !o.visible {
		return o, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "down", "ctrl+n":
			if o.cursor < len(o.suggestions)-1 {
				o.cursor++
			}
			return o, nil
		case "up", "ctrl+p":
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil
		}
	}

	before := o.input.Value()
	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)

	if after := o.input.Value(); after != before {
		o.cursor = 0
		if after == "" {
			o.suggestions = nil
			return o, cmd
		}
		return o, tea.Batch(cmd, queryCmd(after))
	}

	return o, cmd
}

// View renders the omnibar near the top of the screen
func (o Omnibar) View() string {
	if !o.visible {
		return ""
	}

	width := o.screenWidth - 30
	if width > 60 {
		width = 60
	}
	if width < 30 {
		width = 30
	}

	var b strings.Builder
	b.WriteString(o.input.View())
	b.WriteString("\n")

	if len(o.suggestions) > 0 {
		b.WriteString("\n")
		for i, p := range o.suggestions {
			amber := styles.Amber
			dimGray := styles.DimGray
			parts := []styles.RowPart{
				{Text: " " + styles.Truncate(p.Name, width-16), Foreground: nil},
				{Text: " " + p.Price, Foreground: &amber},
				{Text: " " + p.Country, Foreground: &dimGray},
			}
			b.WriteString(styles.RenderListRow(parts, i == o.cursor, width-2))
			b.WriteString("\n")
		}
	} else if o.input.Value() != "" {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(" no matches"))
		b.WriteString("\n")
	}

	box := styles.ModalStyle.Width(width).Render(b.String())

	return lipgloss.Place(o.screenWidth, o.screenHeight,
		lipgloss.Center, 0.15, box,
		lipgloss.WithWhitespaceChars(" "))
}
