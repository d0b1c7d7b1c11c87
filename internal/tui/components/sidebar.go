package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitrinashop/vitrina/internal/domain"
	"github.com/vitrinashop/vitrina/internal/tui/styles"
)

// Sidebar lists product categories with counts. Exactly one category
// is active at any time; selecting one filters the grid.
type Sidebar struct {
	categories []domain.Category

	cursor  int
	active  int // index of the applied category
	width   int
	height  int
	focused bool
}

// NewSidebar creates the sidebar component
func NewSidebar() Sidebar {
	return Sidebar{}
}

// SetCategories replaces the category list, keeping "All" active
func (s *Sidebar) SetCategories(categories []domain.Category) {
	s.categories = categories
	s.cursor = 0
	s.active = 0
}

// SetSize updates the component dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s Sidebar) IsFocused() bool {
	return s.focused
}

// SelectTag marks the category with the given tag active, reporting
// whether it exists. Used to restore the last session's category.
func (s *Sidebar) SelectTag(tag string) bool {
	for i, c := range s.categories {
		if c.Tag == tag {
			s.active = i
			s.cursor = i
			return true
		}
	}
	return false
}

// ActiveCategory returns the applied category tag
func (s Sidebar) ActiveCategory() string {
	if len(s.categories) == 0 || s.active >= len(s.categories) {
		return domain.CategoryAll
	}
	return s.categories[s.active].Tag
}

// ActiveName returns the applied category display name
func (s Sidebar) ActiveName() string {
	if len(s.categories) == 0 || s.active >= len(s.categories) {
		return "All"
	}
	return s.categories[s.active].Name
}

// Update handles messages. Selecting a category emits
// CategorySelectedMsg via the returned command.
func (s Sidebar) Update(msg tea.Msg, selectCmd func(tag string) tea.Cmd) (Sidebar, tea.Cmd) {
	if !s.focused || len(s.categories) == 0 {
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if s.cursor < len(s.categories)-1 {
				s.cursor++
			}
		case "k", "up":
			if s.cursor > 0 {
				s.cursor--
			}
		case "g":
			s.cursor = 0
		case "G":
			s.cursor = len(s.categories) - 1
		case "enter":
			if s.cursor == s.active {
				// Re-selecting the active category is a no-op.
				return s, nil
			}
			s.active = s.cursor
			return s, selectCmd(s.categories[s.cursor].Tag)
		}
	}

	return s, nil
}

// View renders the component
func (s Sidebar) View() string {
	style := styles.InactiveBorder
	if s.focused {
		style = styles.ActiveBorder
	}

	var lines []string
	lines = append(lines, styles.TitleStyle.Render(" Categories"))
	lines = append(lines, "")

	rowWidth := s.width - BorderWidth - HorizontalPadding

	for i, cat := range s.categories {
		marker := "  "
		if i == s.active {
			marker = styles.AccentStyle.Render("● ")
		}

		label := fmt.Sprintf("%s (%d)", cat.Name, cat.Count)
		label = styles.Truncate(label, rowWidth-4)

		amber := styles.Amber
		var parts []styles.RowPart
		if i == s.active {
			parts = []styles.RowPart{
				{Text: marker + label, Foreground: &amber},
			}
		} else {
			parts = []styles.RowPart{
				{Text: marker + label, Foreground: nil},
			}
		}

		lines = append(lines, styles.RenderListRow(parts, i == s.cursor && s.focused, rowWidth))
	}

	content := strings.Join(lines, "\n")

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(s.width - frameW).
		Height(s.height - frameH).
		Render(content)
}
