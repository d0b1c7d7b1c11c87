package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/vitrinashop/vitrina/internal/domain"
	"github.com/vitrinashop/vitrina/internal/tui/styles"
)

// Layout constants for the grid
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Heading line at top of content area
	HeadingLines = 1

	// Extra safety margin for row width calculations
	RowWidthMargin = 2
)

// Grid is the product catalog browser component. Replacing its content
// is governed by a render token (generation counter): the staggered
// card reveal and its bookkeeping callbacks check the token and become
// no-ops once superseded by a newer SetProducts call.
type Grid struct {
	products []domain.Product

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Heading (active category)
	heading string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into products

	// Render token state
	renderGen        uint64
	revealed         int  // cards faded in so far
	renderInProgress bool

	// Card cache: (product id, first image, width) -> rendered row.
	// Invalidated wholesale when the product list or width changes.
	cardCache map[string]string
}

// NewGrid creates a new grid component
func NewGrid() Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return Grid{
		filterInput: ti,
		cardCache:   make(map[string]string),
	}
}

// SetProducts replaces the grid content under a new render token.
// A reveal still in flight for the previous list becomes a no-op once
// its ticks notice the stale token. Returns the new generation so the
// owner can arm the reveal ticks.
func (g *Grid) SetProducts(products []domain.Product) uint64 {
	g.products = products
	g.cursor = 0
	g.offset = 0
	g.clearFilter()

	// New token supersedes any in-flight reveal.
	g.renderGen++
	g.revealed = 0
	g.renderInProgress = len(products) > 0

	// Product list changed: the card cache is invalid wholesale.
	g.cardCache = make(map[string]string)

	return g.renderGen
}

// RenderGen returns the current render token.
func (g Grid) RenderGen() uint64 { return g.renderGen }

// RenderInProgress reports whether a staggered reveal is running.
func (g Grid) RenderInProgress() bool { return g.renderInProgress }

// Revealed returns the number of cards faded in so far.
func (g Grid) Revealed() int { return g.revealed }

// RevealTick advances the staggered reveal for the given token.
// Returns (applied, done): stale tokens apply nothing, and done reports
// whether every card is now visible.
func (g *Grid) RevealTick(gen uint64) (bool, bool) {
	if gen != g.renderGen {
		// Superseded render: skip the bookkeeping no-ops.
		return false, false
	}
	if g.revealed < len(g.products) {
		g.revealed++
	}
	if g.revealed >= len(g.products) {
		g.renderInProgress = false
		return true, true
	}
	return true, false
}

// RevealSafety force-clears the render-in-progress flag for the given
// token. Covers the case where the reveal chain was interrupted before
// its completion callback ran.
func (g *Grid) RevealSafety(gen uint64) {
	if gen != g.renderGen {
		return
	}
	g.revealed = len(g.products)
	g.renderInProgress = false
}

// CardCacheLen reports the number of cached card templates.
func (g Grid) CardCacheLen() int { return len(g.cardCache) }

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	if width != g.width {
		// Row width changed; every cached card is the wrong size.
		g.cardCache = make(map[string]string)
	}
	g.width = width
	g.height = height
	g.recalcMaxVisible()
}

// SetHeading sets the heading text displayed above the cards
func (g *Grid) SetHeading(heading string) {
	g.heading = heading
}

// recalcMaxVisible accounts for heading, scroll indicators and filter bar
func (g *Grid) recalcMaxVisible() {
	interiorHeight := g.height - BorderHeight
	g.maxVisible = interiorHeight - ScrollIndicatorLines - HeadingLines
	if g.filterActive {
		g.maxVisible--
	}
	if g.maxVisible < 1 {
		g.maxVisible = 1
	}
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// IsFocused returns the focus state
func (g Grid) IsFocused() bool {
	return g.focused
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// itemCount returns the number of items (accounting for filter)
func (g Grid) itemCount() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.products)
}

// SelectedProduct returns the product under the cursor
func (g Grid) SelectedProduct() *domain.Product {
	count := g.itemCount()
	if count == 0 || g.cursor >= count {
		return nil
	}
	idx := g.mapIndex(g.cursor)
	return &g.products[idx]
}

// ensureVisible ensures the cursor is visible
func (g *Grid) ensureVisible() {
	if g.cursor < g.offset {
		g.offset = g.cursor
	}
	if g.cursor >= g.offset+g.maxVisible {
		g.offset = g.cursor - g.maxVisible + 1
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.recalcMaxVisible()
}

// applyFilter filters products based on the current query
func (g *Grid) applyFilter() {
	query := g.filterInput.Value()
	g.filterQuery = query

	if query == "" {
		g.filteredIdx = nil
		return
	}

	names := make([]string, len(g.products))
	for i, p := range g.products {
		names[i] = strings.ToLower(p.Name)
	}

	matches := fuzzy.Find(strings.ToLower(query), names)

	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}

	g.cursor = 0
	g.offset = 0
}

// mapIndex maps a cursor position to the actual index in the data
func (g Grid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// IsEmpty returns true if there are no items
func (g Grid) IsEmpty() bool {
	return g.itemCount() == 0
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Handle filter input when active AND focused (typing mode)
	if g.filterActive && g.filterInput.Focused() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case "backspace":
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil
				}
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	// Filter active but blurred: navigation over filtered results
	if g.filterActive {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "/":
				g.filterInput.Focus()
				return g, nil
			}
		}
	}

	count := g.itemCount()
	if count == 0 {
		return g, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if g.cursor < count-1 {
				g.cursor++
				g.ensureVisible()
			}
		case "k", "up":
			if g.cursor > 0 {
				g.cursor--
				g.ensureVisible()
			}
		case "g":
			g.cursor = 0
			g.offset = 0
		case "G":
			g.cursor = count - 1
			g.ensureVisible()
		case "ctrl+d":
			g.cursor += g.maxVisible / 2
			if g.cursor >= count {
				g.cursor = count - 1
			}
			g.ensureVisible()
		case "ctrl+u":
			g.cursor -= g.maxVisible / 2
			if g.cursor < 0 {
				g.cursor = 0
			}
			g.ensureVisible()
		}
	}

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}

	content := g.renderCards()

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(g.width - frameW).
		Height(g.height - frameH).
		Render(content)
}

// renderCards renders the visible product rows
func (g Grid) renderCards() string {
	rowWidth := g.width - BorderWidth - HorizontalPadding - RowWidthMargin

	headingLine := " "
	if g.heading != "" {
		crumb := g.heading
		if len(crumb) > rowWidth {
			crumb = "..." + crumb[len(crumb)-rowWidth+3:]
		}
		headingLine = styles.AccentStyle.Render(crumb)
	}

	count := g.itemCount()
	if count == 0 {
		// Placeholder instead of cards, per the empty-grid contract.
		emptyMsg := styles.DimStyle.Render("No products found")
		if g.filterActive && g.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := headingLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
		if g.filterActive {
			content += "\n" + g.renderFilterBar()
		}
		return content
	}

	var lines []string

	end := g.offset + g.maxVisible
	if end > count {
		end = count
	}

	for i := g.offset; i < end; i++ {
		selected := i == g.cursor
		idx := g.mapIndex(i)

		// Cards past the reveal frontier stay dim until their stagger
		// tick lands.
		if g.renderInProgress && idx >= g.revealed {
			lines = append(lines, styles.DimStyle.Render(" ·"))
			continue
		}

		lines = append(lines, g.renderCard(g.products[idx], selected, rowWidth))
	}

	header := " "
	if g.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := strings.Join(lines, "\n")
	content = headingLine + "\n" + header + "\n" + content + "\n" + footer

	if g.filterActive {
		content += "\n" + g.renderFilterBar()
	}

	return content
}

// renderCard renders one product row. Unselected rows come from the
// card cache; the selected row is restyled live.
func (g Grid) renderCard(p domain.Product, selected bool, width int) string {
	if !selected {
		key := cardCacheKey(p, width)
		if cached, ok := g.cardCache[key]; ok {
			return cached
		}
		row := renderProductRow(p, false, width)
		g.cardCache[key] = row
		return row
	}
	return renderProductRow(p, true, width)
}

// cardCacheKey builds the (product id, first image, width) cache key
func cardCacheKey(p domain.Product, width int) string {
	return fmt.Sprintf("%s|%s|%d", p.ID, p.PrimaryImage(), width)
}

// renderProductRow builds the row markup for one product
func renderProductRow(p domain.Product, selected bool, width int) string {
	amber := styles.Amber
	dimGray := styles.DimGray

	gallery := " "
	if p.HasGallery() {
		gallery = "▣" // has a rotating gallery
	} else if len(p.Images) == 1 {
		gallery = "□"
	}

	name := styles.Truncate(p.Name, width-24)
	badge := " " + p.Price
	country := ""
	if p.Country != "" {
		country = " · " + p.Country
	}

	parts := []styles.RowPart{
		{Text: gallery, Foreground: &amber},
		{Text: " " + name, Foreground: nil},
		{Text: country, Foreground: &dimGray},
		{Text: badge, Foreground: &amber},
	}

	return styles.RenderListRow(parts, selected, width)
}

// renderFilterBar renders the filter input bar
func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()
	count := g.itemCount()
	total := len(g.products)

	countStr := ""
	if g.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", count, total))
	}

	return input + countStr
}
