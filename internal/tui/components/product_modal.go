package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vitrinashop/vitrina/internal/domain"
	"github.com/vitrinashop/vitrina/internal/tui/styles"
)

// ProductModal displays a single product with its image gallery. The
// gallery position and progress are owned by the rotation controller;
// the modal only renders what it is told via SetGallery.
type ProductModal struct {
	product *domain.Product

	// Gallery display state, pushed in by the owner
	activeIndex int
	progress    float64
	rotating    bool

	// Screen dimensions (the modal centers itself)
	screenWidth  int
	screenHeight int

	visible bool
	hovered bool
}

// NewProductModal creates the modal component
func NewProductModal() ProductModal {
	return ProductModal{}
}

// Open shows the modal for a product, gallery reset to the first image
func (m *ProductModal) Open(p *domain.Product) {
	m.product = p
	m.activeIndex = 0
	m.progress = 0
	m.rotating = false
	m.visible = true
	m.hovered = false
}

// Close hides the modal and drops the product reference
func (m *ProductModal) Close() {
	m.visible = false
	m.product = nil
	m.hovered = false
}

// IsVisible returns whether the modal is shown
func (m ProductModal) IsVisible() bool {
	return m.visible
}

// Product returns the displayed product, nil when closed
func (m ProductModal) Product() *domain.Product {
	if !m.visible {
		return nil
	}
	return m.product
}

// ProductID returns the displayed product's ID, "" when closed. Used
// by the open/close race guard before arming rotation timers.
func (m ProductModal) ProductID() string {
	if !m.visible || m.product == nil {
		return ""
	}
	return m.product.ID
}

// SetGallery updates the displayed image index and progress percentage
func (m *ProductModal) SetGallery(index int, progress float64, rotating bool) {
	m.activeIndex = index
	m.progress = progress
	m.rotating = rotating
}

// ActiveIndex returns the currently displayed image index
func (m ProductModal) ActiveIndex() int {
	return m.activeIndex
}

// SetSize updates the screen dimensions
func (m *ProductModal) SetSize(width, height int) {
	m.screenWidth = width
	m.screenHeight = height
}

// SetHovered records whether the pointer is over the modal
func (m *ProductModal) SetHovered(hovered bool) {
	m.hovered = hovered
}

// IsHovered reports whether the pointer is over the modal
func (m ProductModal) IsHovered() bool {
	return m.hovered
}

// modalWidth computes the modal interior width
func (m ProductModal) modalWidth() int {
	w := m.screenWidth - 20
	if w > 64 {
		w = 64
	}
	if w < 30 {
		w = 30
	}
	return w
}

// modalHeight estimates the rendered modal height including frame
func (m ProductModal) modalHeight() int {
	if m.product == nil {
		return 0
	}
	// title + image pane + thumbs + progress + fields + description
	h := 14 + len(wrapText(m.product.Description, m.modalWidth()-4))
	if h > m.screenHeight-2 {
		h = m.screenHeight - 2
	}
	return h
}

// Contains hit-tests screen coordinates against the centered modal
// rect. The gallery pauses while the pointer is inside.
func (m ProductModal) Contains(x, y int) bool {
	if !m.visible {
		return false
	}
	w := m.modalWidth() + 6 // frame + padding
	h := m.modalHeight()
	left := (m.screenWidth - w) / 2
	top := (m.screenHeight - h) / 2
	return x >= left && x < left+w && y >= top && y < top+h
}

// ThumbAt maps screen coordinates to a thumbnail index, -1 when the
// click lands outside the strip
func (m ProductModal) ThumbAt(x, y int) int {
	if !m.visible || m.product == nil || !m.product.HasGallery() {
		return -1
	}
	w := m.modalWidth() + 6
	h := m.modalHeight()
	left := (m.screenWidth - w) / 2
	top := (m.screenHeight - h) / 2

	// Thumb strip sits on a fixed row inside the modal: border(1) +
	// padding(1) + title(2) + image pane(5)
	stripRow := top + 9
	if y != stripRow {
		return -1
	}

	// Each thumb is rendered as " N " with a space between
	col := x - left - 3
	if col < 0 {
		return -1
	}
	idx := col / 4
	if idx >= len(m.product.Images) {
		return -1
	}
	return idx
}

// View renders the modal centered on the screen
func (m ProductModal) View() string {
	if !m.visible || m.product == nil {
		return ""
	}

	p := m.product
	width := m.modalWidth()

	var b strings.Builder

	b.WriteString(styles.ModalTitleStyle.Render(p.Name))
	b.WriteString("\n")

	b.WriteString(m.renderImagePane(width))
	b.WriteString("\n")

	if p.HasGallery() {
		b.WriteString(m.renderThumbStrip())
		b.WriteString("\n")
		b.WriteString(m.renderProgress(width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentStyle.Render(p.Price))
	if p.Country != "" {
		b.WriteString(styles.DimStyle.Render("  ·  " + p.Country))
	}
	if p.Category != "" {
		b.WriteString("  " + styles.DimBadgeStyle.Render(p.Category))
	}
	b.WriteString("\n\n")

	for _, line := range wrapText(p.Description, width-4) {
		b.WriteString(styles.SubtitleStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpKeyStyle.Render("←/→") + styles.HelpDescStyle.Render(" image  "))
	b.WriteString(styles.HelpKeyStyle.Render("space") + styles.HelpDescStyle.Render(" pause  "))
	b.WriteString(styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" close"))

	modal := styles.ModalStyle.Width(width).Render(b.String())

	return lipgloss.Place(m.screenWidth, m.screenHeight,
		lipgloss.Center, lipgloss.Center, modal)
}

// renderImagePane draws the placeholder pane for the active image.
// Terminal cells can't show the picture; the pane names the asset.
func (m ProductModal) renderImagePane(width int) string {
	p := m.product

	label := "no image"
	if img := p.PrimaryImage(); img != "" {
		idx := m.activeIndex
		if idx >= len(p.Images) {
			idx = 0
		}
		label = p.Images[idx]
	}

	counter := ""
	if p.HasGallery() {
		counter = fmt.Sprintf(" %d/%d", m.activeIndex+1, len(p.Images))
	}

	pane := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(styles.SlateLight).
		Width(width - 4).
		Height(3).
		Align(lipgloss.Center, lipgloss.Center)

	return pane.Render(styles.DimStyle.Render("▨ "+label) + styles.AccentStyle.Render(counter))
}

// renderThumbStrip draws one numbered cell per image, active highlighted
func (m ProductModal) renderThumbStrip() string {
	var cells []string
	for i := range m.product.Images {
		label := fmt.Sprintf("%d", i+1)
		if i == m.activeIndex {
			cells = append(cells, styles.ThumbActiveStyle.Render(label))
		} else {
			cells = append(cells, styles.ThumbStyle.Render(label))
		}
	}
	return " " + strings.Join(cells, " ")
}

// renderProgress draws the auto-advance progress bar
func (m ProductModal) renderProgress(width int) string {
	bar := styles.RenderProgressBar(m.progress, width-10)

	state := "      "
	if !m.rotating {
		state = styles.DimStyle.Render(" ⏸")
	}
	return " " + bar + state
}

// wrapText wraps text at word boundaries to the given width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 10
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) <= width {
			current += " " + word
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	lines = append(lines, current)
	return lines
}
