package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitrinashop/vitrina/internal/catalog"
	"github.com/vitrinashop/vitrina/internal/config"
	"github.com/vitrinashop/vitrina/internal/contact"
	"github.com/vitrinashop/vitrina/internal/domain"
	"github.com/vitrinashop/vitrina/internal/rotation"
	"github.com/vitrinashop/vitrina/internal/search"
	"github.com/vitrinashop/vitrina/internal/tui/components"
	"github.com/vitrinashop/vitrina/internal/tui/styles"
)

// focusPane identifies which main pane has keyboard focus
type focusPane int

const (
	focusSidebar focusPane = iota
	focusGrid
)

const (
	sidebarWidth    = 26
	statusBarHeight = 1
	spinnerTick     = 100 * time.Millisecond
	statusLinger    = 4 * time.Second

	// lastCategoryKey is the kv slot remembering the applied category
	// across runs.
	lastCategoryKey = "last_category"
)

// Model is the root Bubble Tea model
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	catalogSvc *catalog.Service
	searchSvc  *search.Service
	contactSvc *contact.Service
	rotator    *rotation.Controller
	store      domain.CatalogStore // may be nil

	keys    KeyMap
	sidebar components.Sidebar
	grid    components.Grid
	modal   components.ProductModal
	form    components.ContactForm
	omnibar components.Omnibar

	focus  focusPane
	width  int
	height int

	loading      bool
	spinnerFrame int

	status        string
	statusIsError bool

	revealStagger time.Duration
}

// NewModel creates the root model
func NewModel(cfg *config.Config, catalogSvc *catalog.Service, searchSvc *search.Service,
	contactSvc *contact.Service, rotator *rotation.Controller, st domain.CatalogStore,
	logger *slog.Logger) Model {

	if logger == nil {
		logger = slog.Default()
	}

	grid := components.NewGrid()
	grid.SetFocused(true)
	grid.SetHeading("All")

	return Model{
		cfg:           cfg,
		logger:        logger,
		catalogSvc:    catalogSvc,
		searchSvc:     searchSvc,
		contactSvc:    contactSvc,
		rotator:       rotator,
		store:         st,
		keys:          DefaultKeyMap(),
		sidebar:       components.NewSidebar(),
		grid:          grid,
		modal:         components.NewProductModal(),
		form:          components.NewContactForm(),
		omnibar:       components.NewOmnibar(),
		focus:         focusGrid,
		loading:       true,
		revealStagger: time.Duration(cfg.UI.RevealStaggerMS) * time.Millisecond,
	}
}

// Init starts the catalog load and the loading spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadCatalogCmd(m.catalogSvc),
		TickCmd(spinnerTick),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case TickMsg:
		if m.loading {
			m.spinnerFrame = (m.spinnerFrame + 1) % len(styles.SpinnerFrames)
			return m, TickCmd(spinnerTick)
		}
		return m, nil

	case CatalogLoadedMsg:
		return m.handleCatalogLoaded(msg)

	case CategorySelectedMsg:
		return m.applyCategory(msg.Tag)

	case SuggestionsMsg:
		m.omnibar.SetSuggestions(msg.Query, msg.Products)
		return m, nil

	case ContactSubmittedMsg:
		return m.handleContactSubmitted(msg)

	case StatusMsg:
		m.status = msg.Message
		m.statusIsError = msg.IsError
		return m, ClearStatusCmd(statusLinger)

	case ClearStatusMsg:
		m.status = ""
		m.statusIsError = false
		return m, nil

	case RevealTickMsg:
		if applied, done := m.grid.RevealTick(msg.Gen); applied && !done {
			return m, RevealTickCmd(msg.Gen, m.revealStagger)
		}
		return m, nil

	case RevealSafetyMsg:
		m.grid.RevealSafety(msg.Gen)
		return m, nil

	case RotationStartMsg:
		return m.handleRotationStart(msg)

	case RotationRestartMsg:
		return m.handleRotationRestart(msg)

	case RotationAdvanceMsg:
		if m.rotator.AdvanceTick(msg.Gen) {
			m.syncGallery(true)
			return m, AdvanceTickCmd(msg.Gen, m.rotator.Interval())
		}
		return m, nil

	case RotationProgressMsg:
		if m.rotator.ProgressTick(msg.Gen) {
			m.syncGallery(true)
			return m, ProgressTickCmd(msg.Gen)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	paneHeight := m.height - statusBarHeight
	m.sidebar.SetSize(sidebarWidth, paneHeight)
	m.grid.SetSize(m.width-sidebarWidth, paneHeight)
	m.modal.SetSize(m.width, m.height)
	m.form.SetSize(m.width, m.height)
	m.omnibar.SetSize(m.width, m.height)
	return m
}

func (m Model) handleCatalogLoaded(msg CatalogLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	m.sidebar.SetCategories(msg.Categories)

	// Restore the last session's category when it still exists.
	products := msg.Products
	if m.store != nil {
		if tag, ok := m.store.GetValue(lastCategoryKey); ok && m.sidebar.SelectTag(tag) {
			products = m.catalogSvc.FilterByCategory(tag)
		}
	}

	gen := m.grid.SetProducts(products)
	m.grid.SetHeading(m.sidebar.ActiveName())

	cmds := []tea.Cmd{m.armReveal(gen, len(products))}

	if msg.Err != nil {
		m.logger.Warn("catalog load degraded", "error", msg.Err)
		text := "Catalog unavailable, showing saved products"
		if len(msg.Products) == 0 {
			text = "Catalog unavailable"
		}
		cmds = append(cmds, func() tea.Msg {
			return StatusMsg{Message: text, IsError: true}
		})
	}

	return m, tea.Batch(cmds...)
}

// armReveal starts the staggered card reveal for a render generation,
// plus a safety tick that force-clears the render flag if the chain is
// interrupted.
func (m *Model) armReveal(gen uint64, count int) tea.Cmd {
	if count == 0 {
		return nil
	}
	if m.revealStagger <= 0 {
		m.grid.RevealSafety(gen)
		return nil
	}
	ceiling := m.revealStagger*time.Duration(count) + 2*time.Second
	return tea.Batch(
		RevealTickCmd(gen, m.revealStagger),
		RevealSafetyCmd(gen, ceiling),
	)
}

func (m Model) applyCategory(tag string) (tea.Model, tea.Cmd) {
	if m.store != nil {
		if err := m.store.SetValue(lastCategoryKey, tag); err != nil {
			m.logger.Warn("failed to remember category", "error", err)
		}
	}

	products := m.catalogSvc.FilterByCategory(tag)
	gen := m.grid.SetProducts(products)
	m.grid.SetHeading(m.sidebar.ActiveName())

	m.focus = focusGrid
	m.sidebar.SetFocused(false)
	m.grid.SetFocused(true)

	return m, m.armReveal(gen, len(products))
}

func (m Model) handleContactSubmitted(msg ContactSubmittedMsg) (tea.Model, tea.Cmd) {
	m.form.SetSubmitting(false)

	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrInvalidContact) {
			m.form.SetProblems([]string{msg.Err.Error()})
			return m, nil
		}
		m.logger.Error("contact submission failed", "error", msg.Err)
		m.status = "Could not send message"
		m.statusIsError = true
		return m, ClearStatusCmd(statusLinger)
	}

	m.form.Hide()
	m.status = "Message sent, thank you!"
	m.statusIsError = false
	return m, ClearStatusCmd(statusLinger)
}

// handleRotationStart arms the session scheduled when the modal opened.
// The product is re-checked: if the modal closed or switched products
// during the stabilization delay, no timers are created.
func (m Model) handleRotationStart(msg RotationStartMsg) (tea.Model, tea.Cmd) {
	if m.modal.ProductID() != msg.ProductID {
		return m, nil
	}
	p := m.modal.Product()
	gen, ok := m.rotator.Start(p.Images, m.modal.ActiveIndex())
	if !ok {
		return m, nil
	}
	m.syncGallery(true)
	return m, ArmRotationCmd(gen, m.rotator.Interval())
}

// handleRotationRestart resumes a session paused by a manual thumbnail
// jump, with the same product re-check as the initial start.
func (m Model) handleRotationRestart(msg RotationRestartMsg) (tea.Model, tea.Cmd) {
	if m.modal.ProductID() != msg.ProductID || m.modal.IsHovered() {
		return m, nil
	}
	gen, ok := m.rotator.Resume()
	if !ok {
		return m, nil
	}
	m.syncGallery(true)
	return m, ArmRotationCmd(gen, m.rotator.Interval())
}

// syncGallery pushes the controller's display state into the modal
func (m *Model) syncGallery(rotating bool) {
	m.modal.SetGallery(m.rotator.Index(), m.rotator.Progress(), rotating)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.modal.IsVisible() {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		inside := m.modal.Contains(msg.X, msg.Y)
		if inside && !m.modal.IsHovered() {
			m.modal.SetHovered(true)
			m.rotator.Pause()
			m.syncGallery(false)
		} else if !inside && m.modal.IsHovered() {
			m.modal.SetHovered(false)
			if gen, ok := m.rotator.Resume(); ok {
				m.syncGallery(true)
				return m, ArmRotationCmd(gen, m.rotator.Interval())
			}
		}

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if idx := m.modal.ThumbAt(msg.X, msg.Y); idx >= 0 {
			return m.jumpToImage(idx)
		}
	}

	return m, nil
}

// jumpToImage selects a gallery image manually and schedules the
// session restart after the reset transition settles
func (m Model) jumpToImage(idx int) (tea.Model, tea.Cmd) {
	if !m.rotator.JumpTo(idx) {
		return m, nil
	}
	m.syncGallery(false)
	return m, RestartRotationCmd(m.modal.ProductID())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays swallow input in priority order: omnibar, form, modal.
	if m.omnibar.IsVisible() {
		return m.handleOmnibarKey(msg)
	}
	if m.form.IsVisible() {
		return m.handleFormKey(msg)
	}
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	typing := m.grid.IsFilterTyping()

	if !typing {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Search):
			m.omnibar.Show()
			return m, nil
		case key.Matches(msg, m.keys.Contact):
			m.form.Show()
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if !m.loading {
				m.loading = true
				return m, tea.Batch(RefreshCatalogCmd(m.catalogSvc), TickCmd(spinnerTick))
			}
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			return m.switchFocus(), nil
		case key.Matches(msg, m.keys.Filter):
			if m.focus == focusGrid && !m.grid.IsFiltering() {
				m.grid.ToggleFilter()
				return m, nil
			}
		case key.Matches(msg, m.keys.Select):
			if m.focus == focusGrid {
				return m.openProduct()
			}
		}
	} else if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Route to the focused pane.
	var cmd tea.Cmd
	switch m.focus {
	case focusSidebar:
		m.sidebar, cmd = m.sidebar.Update(msg, func(tag string) tea.Cmd {
			return func() tea.Msg { return CategorySelectedMsg{Tag: tag} }
		})
	case focusGrid:
		m.grid, cmd = m.grid.Update(msg)
	}
	return m, cmd
}

func (m Model) handleOmnibarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.omnibar.Hide()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		p := m.omnibar.Selected()
		m.omnibar.Hide()
		if p != nil {
			return m.openModalFor(p)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.omnibar, cmd = m.omnibar.Update(msg, func(query string) tea.Cmd {
		return SuggestCmd(m.searchSvc, query, m.catalogSvc.Products())
	})
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		m.form.Hide()
		return m, nil
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case m.form.WantsSubmit(msg):
		contactMsg := m.form.Message()
		if problems := contactMsg.Validate(); len(problems) > 0 {
			m.form.SetProblems(problems)
			return m, nil
		}
		m.form.SetProblems(nil)
		m.form.SetSubmitting(true)
		return m, SubmitContactCmd(m.contactSvc, contactMsg)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.modal.Product()

	switch {
	case key.Matches(msg, m.keys.Back) || msg.String() == "q":
		return m.closeModal(), nil
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextImg):
		if p != nil && p.HasGallery() {
			return m.jumpToImage((m.modal.ActiveIndex() + 1) % len(p.Images))
		}
	case key.Matches(msg, m.keys.PrevImg):
		if p != nil && p.HasGallery() {
			return m.jumpToImage((m.modal.ActiveIndex() + len(p.Images) - 1) % len(p.Images))
		}
	case key.Matches(msg, m.keys.Pause):
		return m.togglePause()
	}

	return m, nil
}

func (m Model) togglePause() (tea.Model, tea.Cmd) {
	switch m.rotator.State() {
	case rotation.StateRunning:
		m.rotator.Pause()
		m.syncGallery(false)
	case rotation.StatePaused:
		if gen, ok := m.rotator.Resume(); ok {
			m.syncGallery(true)
			return m, ArmRotationCmd(gen, m.rotator.Interval())
		}
	}
	return m, nil
}

// openProduct opens the modal for the product under the grid cursor
func (m Model) openProduct() (tea.Model, tea.Cmd) {
	p := m.grid.SelectedProduct()
	if p == nil {
		return m, nil
	}
	return m.openModalFor(p)
}

// openModalFor shows the modal and, for multi-image products, schedules
// the rotation session after the stabilization delay
func (m Model) openModalFor(p *domain.Product) (tea.Model, tea.Cmd) {
	m.modal.Open(p)
	if p.HasGallery() && m.rotator.Enabled() {
		return m, StartRotationCmd(p.ID)
	}
	return m, nil
}

// closeModal stops the rotation session and hides the modal
func (m Model) closeModal() Model {
	m.rotator.Stop()
	m.modal.Close()
	return m
}

func (m Model) switchFocus() Model {
	if m.focus == focusSidebar {
		m.focus = focusGrid
	} else {
		m.focus = focusSidebar
	}
	m.sidebar.SetFocused(m.focus == focusSidebar)
	m.grid.SetFocused(m.focus == focusGrid)
	return m
}

// View renders the application
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	if m.loading {
		spinner := styles.AccentStyle.Render(styles.SpinnerFrames[m.spinnerFrame])
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			spinner+" Loading catalog...")
	}

	// Overlays take the whole screen.
	if m.omnibar.IsVisible() {
		return m.omnibar.View()
	}
	if m.form.IsVisible() {
		return m.form.View()
	}
	if m.modal.IsVisible() {
		return m.modal.View()
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.grid.View())

	return panes + "\n" + m.renderStatusBar()
}

// renderStatusBar renders the bottom help/status line
func (m Model) renderStatusBar() string {
	if m.status != "" {
		style := styles.SuccessStyle
		if m.statusIsError {
			style = styles.ErrorStyle
		}
		return " " + style.Render(m.status)
	}

	help := fmt.Sprintf(" %s %s  %s %s  %s %s  %s %s  %s %s  %s %s",
		styles.HelpKeyStyle.Render("tab"), styles.HelpDescStyle.Render("pane"),
		styles.HelpKeyStyle.Render("enter"), styles.HelpDescStyle.Render("open"),
		styles.HelpKeyStyle.Render("/"), styles.HelpDescStyle.Render("filter"),
		styles.HelpKeyStyle.Render("ctrl+k"), styles.HelpDescStyle.Render("search"),
		styles.HelpKeyStyle.Render("c"), styles.HelpDescStyle.Render("contact"),
		styles.HelpKeyStyle.Render("q"), styles.HelpDescStyle.Render("quit"))
	return help
}
