package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vitrinashop/vitrina/internal/domain"
	"github.com/vitrinashop/vitrina/internal/tui/styles"
)

// field indices for the contact form
const (
	fieldName = iota
	fieldEmail
	fieldMessage
	fieldCount
)

// ContactForm is the modal contact form. Validation problems are shown
// inline; the owner performs the actual submission.
type ContactForm struct {
	inputs  []textinput.Model
	focused int

	problems   []string
	submitting bool

	screenWidth  int
	screenHeight int
	visible      bool
}

// NewContactForm creates the contact form component
func NewContactForm() ContactForm {
	inputs := make([]textinput.Model, fieldCount)

	name := textinput.New()
	name.Placeholder = "Your name"
	name.Prompt = "Name    "
	name.PromptStyle = styles.DimStyle
	name.CharLimit = 80
	inputs[fieldName] = name

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email   "
	email.PromptStyle = styles.DimStyle
	email.CharLimit = 120
	inputs[fieldEmail] = email

	message := textinput.New()
	message.Placeholder = "What can we help with? (10 chars minimum)"
	message.Prompt = "Message "
	message.PromptStyle = styles.DimStyle
	message.CharLimit = 500
	inputs[fieldMessage] = message

	return ContactForm{inputs: inputs}
}

// Show opens the form with empty fields
func (f *ContactForm) Show() {
	f.visible = true
	f.focused = fieldName
	f.problems = nil
	f.submitting = false
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.inputs[fieldName].Focus()
}

// Hide closes the form
func (f *ContactForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsVisible returns whether the form is shown
func (f ContactForm) IsVisible() bool {
	return f.visible
}

// SetSize updates the screen dimensions
func (f *ContactForm) SetSize(width, height int) {
	f.screenWidth = width
	f.screenHeight = height
}

// SetSubmitting toggles the in-flight indicator
func (f *ContactForm) SetSubmitting(submitting bool) {
	f.submitting = submitting
}

// SetProblems displays validation problems
func (f *ContactForm) SetProblems(problems []string) {
	f.problems = problems
}

// Message builds the contact message from the current field values
func (f ContactForm) Message() domain.ContactMessage {
	return domain.ContactMessage{
		Name:    strings.TrimSpace(f.inputs[fieldName].Value()),
		Email:   strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Message: strings.TrimSpace(f.inputs[fieldMessage].Value()),
	}
}

// WantsSubmit reports whether the given key should submit the form
// (enter on the last field)
func (f ContactForm) WantsSubmit(msg tea.KeyMsg) bool {
	return f.visible && msg.String() == "enter" && f.focused == fieldMessage
}

// Update handles messages while the form is visible
func (f ContactForm) Update(msg tea.Msg) (ContactForm, tea.Cmd) {
	if !f.visible || f.submitting {
		return f, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "enter":
			if msg.String() == "enter" && f.focused == fieldMessage {
				// Submission is handled by the owner via WantsSubmit
				return f, nil
			}
			f.focusField((f.focused + 1) % fieldCount)
			return f, nil
		case "shift+tab":
			f.focusField((f.focused + fieldCount - 1) % fieldCount)
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

func (f *ContactForm) focusField(idx int) {
	f.inputs[f.focused].Blur()
	f.focused = idx
	f.inputs[f.focused].Focus()
}

// View renders the form centered on the screen
func (f ContactForm) View() string {
	if !f.visible {
		return ""
	}

	width := f.screenWidth - 24
	if width > 56 {
		width = 56
	}
	if width < 32 {
		width = 32
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Contact Us"))
	b.WriteString("\n")

	for i := range f.inputs {
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}

	for _, p := range f.problems {
		b.WriteString(styles.ErrorStyle.Render("✗ " + p))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if f.submitting {
		b.WriteString(styles.DimStyle.Render("Sending..."))
	} else {
		b.WriteString(styles.HelpKeyStyle.Render("tab") + styles.HelpDescStyle.Render(" next field  "))
		b.WriteString(styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" send  "))
		b.WriteString(styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" cancel"))
	}

	modal := styles.ModalStyle.Width(width).Render(b.String())

	return lipgloss.Place(f.screenWidth, f.screenHeight,
		lipgloss.Center, lipgloss.Center, modal)
}
