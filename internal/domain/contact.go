package domain

import "strings"

// ContactMessage is one contact-form submission.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate returns the list of field-level problems, empty when the
// message is acceptable.
func (c ContactMessage) Validate() []string {
	var problems []string
	if strings.TrimSpace(c.Name) == "" {
		problems = append(problems, "name is required")
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		problems = append(problems, "email is required")
	} else if !looksLikeEmail(email) {
		problems = append(problems, "email looks invalid")
	}
	if len(strings.TrimSpace(c.Message)) < 10 {
		problems = append(problems, "message must be at least 10 characters")
	}
	return problems
}

// looksLikeEmail is a cheap structural check, not RFC validation.
func looksLikeEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	dot := strings.LastIndexByte(s[at:], '.')
	return dot > 1 && at+dot < len(s)-1
}

// ContactReceipt confirms a submission.
type ContactReceipt struct {
	ID string // Assigned submission identifier
}
