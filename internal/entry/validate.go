package entry

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Rule names the check a draft failed.
type Rule string

const (
	RuleCategory    Rule = "category"
	RuleAmount      Rule = "amount"
	RuleDescription Rule = "description"
	RuleSession     Rule = "session"
)

// ValidationError is a rejected submission. Message is safe to show to the user.
type ValidationError struct {
	Rule    Rule
	Message string
}

func (e *ValidationError) Error() string {
	return "entry: " + string(e.Rule) + ": " + e.Message
}

var (
	ErrCategoryRequired    = &ValidationError{Rule: RuleCategory, Message: "Select a category"}
	ErrUnknownCategory     = &ValidationError{Rule: RuleCategory, Message: "Select a category from the list"}
	ErrInvalidAmount       = &ValidationError{Rule: RuleAmount, Message: "Enter a valid amount"}
	ErrDescriptionRequired = &ValidationError{Rule: RuleDescription, Message: "Enter a description"}
	ErrDescriptionTooLong  = &ValidationError{Rule: RuleDescription, Message: "Description must be at most 100 characters"}
	ErrUnauthenticated     = &ValidationError{Rule: RuleSession, Message: "User is not authenticated"}
)

// Session is the authenticated user as seen by the workflow.
type Session struct {
	UserID string
}

// Payload is the create-transaction request handed to the persistence collaborator.
type Payload struct {
	Type        Kind
	Category    string
	Amount      string
	Description string
	Date        time.Time
}

// Validate runs the submission checks in order and reports the first failure:
// category, amount, description, then session. On success it returns the
// normalized payload.
func Validate(cfg KindConfig, draft Draft, session *Session) (Payload, error) {
	if draft.Category == "" {
		return Payload{}, ErrCategoryRequired
	}
	if !cfg.HasCategory(draft.Category) {
		return Payload{}, ErrUnknownCategory
	}

	amount, ok := parseAmount(draft.Amount)
	if !ok {
		return Payload{}, ErrInvalidAmount
	}

	description := strings.TrimSpace(draft.Description)
	if description == "" {
		return Payload{}, ErrDescriptionRequired
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return Payload{}, ErrDescriptionTooLong
	}

	if session == nil || session.UserID == "" {
		return Payload{}, ErrUnauthenticated
	}

	return Payload{
		Type:        cfg.Kind,
		Category:    draft.Category,
		Amount:      amount.StringFixed(2),
		Description: description,
		Date:        draft.Date,
	}, nil
}
