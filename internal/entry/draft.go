package entry

import "time"

// MaxDescriptionLength is the longest description, in characters, a draft holds.
const MaxDescriptionLength = 100

// Draft is the unsaved state of one entry form.
type Draft struct {
	Kind        Kind
	Category    string
	Amount      string
	Description string
	Date        time.Time
}

// NewDraft returns an empty draft dated at the moment the form opened.
func NewDraft(kind Kind, openedAt time.Time) Draft {
	return Draft{Kind: kind, Date: openedAt}
}

func (d *Draft) SelectCategory(id string) {
	d.Category = id
}

// EditAmount applies raw amount keystrokes, truncating them to
// MaxAmountInputLength before normalizing.
func (d *Draft) EditAmount(raw string) {
	d.Amount = NormalizeAmount(truncateRunes(raw, MaxAmountInputLength))
}

// EditDescription stores text as typed, truncated to MaxDescriptionLength.
func (d *Draft) EditDescription(text string) {
	d.Description = truncateRunes(text, MaxDescriptionLength)
}

func (d *Draft) SetDate(date time.Time) {
	d.Date = date
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
