package usecase

import (
	"strings"

	"gm-poster/internal/domain"
)

const (
	postPrefix    = "GM-GPT-X: "
	maxPostLength = 280
)

type draftValidationError struct {
	reason string
}

func (e *draftValidationError) Error() string {
	return "usecase: invalid draft: " + e.reason
}

// newDraft trims the model output, removes one wrapping pair of double quotes
// and applies the fixed prefix.
func newDraft(raw string) domain.Draft {
	text := stripWrappingQuotes(strings.TrimSpace(raw))
	return domain.Draft{
		Raw:  raw,
		Text: postPrefix + text,
	}
}

// stripWrappingQuotes removes exactly one leading and one trailing '"' when
// both are present. Inner quotes are left alone.
func stripWrappingQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

func validateDraft(d domain.Draft) error {
	if d.Text == "" {
		return &draftValidationError{reason: "empty_post"}
	}
	if d.Length() > maxPostLength {
		return &draftValidationError{reason: "post_too_long"}
	}
	return nil
}
