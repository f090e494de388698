package domain

import "unicode/utf16"

// Draft is the post text produced for a single invocation. It is never persisted.
type Draft struct {
	Raw  string
	Text string
}

// Length reports the normalized text length in UTF-16 code units, so a
// character outside the Basic Multilingual Plane (most emoji) counts as two.
func (d Draft) Length() int {
	return len(utf16.Encode([]rune(d.Text)))
}
