package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tatianab/portal-escape/internal/models"
)

// ParseChoice reads a portal choice by first letter. A letter matching the
// start of an offered portal's label wins; otherwise the compass letter is
// used, so "n" still names North when North is labelled "Up".
func ParseChoice(input string, options []PortalOption) (models.Direction, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, models.ErrInvalidDirection
	}
	first, _ := utf8.DecodeRuneInString(s)
	for _, o := range options {
		label, _ := utf8.DecodeRuneInString(o.Entry.Label)
		if label != utf8.RuneError && unicode.ToUpper(label) == unicode.ToUpper(first) {
			return o.Direction, nil
		}
	}
	return models.ParseDirection(s)
}
