package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"blogapi/internal/exception"
	"blogapi/internal/model"
)

const (
	commentContentMin = 8
	commentContentMax = 1000

	articleTitleMin   = 8
	articleTitleMax   = 255
	articleContentMin = 32
	articleContentMax = 32000

	maxPageLimit = 100
)

// Validator accumulates field errors and reports them as one
// exception.InvalidData so a client sees every problem at once.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// checkLength counts characters, not bytes, so multibyte content is
// measured the same way the binding-tag validation measures it.
func checkLength(fields map[string]string, name, value string, min, max int) {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < min {
		fields[name] = fmt.Sprintf("must be at least %d characters", min)
		return
	}
	if n > max {
		fields[name] = fmt.Sprintf("must be at most %d characters", max)
	}
}

func (v *Validator) ValidateCommentContent(content string) error {
	fields := make(map[string]string)
	checkLength(fields, "content", content, commentContentMin, commentContentMax)
	if len(fields) > 0 {
		return exception.InvalidData(fields)
	}
	return nil
}

func (v *Validator) ValidateArticle(title, content string) error {
	fields := make(map[string]string)
	checkLength(fields, "title", title, articleTitleMin, articleTitleMax)
	checkLength(fields, "content", content, articleContentMin, articleContentMax)
	if len(fields) > 0 {
		return exception.InvalidData(fields)
	}
	return nil
}

// ValidatePagination normalizes limit and offset. Out-of-range values are
// rejected rather than clamped so callers learn about bad requests.
func (v *Validator) ValidatePagination(limit, offset int) error {
	fields := make(map[string]string)
	if limit < 1 || limit > maxPageLimit {
		fields["limit"] = fmt.Sprintf("must be between 1 and %d", maxPageLimit)
	}
	if offset < 0 {
		fields["offset"] = "must not be negative"
	}
	if len(fields) > 0 {
		return exception.InvalidData(fields)
	}
	return nil
}

func (v *Validator) ValidateRateState(state string) error {
	switch model.RateState(state) {
	case model.RateStateLike, model.RateStateNeutral:
		return nil
	}
	return exception.InvalidData(map[string]string{
		"state": fmt.Sprintf("must be %q or %q", model.RateStateLike, model.RateStateNeutral),
	})
}
