package feed

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Character caps matching what the composer UI enforces.
const (
	MaxPostLen  = 200
	MaxReplyLen = 280
)

// BannedWords are rejected as case-insensitive substrings anywhere in user
// text. This is the full extent of moderation on the client side.
var BannedWords = []string{"hate", "slur1", "slur2"}

var stripPolicy = bluemonday.StrictPolicy()

// Sanitize strips any HTML from user-entered text and unescapes the result.
// Posts and replies are plain text; markup is never stored.
func Sanitize(text string) string {
	return html.UnescapeString(stripPolicy.Sanitize(text))
}

// ValidationError is a pre-flight rejection of user input. It is raised
// before any network call and never leaves local state changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateDraft checks a new or edited post before submission.
func ValidateDraft(text string, category Category) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if len([]rune(text)) > MaxPostLen {
		return &ValidationError{Field: "text", Reason: fmt.Sprintf("exceeds %d characters", MaxPostLen)}
	}
	if category == "" {
		return &ValidationError{Field: "category", Reason: "must be selected"}
	}
	if !category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", string(category))}
	}
	if word, ok := containsBanned(text); ok {
		return &ValidationError{Field: "text", Reason: fmt.Sprintf("contains flagged word %q", word)}
	}
	return nil
}

// ValidateReply checks reply text before submission.
func ValidateReply(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if len([]rune(text)) > MaxReplyLen {
		return &ValidationError{Field: "text", Reason: fmt.Sprintf("exceeds %d characters", MaxReplyLen)}
	}
	if word, ok := containsBanned(text); ok {
		return &ValidationError{Field: "text", Reason: fmt.Sprintf("contains flagged word %q", word)}
	}
	return nil
}

func containsBanned(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, word := range BannedWords {
		if strings.Contains(lower, word) {
			return word, true
		}
	}
	return "", false
}
