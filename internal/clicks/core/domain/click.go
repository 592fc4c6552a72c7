package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxAgentLength bounds the stored user agent, in characters.
const MaxAgentLength = 512

var (
	ErrValidation = errors.New("validation error")
	ErrStorage    = errors.New("storage error")

	ErrInvalidCategory = fmt.Errorf("%w: category must be A|B|C|D", ErrValidation)
)

type Category string

const (
	CategoryA Category = "A"
	CategoryB Category = "B"
	CategoryC Category = "C"
	CategoryD Category = "D"
)

// Categories is the closed category domain in tie-break order.
var Categories = [...]Category{CategoryA, CategoryB, CategoryC, CategoryD}

func (c Category) Valid() bool {
	switch c {
	case CategoryA, CategoryB, CategoryC, CategoryD:
		return true
	}
	return false
}

// ParseCategory upper-cases raw and checks it against the category domain.
// Surrounding whitespace is not stripped: " a " is rejected.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToUpper(raw))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

type ClickEvent struct {
	ID            int64
	Category      Category
	SourceAddress string
	AgentString   string
	OccurredAt    time.Time
}

// NewClick is the input to ClickStorePort.Append. A zero OccurredAt lets
// the store assign its current time.
type NewClick struct {
	Category      Category
	SourceAddress string
	AgentString   string
	OccurredAt    time.Time
}

// TruncateAgent cuts s to MaxAgentLength characters without splitting a rune.
func TruncateAgent(s string) string {
	if utf8.RuneCountInString(s) <= MaxAgentLength {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxAgentLength {
			return s[:i]
		}
		n++
	}
	return s
}
