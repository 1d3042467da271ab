package question

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeText           Type = "TEXT"
	TypeNumber         Type = "NUMBER"
	TypeTrueOrFalse    Type = "TRUE_OR_FALSE"
	TypeMultipleChoice Type = "MULTIPLE_CHOICE"
	TypeCheckbox       Type = "CHECKBOX"
)

var labels = map[Type]string{
	TypeText:           "Text Input",
	TypeNumber:         "Number Input",
	TypeTrueOrFalse:    "True / False",
	TypeMultipleChoice: "Multiple Choice",
	TypeCheckbox:       "Checkbox (Select multiple)",
}

func ParseType(s string) (Type, bool) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := labels[t]
	return t, ok
}

func (t Type) Valid() bool {
	_, ok := labels[t]
	return ok
}

// HasOptions reports whether answers to this type are picked from Options.
func (t Type) HasOptions() bool {
	return t == TypeMultipleChoice || t == TypeCheckbox
}

func (t Type) Label() string {
	return labels[t]
}

type Question struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Question  string
	Type      Type
	Options   []string
	CreatedAt time.Time
}

// HasOption reports whether v is one of the declared options.
func (q Question) HasOption(v string) bool {
	for _, o := range q.Options {
		if o == v {
			return true
		}
	}
	return false
}

// NormalizeOptions trims, drops blanks and de-duplicates options, keeping the
// first occurrence order. Types without options always get an empty list.
func NormalizeOptions(t Type, options []string) []string {
	out := make([]string, 0, len(options))
	if !t.HasOptions() {
		return out
	}
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}
