package form

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"clarityhire/internal/domain/question"
)

const (
	MsgRequired       = "This field is required."
	MsgSelection      = "Please make a selection."
	MsgAtLeastOne     = "Please select at least one option."
	MsgExpectedNumber = "Expected a number."
	MsgExpectedText   = "Expected text."
	MsgInvalidOption  = "Invalid option selected."
	MsgExpectedList   = "Expected a list of options."
	MsgDuplicate      = "Options must not repeat."
	MsgUnrecognized   = "Unrecognized question."
	MsgDuplicateKey   = "Duplicate answer for question."
)

// rule decodes one raw answer for a question and returns its storage form.
// A nil or JSON null raw value is the empty value for the type.
type rule func(q question.Question, required bool, raw json.RawMessage) ([]string, string)

var rules = map[question.Type]rule{
	question.TypeText:           textRule,
	question.TypeNumber:         numberRule,
	question.TypeTrueOrFalse:    trueOrFalseRule,
	question.TypeMultipleChoice: multipleChoiceRule,
	question.TypeCheckbox:       checkboxRule,
}

func isEmptyRaw(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func decodeString(raw json.RawMessage) (string, bool) {
	if isEmptyRaw(raw) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func scalar(v string) []string {
	if v == "" {
		return []string{}
	}
	return []string{v}
}

func textRule(_ question.Question, required bool, raw json.RawMessage) ([]string, string) {
	s, ok := decodeString(raw)
	if !ok {
		return nil, MsgExpectedText
	}
	if required && s == "" {
		return nil, MsgRequired
	}
	return scalar(s), ""
}

func numberRule(_ question.Question, required bool, raw json.RawMessage) ([]string, string) {
	var text string
	t := bytes.TrimSpace(raw)
	switch {
	case isEmptyRaw(raw):
	case t[0] == '"':
		s, ok := decodeString(raw)
		if !ok {
			return nil, MsgExpectedNumber
		}
		text = strings.TrimSpace(s)
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, MsgExpectedNumber
		}
		text = n.String()
	}

	if text == "" {
		if required {
			return nil, MsgRequired
		}
		return []string{}, ""
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, MsgExpectedNumber
	}
	return []string{strconv.FormatFloat(v, 'f', -1, 64)}, ""
}

func trueOrFalseRule(_ question.Question, required bool, raw json.RawMessage) ([]string, string) {
	var s string
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil && !isEmptyRaw(raw) {
		s = strconv.FormatBool(b)
	} else {
		var ok bool
		if s, ok = decodeString(raw); !ok {
			return nil, MsgSelection
		}
	}

	switch s {
	case "":
		if required {
			return nil, MsgSelection
		}
		return []string{}, ""
	case "true", "false":
		return []string{s}, ""
	default:
		return nil, MsgSelection
	}
}

func multipleChoiceRule(q question.Question, required bool, raw json.RawMessage) ([]string, string) {
	s, ok := decodeString(raw)
	if !ok {
		return nil, MsgSelection
	}
	if s == "" {
		if required {
			return nil, MsgSelection
		}
		return []string{}, ""
	}
	if !q.HasOption(s) {
		return nil, MsgInvalidOption
	}
	return []string{s}, ""
}

func checkboxRule(q question.Question, required bool, raw json.RawMessage) ([]string, string) {
	var picked []string
	if !isEmptyRaw(raw) {
		if err := json.Unmarshal(raw, &picked); err != nil {
			return nil, MsgExpectedList
		}
	}

	if len(picked) == 0 {
		if required {
			return nil, MsgAtLeastOne
		}
		return []string{}, ""
	}

	seen := make(map[string]struct{}, len(picked))
	for _, p := range picked {
		if !q.HasOption(p) {
			return nil, MsgInvalidOption
		}
		if _, dup := seen[p]; dup {
			return nil, MsgDuplicate
		}
		seen[p] = struct{}{}
	}
	return picked, ""
}
