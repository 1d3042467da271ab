// Package form builds per-job validators for application answers.
package form

import (
	"encoding/json"
	"sort"
	"strings"

	"clarityhire/internal/domain/job"
	"clarityhire/internal/domain/question"

	"github.com/google/uuid"
)

// FieldErrors maps a field path to a human readable message.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = msg
}

// Keys returns the field paths in sorted order.
func (f FieldErrors) Keys() []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AnswersField is the path prefix used for per-question errors.
const AnswersField = "answers"

func AnswerPath(questionID string) string {
	return AnswersField + "." + questionID
}

// Answer is a validated answer in storage form.
type Answer struct {
	QuestionID uuid.UUID
	Values     []string
}

type entry struct {
	link job.JobQuestion
	rule rule
}

// AnswersSchema validates an answers mapping against one job's questions.
// Build a fresh schema per job.
type AnswersSchema struct {
	entries []entry
	byID    map[string]int
}

// Build composes the schema for the given links. Links whose question type has
// no rule are skipped.
func Build(links []job.JobQuestion) *AnswersSchema {
	s := &AnswersSchema{
		entries: make([]entry, 0, len(links)),
		byID:    make(map[string]int, len(links)),
	}
	for _, l := range links {
		r, ok := rules[l.Question.Type]
		if !ok {
			continue
		}
		id := l.QuestionID
		if id == uuid.Nil {
			id = l.Question.ID
		}
		l.QuestionID = id
		s.byID[id.String()] = len(s.entries)
		s.entries = append(s.entries, entry{link: l, rule: r})
	}
	return s
}

func (s *AnswersSchema) Len() int {
	return len(s.entries)
}

// Validate checks raw answers and returns one Answer per question, in job
// order. Missing keys are the empty value for their type; unknown keys fail.
func (s *AnswersSchema) Validate(raw map[string]json.RawMessage) ([]Answer, FieldErrors) {
	errs := FieldErrors{}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Keys that differ only in case name the same question; the first in
	// sorted order is used and the rest are rejected.
	normalized := make(map[string]json.RawMessage, len(raw))
	for _, key := range keys {
		idx, ok := s.lookup(key)
		if !ok {
			errs.Add(AnswerPath(key), MsgUnrecognized)
			continue
		}
		id := s.entries[idx].link.QuestionID.String()
		if _, dup := normalized[id]; dup {
			errs.Add(AnswerPath(key), MsgDuplicateKey)
			continue
		}
		normalized[id] = raw[key]
	}

	out := make([]Answer, 0, len(s.entries))
	for _, e := range s.entries {
		id := e.link.QuestionID.String()
		values, msg := e.rule(e.link.Question, e.link.Required, normalized[id])
		if msg != "" {
			errs.Add(AnswerPath(id), msg)
			continue
		}
		out = append(out, Answer{QuestionID: e.link.QuestionID, Values: values})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (s *AnswersSchema) lookup(key string) (int, bool) {
	if idx, ok := s.byID[key]; ok {
		return idx, true
	}
	// ids may arrive upper-cased from some clients
	idx, ok := s.byID[strings.ToLower(key)]
	return idx, ok
}

// QuestionTypes lists the types that have a rule.
func QuestionTypes() []question.Type {
	out := make([]question.Type, 0, len(rules))
	for t := range rules {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
