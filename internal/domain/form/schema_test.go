package form

import (
	"encoding/json"
	"strings"
	"testing"

	"clarityhire/internal/domain/job"
	"clarityhire/internal/domain/question"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func link(t question.Type, required bool, options ...string) job.JobQuestion {
	id := uuid.New()
	return job.JobQuestion{
		QuestionID: id,
		Required:   required,
		Question:   question.Question{ID: id, Question: "q", Type: t, Options: options},
	}
}

func raw(v string) json.RawMessage { return json.RawMessage(v) }

func TestSchema_RequiredTextOptionalCheckbox(t *testing.T) {
	q1 := link(question.TypeText, true)
	q2 := link(question.TypeCheckbox, false, "A", "B")
	s := Build([]job.JobQuestion{q1, q2})

	answers, errs := s.Validate(map[string]json.RawMessage{q1.QuestionID.String(): raw(`"hello"`)})
	require.Empty(t, errs)
	require.Len(t, answers, 2)
	require.Equal(t, []string{"hello"}, answers[0].Values)
	require.Equal(t, q2.QuestionID, answers[1].QuestionID)
	require.Equal(t, []string{}, answers[1].Values)

	_, errs = s.Validate(map[string]json.RawMessage{})
	require.Equal(t, FieldErrors{AnswerPath(q1.QuestionID.String()): MsgRequired}, errs)

	unknown := uuid.NewString()
	_, errs = s.Validate(map[string]json.RawMessage{
		q1.QuestionID.String(): raw(`"hello"`),
		unknown:                raw(`"x"`),
	})
	require.Equal(t, MsgUnrecognized, errs[AnswerPath(unknown)])
}

func TestSchema_UnknownKeyAlwaysRejected(t *testing.T) {
	s := Build(nil)
	_, errs := s.Validate(map[string]json.RawMessage{"Q3": raw(`""`)})
	require.Equal(t, MsgUnrecognized, errs[AnswerPath("Q3")])
}

func TestRules(t *testing.T) {
	cases := []struct {
		name     string
		typ      question.Type
		required bool
		options  []string
		raw      string
		want     []string
		msg      string
	}{
		{"text required empty", question.TypeText, true, nil, `""`, nil, MsgRequired},
		{"text required whitespace kept", question.TypeText, true, nil, `" "`, []string{" "}, ""},
		{"text optional empty", question.TypeText, false, nil, `""`, []string{}, ""},
		{"text missing optional", question.TypeText, false, nil, ``, []string{}, ""},
		{"text wrong shape", question.TypeText, false, nil, `12`, nil, MsgExpectedText},

		{"number json", question.TypeNumber, true, nil, `42`, []string{"42"}, ""},
		{"number string", question.TypeNumber, true, nil, `"3.50"`, []string{"3.5"}, ""},
		{"number required empty", question.TypeNumber, true, nil, `""`, nil, MsgRequired},
		{"number optional empty", question.TypeNumber, false, nil, `""`, []string{}, ""},
		{"number optional non numeric", question.TypeNumber, false, nil, `"abc"`, nil, MsgExpectedNumber},
		{"number required non numeric", question.TypeNumber, true, nil, `"abc"`, nil, MsgExpectedNumber},
		{"number nan", question.TypeNumber, false, nil, `"NaN"`, nil, MsgExpectedNumber},
		{"number bool", question.TypeNumber, false, nil, `true`, nil, MsgExpectedNumber},

		{"bool string", question.TypeTrueOrFalse, true, nil, `"true"`, []string{"true"}, ""},
		{"bool json", question.TypeTrueOrFalse, true, nil, `false`, []string{"false"}, ""},
		{"bool required empty", question.TypeTrueOrFalse, true, nil, `""`, nil, MsgSelection},
		{"bool optional empty", question.TypeTrueOrFalse, false, nil, `""`, []string{}, ""},
		{"bool other", question.TypeTrueOrFalse, false, nil, `"maybe"`, nil, MsgSelection},

		{"choice ok", question.TypeMultipleChoice, true, []string{"Go", "Rust"}, `"Go"`, []string{"Go"}, ""},
		{"choice required empty", question.TypeMultipleChoice, true, []string{"Go"}, `""`, nil, MsgSelection},
		{"choice optional missing", question.TypeMultipleChoice, false, []string{"Go"}, ``, []string{}, ""},
		{"choice undeclared", question.TypeMultipleChoice, false, []string{"Go"}, `"C"`, nil, MsgInvalidOption},

		{"checkbox ok", question.TypeCheckbox, true, []string{"A", "B"}, `["B","A"]`, []string{"B", "A"}, ""},
		{"checkbox required empty", question.TypeCheckbox, true, []string{"A"}, `[]`, nil, MsgAtLeastOne},
		{"checkbox optional empty", question.TypeCheckbox, false, []string{"A"}, `[]`, []string{}, ""},
		{"checkbox duplicate", question.TypeCheckbox, false, []string{"A"}, `["A","A"]`, nil, MsgDuplicate},
		{"checkbox undeclared", question.TypeCheckbox, false, []string{"A"}, `["Z"]`, nil, MsgInvalidOption},
		{"checkbox scalar", question.TypeCheckbox, false, []string{"A"}, `"A"`, nil, MsgExpectedList},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := link(tc.typ, tc.required, tc.options...)
			s := Build([]job.JobQuestion{l})

			in := map[string]json.RawMessage{}
			if tc.raw != "" {
				in[l.QuestionID.String()] = raw(tc.raw)
			}

			answers, errs := s.Validate(in)
			if tc.msg != "" {
				require.Equal(t, tc.msg, errs[AnswerPath(l.QuestionID.String())])
				require.Nil(t, answers)
				return
			}
			require.Empty(t, errs)
			require.Len(t, answers, 1)
			require.Equal(t, tc.want, answers[0].Values)
		})
	}
}

func TestSchema_AggregatesAllFieldErrors(t *testing.T) {
	a := link(question.TypeText, true)
	b := link(question.TypeNumber, false)
	s := Build([]job.JobQuestion{a, b})

	_, errs := s.Validate(map[string]json.RawMessage{b.QuestionID.String(): raw(`"x"`)})
	require.Len(t, errs, 2)
	require.Equal(t, MsgRequired, errs[AnswerPath(a.QuestionID.String())])
	require.Equal(t, MsgExpectedNumber, errs[AnswerPath(b.QuestionID.String())])
}

func TestSchema_BuiltPerJob(t *testing.T) {
	a := link(question.TypeText, true)
	b := link(question.TypeText, true)

	sa := Build([]job.JobQuestion{a})
	sb := Build([]job.JobQuestion{b})

	_, errs := sb.Validate(map[string]json.RawMessage{a.QuestionID.String(): raw(`"x"`)})
	require.Equal(t, MsgUnrecognized, errs[AnswerPath(a.QuestionID.String())])

	_, errs = sa.Validate(map[string]json.RawMessage{a.QuestionID.String(): raw(`"x"`)})
	require.Empty(t, errs)
}

func TestSchema_CaseVariantKeysAreRejectedDeterministically(t *testing.T) {
	id := uuid.MustParse("bf4f60f9-3c2a-4e1d-9a7b-0c5d2e8f1a6b")
	q := job.JobQuestion{
		QuestionID: id,
		Required:   true,
		Question:   question.Question{ID: id, Question: "q", Type: question.TypeText},
	}
	s := Build([]job.JobQuestion{q})
	lower := id.String()
	upper := strings.ToUpper(lower)

	for i := 0; i < 200; i++ {
		answers, errs := s.Validate(map[string]json.RawMessage{
			lower: raw(`""`),
			upper: raw(`"hello"`),
		})
		require.Nil(t, answers)
		require.Equal(t, FieldErrors{AnswerPath(lower): MsgDuplicateKey}, errs)
	}
}

func TestSchema_UpperCaseKeyAloneIsAccepted(t *testing.T) {
	q := link(question.TypeText, true)
	s := Build([]job.JobQuestion{q})

	answers, errs := s.Validate(map[string]json.RawMessage{strings.ToUpper(q.QuestionID.String()): raw(`"hello"`)})
	require.Empty(t, errs)
	require.Equal(t, []string{"hello"}, answers[0].Values)
}
