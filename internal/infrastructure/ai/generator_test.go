package ai

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	replies []string
	errs    []error
	calls   atomic.Int32
}

func (m *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	i := int(m.calls.Add(1)) - 1
	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	reply := ""
	if i < len(m.replies) {
		reply = m.replies[i]
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestGenerator_TextRetriesTransientFailure(t *testing.T) {
	m := &fakeModel{
		errs:    []error{errors.New("unavailable"), nil},
		replies: []string{"", "  A great role.  "},
	}
	g := NewWithModel(m, 600, nil)

	out, err := g.Text(context.Background(), "p", 100)
	require.NoError(t, err)
	require.Equal(t, "A great role.", out)
	require.EqualValues(t, 2, m.calls.Load())
}

func TestGenerator_DisabledWithoutModel(t *testing.T) {
	var g *Generator
	_, err := g.Text(context.Background(), "p", 10)
	require.ErrorIs(t, err, ErrDisabled)
}

func TestGenerator_ListParsesFencedJSON(t *testing.T) {
	m := &fakeModel{replies: []string{"```json\n[\"Ship features\", \" \", \"Review code\"]\n```"}}
	g := NewWithModel(m, 600, nil)

	items, err := g.List(context.Background(), "p", 100)
	require.NoError(t, err)
	require.Equal(t, []string{"Ship features", "Review code"}, items)
}

func TestParseList_Rejects(t *testing.T) {
	_, err := ParseList("here you go: one, two")
	require.ErrorIs(t, err, ErrBadListFormat)
}

func TestPrompts(t *testing.T) {
	p := SummaryPrompt(SummaryInput{JobTitle: "Backend Engineer", Skills: []string{"Go", "SQL"}})
	require.Contains(t, p, `"Backend Engineer"`)
	require.Contains(t, p, "Key skills: Go, SQL")
	require.NotContains(t, p, "Department")

	p = ListPrompt(ListInput{FieldName: FieldQualifications, JobTitle: "Designer"})
	require.Contains(t, p, "qualifications")
	require.Contains(t, p, "JSON array")
}
