package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type fakeGenerator struct {
	enabled bool
	text    string
	list    []string
	err     error
	prompts []string
}

func (g *fakeGenerator) Enabled() bool { return g.enabled }
func (g *fakeGenerator) Text(_ context.Context, prompt string, _ int) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}
func (g *fakeGenerator) List(_ context.Context, prompt string, _ int) ([]string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.list, g.err
}

func TestJobAssist_Summary(t *testing.T) {
	gen := &fakeGenerator{enabled: true, text: "A role."}
	uc := NewJobAssistUsecase(gen, nil)
	s := recruiterFor(uuid.New())

	out, err := uc.GenerateSummary(context.Background(), s, GenerateSummaryInput{JobTitle: "Designer", Location: "Paris"})
	if err != nil || out != "A role." {
		t.Fatalf("unexpected result %q %v", out, err)
	}
	if !strings.Contains(gen.prompts[0], "Location: Paris") {
		t.Fatalf("expected location in prompt")
	}

	_, err = uc.GenerateSummary(context.Background(), s, GenerateSummaryInput{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestJobAssist_List(t *testing.T) {
	gen := &fakeGenerator{enabled: true, list: []string{"One", "Two"}}
	uc := NewJobAssistUsecase(gen, nil)
	s := recruiterFor(uuid.New())

	items, err := uc.GenerateList(context.Background(), s, GenerateListInput{FieldName: "Responsibilities", JobTitle: "PM"})
	if err != nil || len(items) != 2 {
		t.Fatalf("unexpected result %v %v", items, err)
	}

	_, err = uc.GenerateList(context.Background(), s, GenerateListInput{FieldName: "perks", JobTitle: "PM"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields["fieldName"] == "" {
		t.Fatalf("expected fieldName error, got %v", err)
	}

	gen.err = errBoom
	if _, err := uc.GenerateList(context.Background(), s, GenerateListInput{FieldName: "qualifications", JobTitle: "PM"}); !errors.Is(err, ErrAIUnavailable) {
		t.Fatalf("expected ErrAIUnavailable, got %v", err)
	}
}

func TestJobAssist_Disabled(t *testing.T) {
	uc := NewJobAssistUsecase(&fakeGenerator{}, nil)
	if _, err := uc.GenerateSummary(context.Background(), recruiterFor(uuid.New()), GenerateSummaryInput{JobTitle: "X"}); !errors.Is(err, ErrAIUnavailable) {
		t.Fatalf("expected ErrAIUnavailable, got %v", err)
	}
	if _, err := uc.GenerateSummary(context.Background(), Session{}, GenerateSummaryInput{JobTitle: "X"}); !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
}
