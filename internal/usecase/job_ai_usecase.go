package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"clarityhire/internal/infrastructure/ai"
)

type GenerateSummaryInput struct {
	JobTitle        string   `json:"jobTitle"`
	Department      string   `json:"department"`
	ExperienceLevel string   `json:"experienceLevel"`
	JobType         string   `json:"jobType"`
	Location        string   `json:"location"`
	Skills          []string `json:"skills"`
}

type GenerateListInput struct {
	FieldName       string `json:"fieldName"`
	JobTitle        string `json:"jobTitle"`
	Summary         string `json:"summary"`
	ExperienceLevel string `json:"experienceLevel"`
	JobType         string `json:"jobType"`
}

type textGenerator interface {
	Enabled() bool
	Text(ctx context.Context, prompt string, maxTokens int) (string, error)
	List(ctx context.Context, prompt string, maxTokens int) ([]string, error)
}

type JobAssistUsecase interface {
	GenerateSummary(ctx context.Context, s Session, in GenerateSummaryInput) (string, error)
	GenerateList(ctx context.Context, s Session, in GenerateListInput) ([]string, error)
}

type JobAssist struct {
	gen    textGenerator
	logger *log.Logger
}

func NewJobAssistUsecase(gen textGenerator, logger *log.Logger) *JobAssist {
	return &JobAssist{gen: gen, logger: logger}
}

func (u *JobAssist) GenerateSummary(ctx context.Context, s Session, in GenerateSummaryInput) (string, error) {
	if _, err := s.RecruiterCompany(); err != nil {
		return "", err
	}
	if strings.TrimSpace(in.JobTitle) == "" {
		return "", NewValidationError(map[string]string{"jobTitle": "Job title is required to generate a summary."})
	}
	if u.gen == nil || !u.gen.Enabled() {
		return "", ErrAIUnavailable
	}

	out, err := u.gen.Text(ctx, ai.SummaryPrompt(ai.SummaryInput{
		JobTitle:        in.JobTitle,
		Department:      in.Department,
		ExperienceLevel: in.ExperienceLevel,
		JobType:         in.JobType,
		Location:        in.Location,
		Skills:          in.Skills,
	}), 400)
	if err != nil {
		u.logf("[AI] summary failed | title=%q err=%v", in.JobTitle, err)
		return "", ErrAIUnavailable
	}
	return out, nil
}

func (u *JobAssist) GenerateList(ctx context.Context, s Session, in GenerateListInput) ([]string, error) {
	if _, err := s.RecruiterCompany(); err != nil {
		return nil, err
	}

	fields := map[string]string{}
	field := strings.ToLower(strings.TrimSpace(in.FieldName))
	if field != ai.FieldQualifications && field != ai.FieldResponsibilities {
		fields["fieldName"] = "Field must be qualifications or responsibilities."
	}
	if strings.TrimSpace(in.JobTitle) == "" {
		fields["jobTitle"] = "Job title is required."
	}
	if len(fields) > 0 {
		return nil, NewValidationError(fields)
	}
	if u.gen == nil || !u.gen.Enabled() {
		return nil, ErrAIUnavailable
	}

	items, err := u.gen.List(ctx, ai.ListPrompt(ai.ListInput{
		FieldName:       field,
		JobTitle:        in.JobTitle,
		Summary:         in.Summary,
		ExperienceLevel: in.ExperienceLevel,
		JobType:         in.JobType,
	}), 600)
	if err != nil {
		if errors.Is(err, ai.ErrBadListFormat) {
			u.logf("[AI] unparseable list | field=%s err=%v", field, err)
		} else {
			u.logf("[AI] list failed | field=%s err=%v", field, err)
		}
		return nil, ErrAIUnavailable
	}
	return items, nil
}

func (u *JobAssist) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
