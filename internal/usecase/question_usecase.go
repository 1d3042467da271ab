package usecase

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"clarityhire/internal/domain/question"
	"clarityhire/internal/infrastructure/cache"
	"clarityhire/internal/repository"

	"github.com/google/uuid"
)

type CreateQuestionInput struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
}

type QuestionUsecase interface {
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]question.Question, error)
	Create(ctx context.Context, s Session, in CreateQuestionInput) (question.Question, error)
}

type Questions struct {
	questions repository.QuestionRepository
	cache     Cache
	logger    *log.Logger
}

func NewQuestionUsecase(questions repository.QuestionRepository, c Cache, logger *log.Logger) *Questions {
	return &Questions{questions: questions, cache: cacheOrNoop(c), logger: logger}
}

// ListByCompany returns the catalog oldest first.
func (u *Questions) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]question.Question, error) {
	key := cache.QuestionsKey(companyID)

	var cached []question.Question
	if ok, _ := u.cache.GetJSON(ctx, key, &cached); ok {
		return cached, nil
	}

	items, err := u.questions.ListByCompany(ctx, companyID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Question] list failed | company_id=%s err=%v", companyID, err)
		}
		return nil, ErrInternal
	}
	_ = u.cache.SetJSON(ctx, key, items, 0)
	return items, nil
}

func (u *Questions) Create(ctx context.Context, s Session, in CreateQuestionInput) (question.Question, error) {
	companyID, err := s.RecruiterCompany()
	if err != nil {
		return question.Question{}, err
	}

	fields := map[string]string{}
	text := strings.TrimSpace(in.Question)
	switch n := utf8.RuneCountInString(text); {
	case n == 0:
		fields["question"] = "This field is required."
	case n < 6:
		fields["question"] = "Question must be at least 6 characters."
	case n > 200:
		fields["question"] = "Question must be at most 200 characters."
	}

	typ, ok := question.ParseType(in.Type)
	if !ok {
		fields["type"] = "Please select a valid question type."
	}
	options := question.NormalizeOptions(typ, in.Options)
	if ok && typ.HasOptions() && len(options) == 0 {
		fields["options"] = "Add at least one option."
	}
	if len(fields) > 0 {
		return question.Question{}, NewValidationError(fields)
	}

	created, err := u.questions.Create(ctx, question.Question{
		ID:        uuid.New(),
		CompanyID: companyID,
		Question:  text,
		Type:      typ,
		Options:   options,
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Question] create failed | company_id=%s err=%v", companyID, err)
		}
		return question.Question{}, ErrInternal
	}

	_ = u.cache.Delete(ctx, cache.QuestionsKey(companyID))
	return created, nil
}
