package dto

import (
	"time"

	"clarityhire/internal/domain/question"

	"github.com/google/uuid"
)

type QuestionResponse struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"companyId"`
	Question  string    `json:"question"`
	Type      string    `json:"type"`
	TypeLabel string    `json:"typeLabel"`
	Options   []string  `json:"options"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewQuestionResponse(q question.Question) QuestionResponse {
	opts := q.Options
	if opts == nil {
		opts = []string{}
	}
	return QuestionResponse{
		ID:        q.ID,
		CompanyID: q.CompanyID,
		Question:  q.Question,
		Type:      string(q.Type),
		TypeLabel: q.Type.Label(),
		Options:   opts,
		CreatedAt: q.CreatedAt,
	}
}

func NewQuestionList(items []question.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(items))
	for _, q := range items {
		out = append(out, NewQuestionResponse(q))
	}
	return out
}
