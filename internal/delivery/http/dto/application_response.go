package dto

import (
	"time"

	"clarityhire/internal/domain/application"

	"github.com/google/uuid"
)

type ResumeResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

type AnswerResponse struct {
	QuestionID uuid.UUID `json:"questionId"`
	Values     []string  `json:"values"`
}

type ApplicationResponse struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	JobID       uuid.UUID        `json:"jobId"`
	ResumeID    uuid.UUID        `json:"resumeId"`
	Status      string           `json:"status"`
	StatusLabel string           `json:"statusLabel"`
	Answers     []AnswerResponse `json:"answers"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func NewResumeList(items []application.Resume) []ResumeResponse {
	out := make([]ResumeResponse, 0, len(items))
	for _, r := range items {
		out = append(out, ResumeResponse{ID: r.ID, Name: r.Name, URL: r.URL, CreatedAt: r.CreatedAt})
	}
	return out
}

func NewApplicationList(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		answers := make([]AnswerResponse, 0, len(a.Answers))
		for _, ans := range a.Answers {
			answers = append(answers, AnswerResponse{QuestionID: ans.QuestionID, Values: orEmpty(ans.Values)})
		}
		out = append(out, ApplicationResponse{
			ID:          a.ID,
			UserID:      a.UserID,
			JobID:       a.JobID,
			ResumeID:    a.ResumeID,
			Status:      string(a.Status),
			StatusLabel: application.StatusLabels[a.Status],
			Answers:     answers,
			CreatedAt:   a.CreatedAt,
		})
	}
	return out
}
