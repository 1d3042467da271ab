package dto

import (
	"time"

	"clarityhire/internal/domain/job"
	"clarityhire/internal/repository"

	"github.com/google/uuid"
)

type JobQuestionResponse struct {
	QuestionID uuid.UUID        `json:"questionId"`
	IsRequired bool             `json:"isRequired"`
	Question   QuestionResponse `json:"question"`
}

type JobResponse struct {
	ID                   uuid.UUID             `json:"id"`
	CompanyID            uuid.UUID             `json:"companyId"`
	Title                string                `json:"title"`
	Summary              string                `json:"summary"`
	Department           string                `json:"department"`
	ExperienceLevel      string                `json:"experienceLevel"`
	ExperienceLevelLabel string                `json:"experienceLevelLabel"`
	JobType              string                `json:"jobType"`
	JobTypeLabel         string                `json:"jobTypeLabel"`
	WorkArrangement      string                `json:"workArrangement"`
	WorkArrangementLabel string                `json:"workArrangementLabel"`
	Status               string                `json:"status"`
	Location             string                `json:"location"`
	SalaryMin            *int                  `json:"salaryMin"`
	SalaryMax            *int                  `json:"salaryMax"`
	Benefits             []string              `json:"benefits"`
	Qualifications       []string              `json:"qualifications"`
	Responsibilities     []string              `json:"responsibilities"`
	Skills               []string              `json:"skills"`
	WorkSchedule         *string               `json:"workSchedule"`
	Questions            []JobQuestionResponse `json:"questions,omitempty"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

type ManagedJobResponse struct {
	JobResponse
	Applications int `json:"applications"`
}

func NewJobResponse(j job.Job) JobResponse {
	out := JobResponse{
		ID:                   j.ID,
		CompanyID:            j.CompanyID,
		Title:                j.Title,
		Summary:              j.Summary,
		Department:           j.Department,
		ExperienceLevel:      string(j.ExperienceLevel),
		ExperienceLevelLabel: job.ExperienceLevelLabels[j.ExperienceLevel],
		JobType:              string(j.JobType),
		JobTypeLabel:         job.TypeLabels[j.JobType],
		WorkArrangement:      string(j.WorkArrangement),
		WorkArrangementLabel: job.WorkArrangementLabels[j.WorkArrangement],
		Status:               string(j.Status),
		Location:             j.Location,
		SalaryMin:            j.SalaryMin,
		SalaryMax:            j.SalaryMax,
		Benefits:             orEmpty(j.Benefits),
		Qualifications:       orEmpty(j.Qualifications),
		Responsibilities:     orEmpty(j.Responsibilities),
		Skills:               orEmpty(j.Skills),
		WorkSchedule:         j.WorkSchedule,
		CreatedAt:            j.CreatedAt,
		UpdatedAt:            j.UpdatedAt,
	}
	for _, l := range j.Questions {
		out.Questions = append(out.Questions, JobQuestionResponse{
			QuestionID: l.QuestionID,
			IsRequired: l.Required,
			Question:   NewQuestionResponse(l.Question),
		})
	}
	return out
}

func NewJobList(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}

func NewManagedJobList(items []repository.JobSummary) []ManagedJobResponse {
	out := make([]ManagedJobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ManagedJobResponse{JobResponse: NewJobResponse(it.Job), Applications: it.Applications})
	}
	return out
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
