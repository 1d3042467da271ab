package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSubmitted    Status = "SUBMITTED"
	StatusInReview     Status = "IN_REVIEW"
	StatusInterviewing Status = "INTERVIEWING"
	StatusOffered      Status = "OFFERED"
	StatusRejected     Status = "REJECTED"
	StatusWithdrawn    Status = "WITHDRAWN"
	StatusHired        Status = "HIRED"
)

var StatusLabels = map[Status]string{
	StatusSubmitted:    "Submitted",
	StatusInReview:     "In Review",
	StatusInterviewing: "Interviewing",
	StatusOffered:      "Offer Extended",
	StatusRejected:     "Rejected",
	StatusWithdrawn:    "Withdrawn",
	StatusHired:        "Hired",
}

type Resume struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	URL       string
	Name      string
	CreatedAt time.Time
}

type Application struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	JobID     uuid.UUID
	ResumeID  uuid.UUID
	Status    Status
	CreatedAt time.Time

	Answers []Answer
}

// Answer values are always stored as a list of strings whatever the
// question type; single values become one-element lists.
type Answer struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	QuestionID    uuid.UUID
	Values        []string
}
