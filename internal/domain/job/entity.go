package job

import (
	"time"

	"clarityhire/internal/domain/question"

	"github.com/google/uuid"
)

type ExperienceLevel string

const (
	ExperienceInternship ExperienceLevel = "INTERNSHIP"
	ExperienceEntryLevel ExperienceLevel = "ENTRY_LEVEL"
	ExperienceAssociate  ExperienceLevel = "ASSOCIATE"
	ExperienceMidLevel   ExperienceLevel = "MID_LEVEL"
	ExperienceSenior     ExperienceLevel = "SENIOR"
	ExperienceStaff      ExperienceLevel = "STAFF"
	ExperiencePrincipal  ExperienceLevel = "PRINCIPAL"
)

type Type string

const (
	TypeFullTime   Type = "FULL_TIME"
	TypePartTime   Type = "PART_TIME"
	TypeContract   Type = "CONTRACT"
	TypeInternship Type = "INTERNSHIP"
)

type WorkArrangement string

const (
	WorkOnSite WorkArrangement = "ON_SITE"
	WorkHybrid WorkArrangement = "HYBRID"
	WorkRemote WorkArrangement = "REMOTE"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

var ExperienceLevelLabels = map[ExperienceLevel]string{
	ExperienceInternship: "Internship",
	ExperienceEntryLevel: "Entry Level",
	ExperienceAssociate:  "Associate",
	ExperienceMidLevel:   "Mid-level / Intermediate",
	ExperienceSenior:     "Senior Level",
	ExperienceStaff:      "Staff Level",
	ExperiencePrincipal:  "Principal Level",
}

var TypeLabels = map[Type]string{
	TypeFullTime:   "Full-time",
	TypePartTime:   "Part-time",
	TypeContract:   "Contract",
	TypeInternship: "Internship",
}

var WorkArrangementLabels = map[WorkArrangement]string{
	WorkOnSite: "On-site",
	WorkHybrid: "Hybrid",
	WorkRemote: "Remote",
}

// CanTransition reports whether a job may move from one status to another.
// Jobs only move forward: DRAFT -> PUBLISHED -> ARCHIVED.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusPublished || to == StatusArchived
	case StatusPublished:
		return to == StatusArchived
	default:
		return false
	}
}

type Job struct {
	ID               uuid.UUID
	CompanyID        uuid.UUID
	Title            string
	Summary          string
	Department       string
	ExperienceLevel  ExperienceLevel
	JobType          Type
	WorkArrangement  WorkArrangement
	Status           Status
	Location         string
	SalaryMin        *int
	SalaryMax        *int
	Benefits         []string
	Qualifications   []string
	Responsibilities []string
	Skills           []string
	WorkSchedule     *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Questions []JobQuestion
}

// JobQuestion links a catalog question to a job with a per-job required flag.
type JobQuestion struct {
	JobID      uuid.UUID
	QuestionID uuid.UUID
	Required   bool
	Question   question.Question
}

type QuestionSelection struct {
	QuestionID uuid.UUID
	Required   bool
}
