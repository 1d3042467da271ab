package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"clarityhire/internal/database"
	"clarityhire/internal/domain/application"
	"clarityhire/internal/domain/company"
	"clarityhire/internal/domain/job"
	"clarityhire/internal/infrastructure/cache"
	"clarityhire/internal/pkg/validation"
	"clarityhire/internal/repository"

	"github.com/google/uuid"
)

type JobQuestionInput struct {
	QuestionID string `json:"questionId" validate:"required,uuid"`
	Required   bool   `json:"isRequired"`
}

type JobInput struct {
	Title            string             `json:"title" validate:"required,min=3,max=100"`
	Summary          string             `json:"summary" validate:"required,min=10,max=1000"`
	Department       string             `json:"department" validate:"required,min=2"`
	ExperienceLevel  string             `json:"experienceLevel" validate:"required,oneof=INTERNSHIP ENTRY_LEVEL ASSOCIATE MID_LEVEL SENIOR STAFF PRINCIPAL"`
	JobType          string             `json:"jobType" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	WorkArrangement  string             `json:"workArrangement" validate:"required,oneof=ON_SITE HYBRID REMOTE"`
	Location         string             `json:"location" validate:"required,min=2"`
	SalaryMin        *int               `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax        *int               `json:"salaryMax" validate:"omitempty,gte=0"`
	Benefits         []string           `json:"benefits"`
	Qualifications   []string           `json:"qualifications"`
	Responsibilities []string           `json:"responsibilities"`
	Skills           []string           `json:"skills"`
	WorkSchedule     *string            `json:"workSchedule"`
	Questions        []JobQuestionInput `json:"questions" validate:"dive"`
}

type JobDetails struct {
	Job     job.Job
	Company company.Company
}

type ApplicationForm struct {
	Job     job.Job
	Company company.Company
	Resumes []application.Resume
}

type JobUsecase interface {
	Create(ctx context.Context, s Session, in JobInput) (job.Job, error)
	Update(ctx context.Context, s Session, jobID uuid.UUID, in JobInput) (job.Job, error)
	ChangeStatus(ctx context.Context, s Session, jobID uuid.UUID, status string) (job.Job, error)
	ListForCompany(ctx context.Context, s Session) ([]repository.JobSummary, error)
	CountPublished(ctx context.Context, s Session) (int, error)
	ListAvailable(ctx context.Context, companySlug string) (company.Company, []job.Job, error)
	Get(ctx context.Context, s Session, jobID uuid.UUID) (JobDetails, error)
	ApplicationForm(ctx context.Context, s Session, jobID uuid.UUID) (ApplicationForm, error)
}

type Jobs struct {
	db        database.DB
	jobs      repository.JobRepository
	questions repository.QuestionRepository
	companies repository.CompanyRepository
	resumes   repository.ResumeRepository
	cache     Cache
	validator *validation.Validator
	logger    *log.Logger
}

func NewJobUsecase(
	db database.DB,
	jobs repository.JobRepository,
	questions repository.QuestionRepository,
	companies repository.CompanyRepository,
	resumes repository.ResumeRepository,
	c Cache,
	logger *log.Logger,
) *Jobs {
	return &Jobs{
		db:        db,
		jobs:      jobs,
		questions: questions,
		companies: companies,
		resumes:   resumes,
		cache:     cacheOrNoop(c),
		validator: validation.New(),
		logger:    logger,
	}
}

func (u *Jobs) Create(ctx context.Context, s Session, in JobInput) (job.Job, error) {
	companyID, err := s.RecruiterCompany()
	if err != nil {
		return job.Job{}, err
	}

	j, selections, err := u.validate(ctx, companyID, in)
	if err != nil {
		return job.Job{}, err
	}
	j.ID = uuid.New()
	j.CompanyID = companyID
	j.Status = job.StatusDraft

	err = database.InTx(ctx, u.db, func(tx database.Tx) error {
		if err := u.jobs.Create(ctx, tx, j); err != nil {
			return err
		}
		return u.jobs.ReplaceQuestions(ctx, tx, j.ID, selections)
	})
	if err != nil {
		u.logf("[Job] create failed | company_id=%s err=%v", companyID, err)
		return job.Job{}, ErrPersistence
	}

	return u.reload(ctx, j.ID)
}

func (u *Jobs) Update(ctx context.Context, s Session, jobID uuid.UUID, in JobInput) (job.Job, error) {
	companyID, err := s.RecruiterCompany()
	if err != nil {
		return job.Job{}, err
	}
	existing, err := u.owned(ctx, companyID, jobID)
	if err != nil {
		return job.Job{}, err
	}

	j, selections, err := u.validate(ctx, companyID, in)
	if err != nil {
		return job.Job{}, err
	}
	j.ID = existing.ID
	j.CompanyID = companyID
	j.Status = existing.Status

	err = database.InTx(ctx, u.db, func(tx database.Tx) error {
		if err := u.jobs.Update(ctx, tx, j); err != nil {
			return err
		}
		return u.jobs.ReplaceQuestions(ctx, tx, j.ID, selections)
	})
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrNotFound
		}
		u.logf("[Job] update failed | job_id=%s err=%v", jobID, err)
		return job.Job{}, ErrPersistence
	}

	_ = u.cache.Delete(ctx, cache.AvailableJobsKey(companyID))
	return u.reload(ctx, j.ID)
}

func (u *Jobs) ChangeStatus(ctx context.Context, s Session, jobID uuid.UUID, status string) (job.Job, error) {
	companyID, err := s.RecruiterCompany()
	if err != nil {
		return job.Job{}, err
	}
	existing, err := u.owned(ctx, companyID, jobID)
	if err != nil {
		return job.Job{}, err
	}

	to := job.Status(strings.ToUpper(strings.TrimSpace(status)))
	if !job.CanTransition(existing.Status, to) {
		return job.Job{}, ErrInvalidStatusTransition
	}

	if err := u.jobs.UpdateStatus(ctx, jobID, to); err != nil {
		u.logf("[Job] status change failed | job_id=%s err=%v", jobID, err)
		return job.Job{}, ErrPersistence
	}

	_ = u.cache.Delete(ctx, cache.AvailableJobsKey(companyID))
	existing.Status = to
	return existing, nil
}

func (u *Jobs) ListForCompany(ctx context.Context, s Session) ([]repository.JobSummary, error) {
	companyID, err := s.RecruiterCompany()
	if err != nil {
		return nil, err
	}
	items, err := u.jobs.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Jobs) CountPublished(ctx context.Context, s Session) (int, error) {
	companyID, err := s.RecruiterCompany()
	if err != nil {
		return 0, err
	}
	n, err := u.jobs.CountByStatus(ctx, companyID, job.StatusPublished)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}

func (u *Jobs) ListAvailable(ctx context.Context, companySlug string) (company.Company, []job.Job, error) {
	slug := normalizeSlug(companySlug)
	if slug == "" {
		return company.Company{}, nil, ErrMissingInput
	}
	c, err := u.companies.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return company.Company{}, nil, ErrUnknownSlug
		}
		return company.Company{}, nil, ErrInternal
	}

	key := cache.AvailableJobsKey(c.ID)
	var cached []job.Job
	if ok, _ := u.cache.GetJSON(ctx, key, &cached); ok {
		return c, cached, nil
	}

	items, err := u.jobs.ListPublishedByCompany(ctx, c.ID)
	if err != nil {
		return company.Company{}, nil, ErrInternal
	}
	_ = u.cache.SetJSON(ctx, key, items, 0)
	return c, items, nil
}

// Get returns a job with its company. Unpublished jobs are only visible to
// recruiters of the owning company.
func (u *Jobs) Get(ctx context.Context, s Session, jobID uuid.UUID) (JobDetails, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return JobDetails{}, ErrNotFound
		}
		return JobDetails{}, ErrInternal
	}
	if j.Status != job.StatusPublished {
		companyID, err := s.RecruiterCompany()
		if err != nil || companyID != j.CompanyID {
			return JobDetails{}, ErrNotFound
		}
	}

	c, err := u.companies.GetByID(ctx, j.CompanyID)
	if err != nil {
		return JobDetails{}, ErrInternal
	}
	return JobDetails{Job: j, Company: c}, nil
}

func (u *Jobs) ApplicationForm(ctx context.Context, s Session, jobID uuid.UUID) (ApplicationForm, error) {
	if !s.Authenticated() {
		return ApplicationForm{}, ErrAuthenticationRequired
	}
	details, err := u.Get(ctx, s, jobID)
	if err != nil {
		return ApplicationForm{}, err
	}
	if details.Job.Status != job.StatusPublished {
		return ApplicationForm{}, ErrNotFound
	}

	resumes, err := u.resumes.ListByUser(ctx, s.UserID)
	if err != nil {
		return ApplicationForm{}, ErrInternal
	}
	return ApplicationForm{Job: details.Job, Company: details.Company, Resumes: resumes}, nil
}

func (u *Jobs) owned(ctx context.Context, companyID, jobID uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	if j.CompanyID != companyID {
		return job.Job{}, ErrNotFound
	}
	return j, nil
}

func (u *Jobs) reload(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (u *Jobs) validate(ctx context.Context, companyID uuid.UUID, in JobInput) (job.Job, []job.QuestionSelection, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Summary = strings.TrimSpace(in.Summary)
	in.Department = strings.TrimSpace(in.Department)
	in.Location = strings.TrimSpace(in.Location)

	fields := u.validator.Struct(in)
	if fields == nil {
		fields = map[string]string{}
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		if _, exists := fields["salaryMin"]; !exists {
			fields["salaryMin"] = "Minimum salary cannot exceed maximum salary"
		}
	}

	selections := make([]job.QuestionSelection, 0, len(in.Questions))
	ids := make([]uuid.UUID, 0, len(in.Questions))
	seen := map[uuid.UUID]struct{}{}
	for _, q := range in.Questions {
		id, err := uuid.Parse(strings.TrimSpace(q.QuestionID))
		if err != nil {
			fields["questions"] = "One or more selected questions are invalid."
			break
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		selections = append(selections, job.QuestionSelection{QuestionID: id, Required: q.Required})
	}

	if _, bad := fields["questions"]; !bad && len(ids) > 0 {
		n, err := u.questions.CountOwned(ctx, companyID, ids)
		if err != nil {
			return job.Job{}, nil, ErrInternal
		}
		if n != len(ids) {
			fields["questions"] = "One or more selected questions are invalid."
		}
	}

	if len(fields) > 0 {
		return job.Job{}, nil, NewValidationError(fields)
	}

	j := job.Job{
		Title:            in.Title,
		Summary:          in.Summary,
		Department:       in.Department,
		ExperienceLevel:  job.ExperienceLevel(in.ExperienceLevel),
		JobType:          job.Type(in.JobType),
		WorkArrangement:  job.WorkArrangement(in.WorkArrangement),
		Location:         in.Location,
		SalaryMin:        in.SalaryMin,
		SalaryMax:        in.SalaryMax,
		Benefits:         cleanList(in.Benefits),
		Qualifications:   cleanList(in.Qualifications),
		Responsibilities: cleanList(in.Responsibilities),
		Skills:           cleanList(in.Skills),
		WorkSchedule:     in.WorkSchedule,
	}
	return j, selections, nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

func (u *Jobs) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
