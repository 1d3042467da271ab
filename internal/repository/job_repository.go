package repository

import (
	"context"
	"errors"

	"clarityhire/internal/database"
	"clarityhire/internal/domain/job"
	"clarityhire/internal/domain/question"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobRepository interface {
	Create(ctx context.Context, q database.Querier, j job.Job) error
	Update(ctx context.Context, q database.Querier, j job.Job) error
	ReplaceQuestions(ctx context.Context, q database.Querier, jobID uuid.UUID, selections []job.QuestionSelection) error
	UpdateStatus(ctx context.Context, jobID uuid.UUID, status job.Status) error

	GetByID(ctx context.Context, jobID uuid.UUID) (job.Job, error)
	ListQuestions(ctx context.Context, jobID uuid.UUID) ([]job.JobQuestion, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]JobSummary, error)
	ListPublishedByCompany(ctx context.Context, companyID uuid.UUID) ([]job.Job, error)
	CountByStatus(ctx context.Context, companyID uuid.UUID, status job.Status) (int, error)
}

// JobSummary is a manage-jobs row.
type JobSummary struct {
	Job          job.Job
	Applications int
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `j.id, j.company_id, j.title, j.summary, j.department, j.experience_level, j.job_type,
	j.work_arrangement, j.status, j.location, j.salary_min, j.salary_max, j.benefits, j.qualifications,
	j.responsibilities, j.skills, j.work_schedule, j.created_at, j.updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, q database.Querier, j job.Job) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`INSERT INTO jobs (id, company_id, title, summary, department, experience_level, job_type,
			work_arrangement, status, location, salary_min, salary_max, benefits, qualifications,
			responsibilities, skills, work_schedule)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		j.ID, j.CompanyID, j.Title, j.Summary, j.Department, string(j.ExperienceLevel), string(j.JobType),
		string(j.WorkArrangement), string(j.Status), j.Location, j.SalaryMin, j.SalaryMax,
		nonNil(j.Benefits), nonNil(j.Qualifications), nonNil(j.Responsibilities), nonNil(j.Skills), j.WorkSchedule,
	)
	return err
}

func (r *PostgresJobRepository) Update(ctx context.Context, q database.Querier, j job.Job) error {
	if q == nil {
		q = r.db
	}
	n, err := q.Exec(ctx,
		`UPDATE jobs SET title = $3, summary = $4, department = $5, experience_level = $6, job_type = $7,
			work_arrangement = $8, location = $9, salary_min = $10, salary_max = $11, benefits = $12,
			qualifications = $13, responsibilities = $14, skills = $15, work_schedule = $16, updated_at = now()
		 WHERE id = $1 AND company_id = $2`,
		j.ID, j.CompanyID, j.Title, j.Summary, j.Department, string(j.ExperienceLevel), string(j.JobType),
		string(j.WorkArrangement), j.Location, j.SalaryMin, j.SalaryMax,
		nonNil(j.Benefits), nonNil(j.Qualifications), nonNil(j.Responsibilities), nonNil(j.Skills), j.WorkSchedule,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ReplaceQuestions(ctx context.Context, q database.Querier, jobID uuid.UUID, selections []job.QuestionSelection) error {
	if q == nil {
		q = r.db
	}
	if _, err := q.Exec(ctx, `DELETE FROM job_questions WHERE job_id = $1`, jobID); err != nil {
		return err
	}
	for i, s := range selections {
		_, err := q.Exec(ctx,
			`INSERT INTO job_questions (job_id, question_id, is_required, position) VALUES ($1, $2, $3, $4)`,
			jobID, s.QuestionID, s.Required, i,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, jobID uuid.UUID, status job.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET status = $2, updated_at = now() WHERE id = $1`, jobID, string(status))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, jobID))
	if err != nil {
		return job.Job{}, err
	}
	qs, err := r.ListQuestions(ctx, jobID)
	if err != nil {
		return job.Job{}, err
	}
	j.Questions = qs
	return j, nil
}

func (r *PostgresJobRepository) ListQuestions(ctx context.Context, jobID uuid.UUID) ([]job.JobQuestion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT jq.job_id, jq.is_required, q.id, q.company_id, q.question, q.type, q.options, q.created_at
		 FROM job_questions jq
		 JOIN questions q ON q.id = jq.question_id
		 WHERE jq.job_id = $1
		 ORDER BY jq.position ASC, q.created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.JobQuestion, 0)
	for rows.Next() {
		var l job.JobQuestion
		var typ string
		if err := rows.Scan(&l.JobID, &l.Required, &l.Question.ID, &l.Question.CompanyID, &l.Question.Question,
			&typ, &l.Question.Options, &l.Question.CreatedAt); err != nil {
			return nil, err
		}
		l.Question.Type = question.Type(typ)
		l.QuestionID = l.Question.ID
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]JobSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`, (SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id)
		 FROM jobs j
		 WHERE j.company_id = $1
		 ORDER BY j.created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobSummary, 0)
	for rows.Next() {
		var s JobSummary
		var count int
		j, err := scanJobWith(rows, &count)
		if err != nil {
			return nil, err
		}
		s.Job = j
		s.Applications = count
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) ListPublishedByCompany(ctx context.Context, companyID uuid.UUID) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 WHERE j.company_id = $1 AND j.status = $2
		 ORDER BY j.created_at DESC`,
		companyID, string(job.StatusPublished),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJobWith(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) CountByStatus(ctx context.Context, companyID uuid.UUID, status job.Status) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE company_id = $1 AND status = $2`,
		companyID, string(status),
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func scanJob(row database.Row) (job.Job, error) {
	j, err := scanJobWith(row)
	if err != nil && isNoRows(err) {
		return job.Job{}, ErrJobNotFound
	}
	return j, err
}

func scanJobWith(row database.Row, extra ...any) (job.Job, error) {
	var j job.Job
	var level, typ, arrangement, status string
	dest := []any{
		&j.ID, &j.CompanyID, &j.Title, &j.Summary, &j.Department, &level, &typ, &arrangement, &status,
		&j.Location, &j.SalaryMin, &j.SalaryMax, &j.Benefits, &j.Qualifications, &j.Responsibilities,
		&j.Skills, &j.WorkSchedule, &j.CreatedAt, &j.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return job.Job{}, err
	}
	j.ExperienceLevel = job.ExperienceLevel(level)
	j.JobType = job.Type(typ)
	j.WorkArrangement = job.WorkArrangement(arrangement)
	j.Status = job.Status(status)
	return j, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
