package seeder

import (
	"context"

	"clarityhire/internal/database"
	"clarityhire/internal/domain/job"
	"clarityhire/internal/domain/question"

	"github.com/google/uuid"
)

type demoQuestion struct {
	ID       uuid.UUID
	Text     string
	Type     question.Type
	Options  []string
	Required bool
}

var demoQuestions = []demoQuestion{
	{ID: uuid.MustParse("a1000000-0000-4000-8000-000000000001"), Text: "Why do you want to join Acme?", Type: question.TypeText, Required: true},
	{ID: uuid.MustParse("a1000000-0000-4000-8000-000000000002"), Text: "Years of professional experience", Type: question.TypeNumber, Required: true},
	{ID: uuid.MustParse("a1000000-0000-4000-8000-000000000003"), Text: "Are you open to relocation?", Type: question.TypeTrueOrFalse},
	{ID: uuid.MustParse("a1000000-0000-4000-8000-000000000004"), Text: "Preferred working hours", Type: question.TypeMultipleChoice, Options: []string{"Morning", "Afternoon", "Flexible"}},
	{ID: uuid.MustParse("a1000000-0000-4000-8000-000000000005"), Text: "Languages you write daily", Type: question.TypeCheckbox, Options: []string{"Go", "TypeScript", "SQL"}},
}

type QuestionsSeeder struct{}

func (QuestionsSeeder) Name() string { return "questions" }

func (QuestionsSeeder) Requires() []Requirement {
	return []Requirement{{Table: "questions", Columns: []string{"id", "company_id", "question", "type", "options"}}}
}

func (QuestionsSeeder) Run(ctx context.Context, db database.DB) error {
	return database.InTx(ctx, db, func(tx database.Tx) error {
		for _, q := range demoQuestions {
			opts := question.NormalizeOptions(q.Type, q.Options)
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO questions (id, company_id, question, type, options) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
				q.ID, DemoCompanyID, q.Text, string(q.Type), opts,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// JobsSeeder publishes one job that links every demo question.
type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

func (JobsSeeder) Requires() []Requirement {
	return []Requirement{
		{Table: "jobs", Columns: []string{"id", "company_id", "title", "summary", "department", "experience_level",
			"job_type", "work_arrangement", "status", "location", "salary_min", "salary_max", "skills"}},
		{Table: "job_questions", Columns: []string{"job_id", "question_id", "is_required", "position"}},
	}
}

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	return database.InTx(ctx, db, func(tx database.Tx) error {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO jobs (id, company_id, title, summary, department, experience_level, job_type, work_arrangement, status, location, salary_min, salary_max, skills)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) ON CONFLICT (id) DO NOTHING`,
			DemoJobID, DemoCompanyID,
			"Backend Engineer",
			"Build and run the services behind our hiring platform.",
			"Engineering",
			string(job.ExperienceMidLevel), string(job.TypeFullTime), string(job.WorkRemote), string(job.StatusPublished),
			"Remote", 90000, 130000, []string{"Go", "PostgreSQL", "Redis"},
		); err != nil {
			return err
		}

		for i, q := range demoQuestions {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO job_questions (job_id, question_id, is_required, position) VALUES ($1, $2, $3, $4) ON CONFLICT (job_id, question_id) DO NOTHING`,
				DemoJobID, q.ID, q.Required, i,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
