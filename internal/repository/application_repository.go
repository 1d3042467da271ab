package repository

import (
	"context"

	"clarityhire/internal/database"
	"clarityhire/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	// Create inserts the application and its answers in order using q, which
	// is expected to be a transaction.
	Create(ctx context.Context, q database.Querier, a application.Application) error
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, q database.Querier, a application.Application) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`INSERT INTO applications (id, user_id, job_id, resume_id, status) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.UserID, a.JobID, a.ResumeID, string(a.Status),
	)
	if err != nil {
		return err
	}

	for i, ans := range a.Answers {
		id := ans.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err := q.Exec(ctx,
			`INSERT INTO application_answers (id, application_id, question_id, answer, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, a.ID, ans.QuestionID, nonNil(ans.Values), i,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.user_id, a.job_id, a.resume_id, a.status, a.created_at,
			ans.id, ans.question_id, ans.answer
		 FROM applications a
		 LEFT JOIN application_answers ans ON ans.application_id = a.id
		 WHERE a.job_id = $1
		 ORDER BY a.created_at DESC, a.id, ans.position ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var a application.Application
		var status string
		var ansID, questionID *uuid.UUID
		var values []string
		if err := rows.Scan(&a.ID, &a.UserID, &a.JobID, &a.ResumeID, &status, &a.CreatedAt,
			&ansID, &questionID, &values); err != nil {
			return nil, err
		}

		i, seen := index[a.ID]
		if !seen {
			a.Status = application.Status(status)
			a.Answers = []application.Answer{}
			out = append(out, a)
			i = len(out) - 1
			index[a.ID] = i
		}
		if ansID != nil && questionID != nil {
			out[i].Answers = append(out[i].Answers, application.Answer{
				ID:            *ansID,
				ApplicationID: a.ID,
				QuestionID:    *questionID,
				Values:        nonNil(values),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
