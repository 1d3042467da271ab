package repository

import (
	"context"

	"clarityhire/internal/database"
	"clarityhire/internal/domain/question"

	"github.com/google/uuid"
)

type QuestionRepository interface {
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]question.Question, error)
	Create(ctx context.Context, q question.Question) (question.Question, error)
	// CountOwned returns how many of ids belong to companyID.
	CountOwned(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) (int, error)
}

type PostgresQuestionRepository struct {
	db database.DB
}

func NewPostgresQuestionRepository(db database.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

func (r *PostgresQuestionRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]question.Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, company_id, question, type, options, created_at
		 FROM questions
		 WHERE company_id = $1
		 ORDER BY created_at ASC, id ASC`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]question.Question, 0)
	for rows.Next() {
		var q question.Question
		var typ string
		if err := rows.Scan(&q.ID, &q.CompanyID, &q.Question, &typ, &q.Options, &q.CreatedAt); err != nil {
			return nil, err
		}
		q.Type = question.Type(typ)
		if q.Options == nil {
			q.Options = []string{}
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresQuestionRepository) Create(ctx context.Context, q question.Question) (question.Question, error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Options == nil {
		q.Options = []string{}
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO questions (id, company_id, question, type, options)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		q.ID, q.CompanyID, q.Question, string(q.Type), q.Options,
	).Scan(&q.CreatedAt)
	if err != nil {
		return question.Question{}, err
	}
	return q, nil
}

func (r *PostgresQuestionRepository) CountOwned(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions WHERE company_id = $1 AND id = ANY($2)`,
		companyID, ids,
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}
