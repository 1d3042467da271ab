package repository

import (
	"context"
	"errors"

	"clarityhire/internal/database"
	"clarityhire/internal/domain/application"

	"github.com/google/uuid"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository interface {
	Create(ctx context.Context, r application.Resume) (application.Resume, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (application.Resume, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Resume, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) Create(ctx context.Context, res application.Resume) (application.Resume, error) {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO resumes (id, user_id, url, name) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		res.ID, res.UserID, res.URL, res.Name,
	).Scan(&res.CreatedAt)
	if err != nil {
		return application.Resume{}, err
	}
	return res, nil
}

func (r *PostgresResumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	return err
}

func (r *PostgresResumeRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Resume, error) {
	var res application.Resume
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, url, name, created_at FROM resumes WHERE id = $1`, id,
	).Scan(&res.ID, &res.UserID, &res.URL, &res.Name, &res.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return application.Resume{}, ErrResumeNotFound
		}
		return application.Resume{}, err
	}
	return res, nil
}

func (r *PostgresResumeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Resume, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, url, name, created_at FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Resume, 0)
	for rows.Next() {
		var res application.Resume
		if err := rows.Scan(&res.ID, &res.UserID, &res.URL, &res.Name, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
