package repository

import (
	"context"
	"errors"

	"clarityhire/internal/database"
	"clarityhire/internal/domain/company"

	"github.com/google/uuid"
)

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrSlugConflict       = errors.New("company slug already exists")
)

const companiesSlugKey = "companies_slug_key"

type CompanyRepository interface {
	CreateCompany(ctx context.Context, q database.Querier, c company.Company) error
	CreateMember(ctx context.Context, q database.Querier, m company.Member) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	TakenSlugs(ctx context.Context, slugs []string) (map[string]struct{}, error)
	GetBySlug(ctx context.Context, slug string) (company.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (company.Company, error)
	ListCompanies(ctx context.Context) ([]company.Company, error)
	FindMembership(ctx context.Context, userID, companyID uuid.UUID) (company.Membership, error)
	FirstMembership(ctx context.Context, userID uuid.UUID) (company.Membership, error)
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, name, slug, owner_id, company_size, description, location,
	website_url, image, cover_image, created_at`

func (r *PostgresCompanyRepository) CreateCompany(ctx context.Context, q database.Querier, c company.Company) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`INSERT INTO companies (id, name, slug, owner_id, company_size, description, location, website_url, image, cover_image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Slug, c.OwnerID, string(c.Size), c.Description, c.Location, c.WebsiteURL, c.Image, c.CoverImage,
	)
	if IsUniqueViolation(err, companiesSlugKey) {
		return ErrSlugConflict
	}
	return err
}

func (r *PostgresCompanyRepository) CreateMember(ctx context.Context, q database.Querier, m company.Member) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`INSERT INTO company_members (id, user_id, company_id, role) VALUES ($1, $2, $3, $4)`,
		m.ID, m.UserID, m.CompanyID, string(m.Role),
	)
	return err
}

func (r *PostgresCompanyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCompanyRepository) TakenSlugs(ctx context.Context, slugs []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(slugs))
	if len(slugs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT slug FROM companies WHERE slug = ANY($1)`, slugs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out[s] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCompanyRepository) GetBySlug(ctx context.Context, slug string) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE slug = $1`, slug))
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

func (r *PostgresCompanyRepository) ListCompanies(ctx context.Context) ([]company.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCompanyRepository) FindMembership(ctx context.Context, userID, companyID uuid.UUID) (company.Membership, error) {
	row := r.db.QueryRow(ctx,
		`SELECT m.id, m.company_id, c.slug, m.role
		 FROM company_members m
		 JOIN companies c ON c.id = m.company_id
		 WHERE m.user_id = $1 AND m.company_id = $2`,
		userID, companyID,
	)
	return scanMembership(row)
}

func (r *PostgresCompanyRepository) FirstMembership(ctx context.Context, userID uuid.UUID) (company.Membership, error) {
	row := r.db.QueryRow(ctx,
		`SELECT m.id, m.company_id, c.slug, m.role
		 FROM company_members m
		 JOIN companies c ON c.id = m.company_id
		 WHERE m.user_id = $1
		 ORDER BY m.created_at ASC
		 LIMIT 1`,
		userID,
	)
	return scanMembership(row)
}

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	var size string
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.OwnerID, &size, &c.Description, &c.Location,
		&c.WebsiteURL, &c.Image, &c.CoverImage, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return company.Company{}, ErrCompanyNotFound
		}
		return company.Company{}, err
	}
	c.Size = company.Size(size)
	return c, nil
}

func scanMembership(row database.Row) (company.Membership, error) {
	var m company.Membership
	var role string
	if err := row.Scan(&m.MemberID, &m.CompanyID, &m.CompanySlug, &role); err != nil {
		if isNoRows(err) {
			return company.Membership{}, ErrMembershipNotFound
		}
		return company.Membership{}, err
	}
	m.Role = company.Role(role)
	return m, nil
}
