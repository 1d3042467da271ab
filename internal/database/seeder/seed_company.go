package seeder

import (
	"context"
	"fmt"

	"clarityhire/internal/database"
	"clarityhire/internal/domain/company"
	ucauth "clarityhire/internal/usecase/auth"
)

// DemoCompanySeeder creates the demo recruiter, their company and the ADMIN
// membership linking them.
type DemoCompanySeeder struct {
	Password string
}

func (DemoCompanySeeder) Name() string { return "demo_company" }

func (DemoCompanySeeder) Requires() []Requirement {
	return []Requirement{
		{Table: "users", Columns: []string{"id", "email", "name", "password_hash"}},
		{Table: "companies", Columns: []string{"id", "name", "slug", "owner_id", "company_size"}},
		{Table: "company_members", Columns: []string{"id", "user_id", "company_id", "role"}},
	}
}

func (s DemoCompanySeeder) Run(ctx context.Context, db database.DB) error {
	if s.Password == "" {
		return fmt.Errorf("empty demo password")
	}

	owner, err := ucauth.NewUser(DemoEmail, "Avery Recruiter", s.Password)
	if err != nil {
		return err
	}

	return database.InTx(ctx, db, func(tx database.Tx) error {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO users (id, email, name, password_hash) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`,
			DemoUserID, owner.Email, owner.Name, owner.PasswordHash,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO companies (id, name, slug, owner_id, company_size, description, location)
VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (slug) DO NOTHING`,
			DemoCompanyID, "Acme Corp", DemoSlug, DemoUserID, string(company.SizeMedium),
			"Builders of everything.", "Remote",
		); err != nil {
			return err
		}
		_, err := tx.Exec(
			ctx,
			`INSERT INTO company_members (id, user_id, company_id, role) VALUES ($1, $2, $3, $4) ON CONFLICT (user_id, company_id) DO NOTHING`,
			DemoMemberID, DemoUserID, DemoCompanyID, string(company.RoleAdmin),
		)
		return err
	})
}
