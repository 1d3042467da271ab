package seeder

import "github.com/google/uuid"

// Fixed ids keep the demo data idempotent across runs.
var (
	DemoUserID    = uuid.MustParse("8d7c2f1e-0a4b-4c1e-9a53-1f0e6c2b7a01")
	DemoCompanyID = uuid.MustParse("5b2e9c40-3f6d-4a8e-b1c7-2d9a0e4f6b02")
	DemoMemberID  = uuid.MustParse("c3a1f7d2-6e5b-4b9a-8c2d-7f1e0a3b5c03")
	DemoJobID     = uuid.MustParse("e9f4b2a6-1c7d-4e3f-a5b8-9d0c2e6f1a04")
)

const (
	DemoEmail = "recruiter@acme.test"
	DemoSlug  = "acme"
)

func Defaults(demoPassword string) []Seeder {
	return []Seeder{
		DemoCompanySeeder{Password: demoPassword},
		QuestionsSeeder{},
		JobsSeeder{},
	}
}
