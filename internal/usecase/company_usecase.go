package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"clarityhire/internal/database"
	"clarityhire/internal/domain/company"
	"clarityhire/internal/domain/user"
	"clarityhire/internal/infrastructure/cache"
	"clarityhire/internal/pkg/validation"
	"clarityhire/internal/repository"
	ucauth "clarityhire/internal/usecase/auth"

	"github.com/google/uuid"
)

type SlugAvailability struct {
	Available   bool     `json:"available"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type RegisterCompanyInput struct {
	FullName        string `json:"fullname" validate:"required,min=2,max=100"`
	WorkEmail       string `json:"workEmail" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=50,strong_password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	CompanyName     string `json:"companyName" validate:"required,min=2,max=100"`
	CompanySlug     string `json:"companySlug" validate:"required,min=3,max=60,slug"`
	CompanySize     string `json:"companySize" validate:"required,oneof=SOLO SMALL MEDIUM LARGE ENTERPRISE"`
}

type RegisteredCompany struct {
	User    user.User
	Company company.Company
	Member  company.Member
	Tokens  Tokens
}

type CompanyUsecase interface {
	CheckSlug(ctx context.Context, slug string) (SlugAvailability, error)
	RegisterCompany(ctx context.Context, in RegisterCompanyInput) (RegisteredCompany, error)
	ListCompanies(ctx context.Context) ([]company.Company, error)
	GetBySlug(ctx context.Context, slug string) (company.Company, error)
	ResolveMembership(ctx context.Context, userID, companyID uuid.UUID) (company.Membership, error)
}

type tokenIssuer interface {
	IssueTokens(ctx context.Context, u user.User) (Tokens, error)
}

type Companies struct {
	db        database.DB
	users     user.Repository
	companies repository.CompanyRepository
	tokens    tokenIssuer
	cache     Cache
	validator *validation.Validator
	logger    *log.Logger
}

func NewCompanyUsecase(db database.DB, users user.Repository, companies repository.CompanyRepository, tokens tokenIssuer, c Cache, logger *log.Logger) *Companies {
	return &Companies{
		db:        db,
		users:     users,
		companies: companies,
		tokens:    tokens,
		cache:     cacheOrNoop(c),
		validator: validation.New(),
		logger:    logger,
	}
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func (u *Companies) CheckSlug(ctx context.Context, slug string) (SlugAvailability, error) {
	slug = normalizeSlug(slug)
	if slug == "" {
		return SlugAvailability{}, ErrMissingInput
	}

	taken, err := u.companies.SlugExists(ctx, slug)
	if err != nil {
		u.logf("[Company] slug lookup failed | slug=%s err=%v", slug, err)
		return SlugAvailability{}, ErrInternal
	}
	if !taken {
		return SlugAvailability{Available: true}, nil
	}

	candidates := company.SlugCandidates(slug)
	takenCandidates, err := u.companies.TakenSlugs(ctx, candidates)
	if err != nil {
		u.logf("[Company] suggestion lookup failed | slug=%s err=%v", slug, err)
		return SlugAvailability{}, ErrInternal
	}

	return SlugAvailability{
		Available:   false,
		Suggestions: company.FilterTaken(candidates, takenCandidates),
	}, nil
}

func (u *Companies) RegisterCompany(ctx context.Context, in RegisterCompanyInput) (RegisteredCompany, error) {
	in.CompanySlug = normalizeSlug(in.CompanySlug)
	in.WorkEmail = ucauth.NormalizeEmail(in.WorkEmail)
	in.FullName = strings.TrimSpace(in.FullName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.CompanySize = strings.ToUpper(strings.TrimSpace(in.CompanySize))

	if fields := u.validator.Struct(in); fields != nil {
		return RegisteredCompany{}, NewValidationError(fields)
	}

	exists, err := u.users.ExistsByEmail(ctx, in.WorkEmail)
	if err != nil {
		return RegisteredCompany{}, ErrInternal
	}
	if exists {
		return RegisteredCompany{}, ucauth.ErrEmailAlreadyRegistered
	}

	slugTaken, err := u.companies.SlugExists(ctx, in.CompanySlug)
	if err != nil {
		return RegisteredCompany{}, ErrInternal
	}
	if slugTaken {
		return RegisteredCompany{}, ErrSlugTaken
	}

	owner, err := ucauth.NewUser(in.WorkEmail, in.FullName, in.Password)
	if err != nil {
		return RegisteredCompany{}, ErrInternal
	}
	c := company.Company{
		ID:      uuid.New(),
		Name:    in.CompanyName,
		Slug:    in.CompanySlug,
		OwnerID: owner.ID,
		Size:    company.Size(in.CompanySize),
	}
	m := company.Member{
		ID:        uuid.New(),
		UserID:    owner.ID,
		CompanyID: c.ID,
		Role:      company.RoleAdmin,
	}

	err = database.InTx(ctx, u.db, func(tx database.Tx) error {
		if err := u.users.CreateUser(ctx, tx, owner); err != nil {
			return err
		}
		if err := u.companies.CreateCompany(ctx, tx, c); err != nil {
			return err
		}
		return u.companies.CreateMember(ctx, tx, m)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSlugConflict):
			return RegisteredCompany{}, ErrSlugTaken
		case repository.IsUniqueViolation(err, "users_email_key"):
			return RegisteredCompany{}, ucauth.ErrEmailAlreadyRegistered
		}
		u.logf("[Company] registration failed | slug=%s err=%v", c.Slug, err)
		return RegisteredCompany{}, ErrPersistence
	}

	_ = u.cache.Delete(ctx, cache.CompaniesKey())

	owner.PasswordHash = ""
	out := RegisteredCompany{User: owner, Company: c, Member: m}
	if u.tokens != nil {
		tokens, err := u.tokens.IssueTokens(ctx, owner)
		if err != nil {
			return RegisteredCompany{}, err
		}
		out.Tokens = tokens
	}
	return out, nil
}

func (u *Companies) ListCompanies(ctx context.Context) ([]company.Company, error) {
	var cached []company.Company
	if ok, _ := u.cache.GetJSON(ctx, cache.CompaniesKey(), &cached); ok {
		return cached, nil
	}

	items, err := u.companies.ListCompanies(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	_ = u.cache.SetJSON(ctx, cache.CompaniesKey(), items, 0)
	return items, nil
}

func (u *Companies) GetBySlug(ctx context.Context, slug string) (company.Company, error) {
	slug = normalizeSlug(slug)
	if slug == "" {
		return company.Company{}, ErrMissingInput
	}
	c, err := u.companies.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return company.Company{}, ErrUnknownSlug
		}
		return company.Company{}, ErrInternal
	}
	return c, nil
}

func (u *Companies) ResolveMembership(ctx context.Context, userID, companyID uuid.UUID) (company.Membership, error) {
	m, err := u.companies.FindMembership(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return company.Membership{}, ErrNotFound
		}
		return company.Membership{}, err
	}
	return m, nil
}

func (u *Companies) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
