package usecase

import (
	"context"
	"errors"

	"clarityhire/internal/domain/company"
	"clarityhire/internal/domain/user"
	"clarityhire/internal/pkg/jwt"
	"clarityhire/internal/repository"
	ucauth "clarityhire/internal/usecase/auth"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

type Tokens struct {
	AccessToken  string
	RefreshToken string
	Identity     jwt.Identity
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, Tokens, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
	IssueTokens(ctx context.Context, u user.User) (Tokens, error)
	Me(ctx context.Context, s Session) (Profile, error)
}

// Profile is the signed-in user plus the membership the session acts for.
type Profile struct {
	User       user.User
	Membership *company.Membership
}

type Auth struct {
	authSvc   *ucauth.Service
	users     user.Repository
	companies repository.CompanyRepository
	jwt       jwt.Service
}

func NewAuthUsecase(users user.Repository, companies repository.CompanyRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(users), users: users, companies: companies, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, Tokens, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	tokens, err := u.IssueTokens(ctx, usr)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	return usr, tokens, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, Tokens, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	tokens, err := u.IssueTokens(ctx, usr)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	return usr, tokens, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return Tokens{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Tokens{}, ErrInvalidRefreshToken
		}
		return Tokens{}, ErrInternal
	}
	return u.IssueTokens(ctx, usr)
}

func (u *Auth) Me(ctx context.Context, s Session) (Profile, error) {
	if !s.Authenticated() {
		return Profile{}, ErrAuthenticationRequired
	}

	usr, err := u.users.GetUserByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, ErrInternal
	}
	usr.PasswordHash = ""
	p := Profile{User: usr}

	if s.CompanyID == nil || u.companies == nil {
		return p, nil
	}
	m, err := u.companies.FindMembership(ctx, s.UserID, *s.CompanyID)
	switch {
	case err == nil:
		p.Membership = &m
	case errors.Is(err, repository.ErrMembershipNotFound):
	default:
		return Profile{}, ErrInternal
	}
	return p, nil
}

// IssueTokens signs a token pair. Recruiters get their first membership as
// the active company.
func (u *Auth) IssueTokens(ctx context.Context, usr user.User) (Tokens, error) {
	id := jwt.Identity{UserID: usr.ID, Email: usr.Email}

	if u.companies != nil {
		m, err := u.companies.FirstMembership(ctx, usr.ID)
		switch {
		case err == nil:
			id = withMembership(id, m)
		case errors.Is(err, repository.ErrMembershipNotFound):
		default:
			return Tokens{}, ErrInternal
		}
	}

	access, err := u.jwt.GenerateAccessToken(id)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	return Tokens{AccessToken: access, RefreshToken: refresh, Identity: id}, nil
}

func withMembership(id jwt.Identity, m company.Membership) jwt.Identity {
	companyID := m.CompanyID
	if companyID == uuid.Nil {
		return id
	}
	id.IsRecruiter = true
	id.ActiveCompanyID = &companyID
	return id
}
