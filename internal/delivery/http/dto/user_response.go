package dto

import (
	"time"

	"clarityhire/internal/domain/user"
	"clarityhire/internal/usecase"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type SessionResponse struct {
	User            UserResponse `json:"user"`
	AccessToken     string       `json:"accessToken"`
	RefreshToken    string       `json:"refreshToken"`
	IsRecruiter     bool         `json:"isRecruiter"`
	ActiveCompanyID *uuid.UUID   `json:"activeCompanyId"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func NewSessionResponse(u user.User, t usecase.Tokens) SessionResponse {
	return SessionResponse{
		User:            NewUserResponse(u),
		AccessToken:     t.AccessToken,
		RefreshToken:    t.RefreshToken,
		IsRecruiter:     t.Identity.IsRecruiter,
		ActiveCompanyID: t.Identity.ActiveCompanyID,
	}
}

type ProfileResponse struct {
	User       UserResponse        `json:"user"`
	Membership *MembershipResponse `json:"membership"`
}

func NewProfileResponse(p usecase.Profile) ProfileResponse {
	out := ProfileResponse{User: NewUserResponse(p.User)}
	if p.Membership != nil {
		m := NewMembershipResponse(*p.Membership)
		out.Membership = &m
	}
	return out
}
