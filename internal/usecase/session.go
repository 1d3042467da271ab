package usecase

import (
	"github.com/google/uuid"
)

// Session is the caller identity handed to usecases by the transport layer.
type Session struct {
	UserID      uuid.UUID
	Email       string
	IsRecruiter bool
	CompanyID   *uuid.UUID
}

func (s Session) Authenticated() bool {
	return s.UserID != uuid.Nil
}

// RecruiterCompany returns the company the session acts for.
func (s Session) RecruiterCompany() (uuid.UUID, error) {
	if !s.Authenticated() {
		return uuid.Nil, ErrAuthenticationRequired
	}
	if !s.IsRecruiter || s.CompanyID == nil || *s.CompanyID == uuid.Nil {
		return uuid.Nil, ErrForbidden
	}
	return *s.CompanyID, nil
}
