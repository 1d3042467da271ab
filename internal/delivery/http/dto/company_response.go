package dto

import (
	"time"

	"clarityhire/internal/domain/company"

	"github.com/google/uuid"
)

type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Size        string    `json:"size"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	WebsiteURL  *string   `json:"websiteUrl"`
	Image       *string   `json:"image"`
	CoverImage  *string   `json:"coverImage"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MembershipResponse struct {
	MemberID    uuid.UUID `json:"memberId"`
	CompanyID   uuid.UUID `json:"companyId"`
	CompanySlug string    `json:"companySlug"`
	Role        string    `json:"role"`
	BasePath    string    `json:"basePath"`
}

func NewCompanyResponse(c company.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Size:        string(c.Size),
		Description: c.Description,
		Location:    c.Location,
		WebsiteURL:  c.WebsiteURL,
		Image:       c.Image,
		CoverImage:  c.CoverImage,
		CreatedAt:   c.CreatedAt,
	}
}

func NewCompanyList(items []company.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCompanyResponse(c))
	}
	return out
}

func NewMembershipResponse(m company.Membership) MembershipResponse {
	return MembershipResponse{
		MemberID:    m.MemberID,
		CompanyID:   m.CompanyID,
		CompanySlug: m.CompanySlug,
		Role:        string(m.Role),
		BasePath:    m.BasePath(),
	}
}
