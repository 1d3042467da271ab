package company

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleRecruiter Role = "RECRUITER"
)

type Size string

const (
	SizeSolo       Size = "SOLO"
	SizeSmall      Size = "SMALL"
	SizeMedium     Size = "MEDIUM"
	SizeLarge      Size = "LARGE"
	SizeEnterprise Size = "ENTERPRISE"
)

var validSizes = map[Size]struct{}{
	SizeSolo: {}, SizeSmall: {}, SizeMedium: {}, SizeLarge: {}, SizeEnterprise: {},
}

func (s Size) Valid() bool {
	_, ok := validSizes[s]
	return ok
}

type Company struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	OwnerID     uuid.UUID
	Size        Size
	Description string
	Location    string
	WebsiteURL  *string
	Image       *string
	CoverImage  *string
	CreatedAt   time.Time
}

type Member struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      Role
	CreatedAt time.Time
}

// Membership is what the tenant router needs to place a recruiter.
type Membership struct {
	MemberID    uuid.UUID
	CompanyID   uuid.UUID
	CompanySlug string
	Role        Role
}

// BasePath is the recruiter namespace, /{companySlug}/{memberId}.
func (m Membership) BasePath() string {
	return "/" + m.CompanySlug + "/" + m.MemberID.String()
}

const SuggestionCount = 3

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func ValidSlug(slug string) bool {
	return len(slug) >= 3 && slugRe.MatchString(slug)
}

// SlugCandidates returns {slug}-1 .. {slug}-N.
func SlugCandidates(slug string) []string {
	out := make([]string, 0, SuggestionCount)
	for i := 1; i <= SuggestionCount; i++ {
		out = append(out, fmt.Sprintf("%s-%d", slug, i))
	}
	return out
}

// FilterTaken drops every candidate present in taken, preserving order.
func FilterTaken(candidates []string, taken map[string]struct{}) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := taken[c]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}
