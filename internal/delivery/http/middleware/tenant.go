package middleware

import (
	"context"
	"log"
	"strings"

	"clarityhire/internal/domain/company"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MembershipResolver interface {
	ResolveMembership(ctx context.Context, userID, companyID uuid.UUID) (company.Membership, error)
}

const CtxMembershipKey = "membership"

var tenantSkipPrefixes = []string{"/api", "/ws", "/blobs", "/health"}

// TenantMiddleware keeps recruiter sessions inside their /{slug}/{memberId}
// namespace. It never blocks a request: lookups that fail are logged and the
// request continues, so page handlers must still authorize on their own.
type TenantMiddleware struct {
	memberships MembershipResolver
	logger      *log.Logger
}

func NewTenantMiddleware(memberships MembershipResolver, logger *log.Logger) *TenantMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &TenantMiddleware{memberships: memberships, logger: logger}
}

func (m *TenantMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		path := c.Path()
		if skipTenant(path) {
			return c.Next()
		}

		s := SessionFrom(c)
		if !s.Authenticated() || !s.IsRecruiter {
			return c.Next()
		}
		if s.CompanyID == nil || *s.CompanyID == uuid.Nil {
			m.logger.Printf("[Tenant] recruiter session missing company | user_id=%s", s.UserID)
			return c.Next()
		}

		membership, err := m.memberships.ResolveMembership(c.Context(), s.UserID, *s.CompanyID)
		if err != nil {
			m.logger.Printf("[Tenant] membership lookup failed | user_id=%s company_id=%s err=%v", s.UserID, *s.CompanyID, err)
			return c.Next()
		}
		if membership.CompanySlug == "" {
			return c.Next()
		}

		base := membership.BasePath()
		if InNamespace(path, base) {
			c.Locals(CtxMembershipKey, membership)
			return c.Next()
		}

		return c.Redirect().Status(fiber.StatusTemporaryRedirect).To(base + "/dashboard")
	}
}

// InNamespace reports whether path is base itself or below it.
func InNamespace(path, base string) bool {
	return path == base || strings.HasPrefix(path, base+"/")
}

func skipTenant(path string) bool {
	for _, p := range tenantSkipPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
