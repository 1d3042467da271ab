package handler

import (
	"errors"

	"clarityhire/internal/delivery/http/dto"
	"clarityhire/internal/delivery/http/middleware"
	"clarityhire/internal/domain/company"
	"clarityhire/internal/domain/job"
	"clarityhire/internal/pkg/response"
	"clarityhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// PageHandler serves the JSON data behind the /{companySlug}/... pages.
type PageHandler struct {
	companies    usecase.CompanyUsecase
	jobs         usecase.JobUsecase
	applications usecase.ApplicationUsecase
}

func NewPageHandler(companies usecase.CompanyUsecase, jobs usecase.JobUsecase, applications usecase.ApplicationUsecase) *PageHandler {
	return &PageHandler{companies: companies, jobs: jobs, applications: applications}
}

func (h *PageHandler) HandleAvailableJobs(c fiber.Ctx) error {
	co, items, err := h.jobs.ListAvailable(c.Context(), c.Params("companySlug"))
	if err != nil {
		return mapUsecaseError(err)
	}
	data := map[string]any{
		"company": dto.NewCompanyResponse(co),
		"jobs":    dto.NewJobList(items),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *PageHandler) HandleJobDetails(c fiber.Ctx) error {
	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		return err
	}

	s := middleware.SessionFrom(c)
	details, err := h.jobs.Get(c.Context(), s, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	if details.Company.Slug != c.Params("companySlug") {
		return mapUsecaseError(usecase.ErrNotFound)
	}

	data := map[string]any{
		"job":     dto.NewJobResponse(details.Job),
		"company": dto.NewCompanyResponse(details.Company),
	}
	if s.Authenticated() && details.Job.Status == job.StatusPublished {
		resumes, err := h.applications.ListResumes(c.Context(), s)
		if err != nil {
			return mapUsecaseError(err)
		}
		data["resumes"] = dto.NewResumeList(resumes)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *PageHandler) HandleDashboard(c fiber.Ctx) error {
	m, err := h.recruiterMembership(c)
	if err != nil {
		return err
	}

	n, err := h.jobs.CountPublished(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	data := map[string]any{
		"membership":    dto.NewMembershipResponse(m),
		"publishedJobs": n,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *PageHandler) HandleManageJobs(c fiber.Ctx) error {
	m, err := h.recruiterMembership(c)
	if err != nil {
		return err
	}

	items, err := h.jobs.ListForCompany(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	data := map[string]any{
		"membership": dto.NewMembershipResponse(m),
		"jobs":       dto.NewManagedJobList(items),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

// recruiterMembership re-checks that the path namespace belongs to the
// caller. The tenant middleware fails open, so this is the actual guard.
func (h *PageHandler) recruiterMembership(c fiber.Ctx) (company.Membership, error) {
	s := middleware.SessionFrom(c)
	companyID, err := s.RecruiterCompany()
	if err != nil {
		return company.Membership{}, mapUsecaseError(err)
	}

	m, err := h.companies.ResolveMembership(c.Context(), s.UserID, companyID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			return company.Membership{}, mapUsecaseError(usecase.ErrForbidden)
		}
		return company.Membership{}, mapUsecaseError(err)
	}
	if m.CompanySlug != c.Params("companySlug") || m.MemberID.String() != c.Params("memberId") {
		return company.Membership{}, mapUsecaseError(usecase.ErrForbidden)
	}
	return m, nil
}
