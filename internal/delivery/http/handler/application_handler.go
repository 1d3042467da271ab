package handler

import (
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"clarityhire/internal/delivery/http/dto"
	"clarityhire/internal/delivery/http/middleware"
	httpresp "clarityhire/internal/delivery/http/response"
	"clarityhire/internal/domain/form"
	"clarityhire/internal/pkg/response"
	"clarityhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	msgApplicationSubmitted = "Application submitted successfully!"
	msgUnexpected           = "An unexpected error occurred. Please try again."
)

type ApplicationHandler struct {
	uc     usecase.ApplicationUsecase
	logger *log.Logger
}

func NewApplicationHandler(uc usecase.ApplicationUsecase, logger *log.Logger) *ApplicationHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &ApplicationHandler{uc: uc, logger: logger}
}

// HandleSubmit accepts the multipart application form and always answers
// with an ActionResult, never the error middleware envelope.
func (h *ApplicationHandler) HandleSubmit(c fiber.Ctx) error {
	s := middleware.SessionFrom(c)

	mf, err := c.MultipartForm()
	if err != nil {
		return httpresp.ActionFailed(c, fiber.StatusBadRequest, "Invalid form submission.", nil)
	}

	in := usecase.SubmitInput{
		JobID:    firstValue(mf, form.FieldJobID),
		ResumeID: firstValue(mf, form.FieldResumeID),
	}
	if vals, ok := mf.Value[form.AnswersField]; ok && len(vals) > 0 {
		answers := vals[0]
		in.Answers = &answers
	}

	if fh := firstFile(mf, form.FieldNewResumeFile); fh != nil {
		f, err := fh.Open()
		if err != nil {
			h.logger.Printf("[Application] open upload failed | user_id=%s err=%v", s.UserID, err)
			return httpresp.ActionFailed(c, fiber.StatusInternalServerError, msgUnexpected, nil)
		}
		defer f.Close()

		in.NewResume = &usecase.ResumeUpload{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Body:        f,
		}
	}

	res, err := h.uc.Submit(c.Context(), s, in)
	if err != nil {
		return h.submitFailed(c, s, err)
	}

	h.logger.Printf("[Application] submitted | application_id=%s job_id=%s user_id=%s", res.ApplicationID, res.JobID, s.UserID)
	return httpresp.ActionOK(c, fiber.StatusCreated, msgApplicationSubmitted)
}

func (h *ApplicationHandler) submitFailed(c fiber.Ctx, s usecase.Session, err error) error {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		return httpresp.ActionFailed(c, fiber.StatusUnprocessableEntity, "Invalid application data.", verr.Fields)
	}

	switch {
	case errors.Is(err, usecase.ErrAuthenticationRequired):
		return httpresp.ActionFailed(c, fiber.StatusUnauthorized, "Authentication required.", nil)
	case errors.Is(err, usecase.ErrMissingJobID):
		return httpresp.ActionFailed(c, fiber.StatusBadRequest, "Job ID is missing.", nil)
	case errors.Is(err, usecase.ErrMissingResume):
		return httpresp.ActionFailed(c, fiber.StatusBadRequest, "A resume is required.", nil)
	case errors.Is(err, usecase.ErrMissingAnswers):
		return httpresp.ActionFailed(c, fiber.StatusBadRequest, "Application answers are missing.", nil)
	case errors.Is(err, usecase.ErrInvalidResume):
		return httpresp.ActionFailed(c, fiber.StatusBadRequest, "Invalid resume selected.", nil)
	case errors.Is(err, usecase.ErrNotFound):
		return httpresp.ActionFailed(c, fiber.StatusNotFound, "This job is not accepting applications.", nil)
	}

	h.logger.Printf("[Application] submit failed | user_id=%s err=%v", s.UserID, err)
	return httpresp.ActionFailed(c, fiber.StatusInternalServerError, msgUnexpected, nil)
}

type draftRequest struct {
	ResumeSelection string          `json:"resumeSelection"`
	ResumeID        string          `json:"resumeId"`
	NewResumeFile   *form.FileInfo  `json:"newResumeFile"`
	Answers         json.RawMessage `json:"answers"`
}

// HandleValidateDraft checks a draft against the job's client-facing schema
// without storing anything.
func (h *ApplicationHandler) HandleValidateDraft(c fiber.Ctx) error {
	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		return err
	}
	var req draftRequest
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	in := usecase.DraftInput{
		ResumeSelection: req.ResumeSelection,
		ResumeID:        req.ResumeID,
		NewResumeFile:   req.NewResumeFile,
		Answers:         answersText(req.Answers),
	}
	if err := h.uc.ValidateDraft(c.Context(), middleware.SessionFrom(c), jobID, in); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]bool{"valid": true})
}

func (h *ApplicationHandler) HandleListResumes(c fiber.Ctx) error {
	items, err := h.uc.ListResumes(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeList(items))
}

// answersText accepts answers either as an object or as the serialized
// string the multipart form carries.
func answersText(raw json.RawMessage) *string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	return &trimmed
}

func firstValue(mf *multipart.Form, key string) string {
	if vals := mf.Value[key]; len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}

// firstFile ignores the empty part browsers send when no file was chosen.
func firstFile(mf *multipart.Form, key string) *multipart.FileHeader {
	files := mf.File[key]
	if len(files) == 0 {
		return nil
	}
	fh := files[0]
	if fh.Filename == "" && fh.Size == 0 {
		return nil
	}
	return fh
}
