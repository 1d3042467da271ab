package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"clarityhire/internal/database"
	"clarityhire/internal/domain/application"
	"clarityhire/internal/domain/form"
	"clarityhire/internal/domain/job"
	"clarityhire/internal/infrastructure/blob"
	"clarityhire/internal/repository"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ResumeUpload is a resume file posted with an application.
type ResumeUpload struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

type SubmitInput struct {
	JobID     string
	ResumeID  string
	NewResume *ResumeUpload
	// Answers is the serialized answers mapping; nil means the field was not sent.
	Answers *string
}

type SubmitResult struct {
	ApplicationID uuid.UUID
	JobID         uuid.UUID
	ResumeID      uuid.UUID
}

// ApplicationEvent is published after a submission commits.
type ApplicationEvent struct {
	ApplicationID uuid.UUID `json:"applicationId"`
	JobID         uuid.UUID `json:"jobId"`
	JobTitle      string    `json:"jobTitle"`
	UserID        uuid.UUID `json:"userId"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

type ApplicationPublisher interface {
	PublishApplication(companyID uuid.UUID, ev ApplicationEvent)
}

type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

type DraftInput struct {
	ResumeSelection string
	ResumeID        string
	NewResumeFile   *form.FileInfo
	Answers         *string
}

type ApplicationUsecase interface {
	Submit(ctx context.Context, s Session, in SubmitInput) (SubmitResult, error)
	ValidateDraft(ctx context.Context, s Session, jobID uuid.UUID, in DraftInput) error
	ListResumes(ctx context.Context, s Session) ([]application.Resume, error)
	ListForJob(ctx context.Context, s Session, jobID uuid.UUID) ([]application.Application, error)
}

type Applications struct {
	db           database.DB
	jobs         repository.JobRepository
	resumes      repository.ResumeRepository
	applications repository.ApplicationRepository
	blobs        BlobStore
	publisher    ApplicationPublisher
	logger       *log.Logger
	now          func() time.Time
}

func NewApplicationUsecase(
	db database.DB,
	jobs repository.JobRepository,
	resumes repository.ResumeRepository,
	applications repository.ApplicationRepository,
	blobs BlobStore,
	publisher ApplicationPublisher,
	logger *log.Logger,
) *Applications {
	return &Applications{
		db:           db,
		jobs:         jobs,
		resumes:      resumes,
		applications: applications,
		blobs:        blobs,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

// uploaded tracks what must be undone when a submission fails after the
// resume file was stored.
type uploaded struct {
	url      string
	resumeID uuid.UUID
}

func (u *Applications) Submit(ctx context.Context, s Session, in SubmitInput) (_ SubmitResult, err error) {
	if !s.Authenticated() {
		return SubmitResult{}, ErrAuthenticationRequired
	}
	if strings.TrimSpace(in.JobID) == "" {
		return SubmitResult{}, ErrMissingJobID
	}
	if in.NewResume == nil && strings.TrimSpace(in.ResumeID) == "" {
		return SubmitResult{}, ErrMissingResume
	}
	if in.Answers == nil {
		return SubmitResult{}, ErrMissingAnswers
	}

	rawAnswers, perr := form.ParseAnswers(*in.Answers)
	if perr != nil {
		return SubmitResult{}, NewValidationError(map[string]string{form.AnswersField: form.MsgMalformedAnswers})
	}

	var file []byte
	if in.NewResume != nil {
		var msg string
		file, msg, err = readResume(in.NewResume)
		if err != nil {
			u.logf("[Application] reading resume failed | user_id=%s err=%v", s.UserID, err)
			return SubmitResult{}, ErrInternal
		}
		if msg != "" {
			return SubmitResult{}, NewValidationError(map[string]string{form.FieldNewResumeFile: msg})
		}
	}

	var up *uploaded
	defer func() {
		if err != nil && up != nil {
			u.compensate(ctx, s.UserID, up)
		}
	}()

	resumeID, up, err := u.resolveResume(ctx, s.UserID, in, file)
	if err != nil {
		return SubmitResult{}, err
	}

	jobID, perr := uuid.Parse(strings.TrimSpace(in.JobID))
	if perr != nil {
		return SubmitResult{}, NewValidationError(map[string]string{form.FieldJobID: form.MsgInvalidJobID})
	}
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return SubmitResult{}, ErrNotFound
		}
		u.logf("[Application] loading job failed | job_id=%s err=%v", jobID, err)
		return SubmitResult{}, ErrInternal
	}
	if j.Status != job.StatusPublished {
		return SubmitResult{}, ErrNotFound
	}

	schema := form.Build(j.Questions)
	answers, fieldErrs := schema.ValidateServer(form.ServerSubmission{
		JobID:    jobID.String(),
		ResumeID: resumeID.String(),
		Answers:  rawAnswers,
	})
	if len(fieldErrs) > 0 {
		return SubmitResult{}, NewValidationError(fieldErrs)
	}

	app := application.Application{
		ID:       uuid.New(),
		UserID:   s.UserID,
		JobID:    jobID,
		ResumeID: resumeID,
		Status:   application.StatusSubmitted,
		Answers:  make([]application.Answer, 0, len(answers)),
	}
	for _, a := range answers {
		app.Answers = append(app.Answers, application.Answer{
			ID:            uuid.New(),
			ApplicationID: app.ID,
			QuestionID:    a.QuestionID,
			Values:        a.Values,
		})
	}

	err = database.InTx(ctx, u.db, func(tx database.Tx) error {
		return u.applications.Create(ctx, tx, app)
	})
	if err != nil {
		u.logf("[Application] transaction failed | job_id=%s user_id=%s err=%v", jobID, s.UserID, err)
		return SubmitResult{}, ErrPersistence
	}

	if u.publisher != nil {
		u.publisher.PublishApplication(j.CompanyID, ApplicationEvent{
			ApplicationID: app.ID,
			JobID:         jobID,
			JobTitle:      j.Title,
			UserID:        s.UserID,
			SubmittedAt:   u.now().UTC(),
		})
	}

	return SubmitResult{ApplicationID: app.ID, JobID: jobID, ResumeID: resumeID}, nil
}

func (u *Applications) resolveResume(ctx context.Context, userID uuid.UUID, in SubmitInput, file []byte) (uuid.UUID, *uploaded, error) {
	if in.NewResume != nil {
		url, err := u.blobs.Put(ctx, blob.NewKey("resumes/"+userID.String(), in.NewResume.Name), bytes.NewReader(file))
		if err != nil {
			u.logf("[Application] resume upload failed | user_id=%s err=%v", userID, err)
			return uuid.Nil, nil, ErrStorage
		}
		up := &uploaded{url: url}

		r, err := u.resumes.Create(ctx, application.Resume{
			ID:     uuid.New(),
			UserID: userID,
			URL:    url,
			Name:   resumeName(in.NewResume.Name),
		})
		if err != nil {
			u.logf("[Application] resume row failed | user_id=%s err=%v", userID, err)
			return uuid.Nil, up, ErrPersistence
		}
		up.resumeID = r.ID
		return r.ID, up, nil
	}

	id, err := uuid.Parse(strings.TrimSpace(in.ResumeID))
	if err != nil {
		return uuid.Nil, nil, NewValidationError(map[string]string{form.FieldResumeID: form.MsgInvalidResumeID})
	}
	r, err := u.resumes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return uuid.Nil, nil, ErrInvalidResume
		}
		u.logf("[Application] resume lookup failed | resume_id=%s err=%v", id, err)
		return uuid.Nil, nil, ErrInternal
	}
	if r.UserID != userID {
		return uuid.Nil, nil, ErrInvalidResume
	}
	return r.ID, nil, nil
}

// compensate removes the resume row and blob created by a failed submission.
// Failures are logged only.
func (u *Applications) compensate(ctx context.Context, userID uuid.UUID, up *uploaded) {
	ctx = context.WithoutCancel(ctx)
	if up.resumeID != uuid.Nil {
		if err := u.resumes.Delete(ctx, up.resumeID); err != nil {
			u.logf("[Application] cleanup resume row failed | user_id=%s resume_id=%s err=%v", userID, up.resumeID, err)
		}
	}
	if err := u.blobs.Delete(ctx, up.url); err != nil {
		u.logf("[Application] cleanup blob failed | user_id=%s url=%s err=%v", userID, up.url, err)
	}
}

// readResume buffers the upload and checks its size and sniffed format. A
// non-empty message means the file was rejected.
func readResume(f *ResumeUpload) ([]byte, string, error) {
	if f.Body == nil || f.Size == 0 {
		return nil, form.MsgUploadResume, nil
	}
	if f.Size > form.MaxResumeSize {
		return nil, form.MsgResumeTooLarge, nil
	}

	b, err := io.ReadAll(io.LimitReader(f.Body, form.MaxResumeSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(b) == 0 {
		return nil, form.MsgUploadResume, nil
	}
	if len(b) > form.MaxResumeSize {
		return nil, form.MsgResumeTooLarge, nil
	}

	for mt := mimetype.Detect(b); mt != nil; mt = mt.Parent() {
		if form.AllowedResumeType(mt.String()) {
			return b, "", nil
		}
	}
	return nil, form.MsgResumeType, nil
}

func resumeName(filename string) string {
	name := strings.TrimSpace(filename)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "resume"
	}
	return name
}

// ValidateDraft runs the client-facing schema without side effects.
func (u *Applications) ValidateDraft(ctx context.Context, s Session, jobID uuid.UUID, in DraftInput) error {
	if !s.Authenticated() {
		return ErrAuthenticationRequired
	}
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrNotFound
		}
		u.logf("[Application] loading job for draft failed | job_id=%s err=%v", jobID, err)
		return ErrInternal
	}
	if j.Status != job.StatusPublished {
		return ErrNotFound
	}

	raw := map[string]string{}
	answers := ""
	if in.Answers != nil {
		answers = *in.Answers
	}
	parsed, perr := form.ParseAnswers(answers)
	if perr != nil {
		raw[form.AnswersField] = form.MsgMalformedAnswers
		return NewValidationError(raw)
	}

	_, fieldErrs := form.Build(j.Questions).ValidateClient(form.ClientSubmission{
		ResumeSelection: form.ResumeSelection(in.ResumeSelection),
		ResumeID:        in.ResumeID,
		NewResumeFile:   in.NewResumeFile,
		Answers:         parsed,
	})
	if len(fieldErrs) > 0 {
		return NewValidationError(fieldErrs)
	}
	return nil
}

func (u *Applications) ListResumes(ctx context.Context, s Session) ([]application.Resume, error) {
	if !s.Authenticated() {
		return nil, ErrAuthenticationRequired
	}
	items, err := u.resumes.ListByUser(ctx, s.UserID)
	if err != nil {
		u.logf("[Application] listing resumes failed | user_id=%s err=%v", s.UserID, err)
		return nil, ErrInternal
	}
	return items, nil
}

// ListForJob returns the applications received for one of the recruiter's jobs.
func (u *Applications) ListForJob(ctx context.Context, s Session, jobID uuid.UUID) ([]application.Application, error) {
	companyID, err := s.RecruiterCompany()
	if err != nil {
		return nil, err
	}
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}
	if j.CompanyID != companyID {
		return nil, ErrNotFound
	}

	items, err := u.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Applications) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
