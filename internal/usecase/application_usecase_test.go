package usecase

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"

	"clarityhire/internal/domain/application"
	"clarityhire/internal/domain/form"
	"clarityhire/internal/domain/job"
	"clarityhire/internal/domain/question"

	"github.com/google/uuid"
)

const pdfBody = "%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF"

type submitFixture struct {
	db        *fakeDB
	questions *fakeQuestionRepo
	jobs      *fakeJobRepo
	resumes   *fakeResumeRepo
	apps      *fakeApplicationRepo
	blobs     *fakeBlobs
	publisher *fakePublisher
	uc        *Applications

	companyID uuid.UUID
	jobID     uuid.UUID
	q1, q2    uuid.UUID
	applicant Session
}

// newSubmitFixture builds a published job with a required TEXT question and
// an optional CHECKBOX question with options A and B.
func newSubmitFixture(t *testing.T) *submitFixture {
	t.Helper()

	f := &submitFixture{
		db:        &fakeDB{},
		questions: &fakeQuestionRepo{},
		resumes:   newFakeResumeRepo(),
		apps:      &fakeApplicationRepo{},
		blobs:     newFakeBlobs(),
		publisher: &fakePublisher{},
		companyID: uuid.New(),
		jobID:     uuid.New(),
		q1:        uuid.New(),
		q2:        uuid.New(),
		applicant: Session{UserID: uuid.New()},
	}
	f.questions.items = []question.Question{
		{ID: f.q1, CompanyID: f.companyID, Question: "Why us?", Type: question.TypeText},
		{ID: f.q2, CompanyID: f.companyID, Question: "Stack", Type: question.TypeCheckbox, Options: []string{"A", "B"}},
	}
	f.jobs = newFakeJobRepo(f.questions)
	f.jobs.jobs[f.jobID] = job.Job{ID: f.jobID, CompanyID: f.companyID, Title: "Engineer", Status: job.StatusPublished}
	f.jobs.links[f.jobID] = []job.QuestionSelection{{QuestionID: f.q1, Required: true}, {QuestionID: f.q2}}

	f.uc = NewApplicationUsecase(f.db, f.jobs, f.resumes, f.apps, f.blobs, f.publisher, nil)
	return f
}

func (f *submitFixture) storedResume(owner uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.resumes.items[id] = application.Resume{ID: id, UserID: owner, URL: "/blobs/x.pdf", Name: "x.pdf"}
	return id
}

func strptr(s string) *string { return &s }

func pdfUpload() *ResumeUpload {
	return &ResumeUpload{Name: "cv.pdf", Size: int64(len(pdfBody)), ContentType: "application/pdf", Body: strings.NewReader(pdfBody)}
}

func TestSubmit_AcceptsRequiredTextAndStoresEmptyCheckbox(t *testing.T) {
	f := newSubmitFixture(t)
	resumeID := f.storedResume(f.applicant.UserID)

	res, err := f.uc.Submit(context.Background(), f.applicant, SubmitInput{
		JobID:    f.jobID.String(),
		ResumeID: resumeID.String(),
		Answers:  strptr(`{"` + f.q1.String() + `":"hello"}`),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.ResumeID != resumeID || res.JobID != f.jobID {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(f.apps.items) != 1 {
		t.Fatalf("expected 1 application, got %d", len(f.apps.items))
	}

	answers := f.apps.items[0].Answers
	if len(answers) != 2 {
		t.Fatalf("expected an answer row per job question, got %d", len(answers))
	}
	if answers[0].QuestionID != f.q1 || len(answers[0].Values) != 1 || answers[0].Values[0] != "hello" {
		t.Fatalf("unexpected Q1 answer: %+v", answers[0])
	}
	if answers[1].QuestionID != f.q2 || answers[1].Values == nil || len(answers[1].Values) != 0 {
		t.Fatalf("expected Q2 stored as empty list, got %+v", answers[1])
	}
	if f.db.commits != 1 {
		t.Fatalf("expected one commit, got %d", f.db.commits)
	}
	if len(f.publisher.events[f.companyID]) != 1 {
		t.Fatalf("expected an application event for the company")
	}
}

func TestSubmit_RejectsMissingRequiredAndUnknownKeys(t *testing.T) {
	f := newSubmitFixture(t)
	resumeID := f.storedResume(f.applicant.UserID)

	_, err := f.uc.Submit(context.Background(), f.applicant, SubmitInput{
		JobID: f.jobID.String(), ResumeID: resumeID.String(), Answers: strptr(`{}`),
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fields[form.AnswerPath(f.q1.String())] != form.MsgRequired {
		t.Fatalf("expected required error on Q1, got %+v", verr.Fields)
	}

	q3 := uuid.NewString()
	_, err = f.uc.Submit(context.Background(), f.applicant, SubmitInput{
		JobID: f.jobID.String(), ResumeID: resumeID.String(),
		Answers: strptr(`{"` + f.q1.String() + `":"hello","` + q3 + `":"x"}`),
	})
	if !errors.As(err, &verr) || verr.Fields[form.AnswerPath(q3)] != form.MsgUnrecognized {
		t.Fatalf("expected unknown key rejection, got %v", err)
	}
	if len(f.apps.items) != 0 {
		t.Fatalf("expected no applications")
	}
}

func TestSubmit_PreconditionErrors(t *testing.T) {
	f := newSubmitFixture(t)
	ctx := context.Background()
	answers := strptr(`{}`)

	if _, err := f.uc.Submit(ctx, Session{}, SubmitInput{JobID: f.jobID.String(), Answers: answers}); !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	if _, err := f.uc.Submit(ctx, f.applicant, SubmitInput{JobID: " ", ResumeID: uuid.NewString(), Answers: answers}); !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput for job id, got %v", err)
	}
	if _, err := f.uc.Submit(ctx, f.applicant, SubmitInput{JobID: f.jobID.String(), Answers: answers}); !errors.Is(err, ErrMissingResume) {
		t.Fatalf("expected ErrMissingResume, got %v", err)
	}
	if _, err := f.uc.Submit(ctx, f.applicant, SubmitInput{JobID: f.jobID.String(), ResumeID: uuid.NewString()}); !errors.Is(err, ErrMissingAnswers) {
		t.Fatalf("expected ErrMissingAnswers, got %v", err)
	}

	_, err := f.uc.Submit(ctx, f.applicant, SubmitInput{JobID: f.jobID.String(), ResumeID: uuid.NewString(), Answers: strptr("{oops")})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields[form.AnswersField] == "" {
		t.Fatalf("expected answers ValidationError, got %v", err)
	}
}

func TestSubmit_ForeignResumeIsInvalid(t *testing.T) {
	f := newSubmitFixture(t)
	other := f.storedResume(uuid.New())

	_, err := f.uc.Submit(context.Background(), f.applicant, SubmitInput{
		JobID: f.jobID.String(), ResumeID: other.String(), Answers: strptr(`{}`),
	})
	if !errors.Is(err, ErrInvalidResume) {
		t.Fatalf("expected ErrInvalidResume, got %v", err)
	}

	_, err = f.uc.Submit(context.Background(), f.applicant, SubmitInput{
		JobID: f.jobID.String(), ResumeID: uuid.NewString(), Answers: strptr(`{}`),
	})
	if !errors.Is(err, ErrInvalidResume) {
		t.Fatalf("expected ErrInvalidResume for unknown id, got %v", err)
	}
}

func TestSubmit_BadFileNeverUploads(t *testing.T) {
	f := newSubmitFixture(t)

	_, err := f.uc.Submit(context.Background(), f.applicant, SubmitInput{
		JobID: f.jobID.String(),
		NewResume: &ResumeUpload{
			Name: "cv.pdf", Size: 11, ContentType: "application/pdf", Body: strings.NewReader("hello world"),
		},
		Answers: strptr(`{}`),
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields[form.FieldNewResumeFile] != form.MsgResumeType {
		t.Fatalf("expected resume type error, got %v", err)
	}

	_, err = f.uc.Submit(context.Background(), f.applicant, SubmitInput{
		JobID:     f.jobID.String(),
		NewResume: &ResumeUpload{Name: "big.pdf", Size: form.MaxResumeSize + 1, Body: strings.NewReader(pdfBody)},
		Answers:   strptr(`{}`),
	})
	if !errors.As(err, &verr) || verr.Fields[form.FieldNewResumeFile] != form.MsgResumeTooLarge {
		t.Fatalf("expected size error, got %v", err)
	}

	if f.blobs.puts != 0 {
		t.Fatalf("expected no upload, got %d", f.blobs.puts)
	}
}

func TestSubmit_UploadThenSuccessKeepsBlob(t *testing.T) {
	f := newSubmitFixture(t)

	res, err := f.uc.Submit(context.Background(), f.applicant, SubmitInput{
		JobID:     f.jobID.String(),
		NewResume: pdfUpload(),
		Answers:   strptr(`{"` + f.q1.String() + `":"hi","` + f.q2.String() + `":["A"]}`),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(f.blobs.stored) != 1 || len(f.blobs.deleted) != 0 {
		t.Fatalf("expected blob kept, stored=%d deleted=%d", len(f.blobs.stored), len(f.blobs.deleted))
	}
	r, ok := f.resumes.items[res.ResumeID]
	if !ok || r.UserID != f.applicant.UserID || r.Name != "cv.pdf" {
		t.Fatalf("expected resume row for the applicant, got %+v", r)
	}
}

func TestSubmit_ValidationFailureAfterUploadCompensates(t *testing.T) {
	f := newSubmitFixture(t)

	_, err := f.uc.Submit(context.Background(), f.applicant, SubmitInput{
		JobID:     f.jobID.String(),
		NewResume: pdfUpload(),
		Answers:   strptr(`{}`),
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if f.blobs.puts != 1 || len(f.blobs.stored) != 0 || len(f.blobs.deleted) != 1 {
		t.Fatalf("expected uploaded blob to be deleted, puts=%d stored=%d deleted=%d", f.blobs.puts, len(f.blobs.stored), len(f.blobs.deleted))
	}
	if len(f.resumes.items) != 0 || len(f.resumes.deleted) != 1 {
		t.Fatalf("expected created resume row removed")
	}
}

func TestSubmit_TransactionFailureRollsBackAndCompensates(t *testing.T) {
	f := newSubmitFixture(t)
	f.apps.err = errBoom

	_, err := f.uc.Submit(context.Background(), f.applicant, SubmitInput{
		JobID:     f.jobID.String(),
		NewResume: pdfUpload(),
		Answers:   strptr(`{"` + f.q1.String() + `":"hi"}`),
	})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if f.db.rollbacks != 1 || f.db.commits != 0 {
		t.Fatalf("expected rollback only, commits=%d rollbacks=%d", f.db.commits, f.db.rollbacks)
	}
	if len(f.blobs.stored) != 0 || len(f.apps.items) != 0 {
		t.Fatalf("expected no blob and no application left behind")
	}
	if len(f.publisher.events) != 0 {
		t.Fatalf("expected no event on failure")
	}
}

func TestSubmit_StorageFailure(t *testing.T) {
	f := newSubmitFixture(t)
	f.blobs.putErr = errBoom

	_, err := f.uc.Submit(context.Background(), f.applicant, SubmitInput{
		JobID: f.jobID.String(), NewResume: pdfUpload(), Answers: strptr(`{}`),
	})
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if len(f.resumes.items) != 0 {
		t.Fatalf("expected no resume row")
	}
}

func TestSubmit_ConcurrentSubmissionsAreIndependent(t *testing.T) {
	f := newSubmitFixture(t)
	r1 := f.storedResume(f.applicant.UserID)
	r2 := f.storedResume(f.applicant.UserID)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, rid := range []uuid.UUID{r1, r2} {
		wg.Add(1)
		go func(rid uuid.UUID) {
			defer wg.Done()
			_, err := f.uc.Submit(context.Background(), f.applicant, SubmitInput{
				JobID: f.jobID.String(), ResumeID: rid.String(),
				Answers: strptr(`{"` + f.q1.String() + `":"hello"}`),
			})
			errs <- err
		}(rid)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	if len(f.apps.items) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(f.apps.items))
	}
	a, b := f.apps.items[0], f.apps.items[1]
	if a.ID == b.ID || a.ResumeID == b.ResumeID {
		t.Fatalf("expected independent applications")
	}
	seen := map[uuid.UUID]struct{}{}
	for _, app := range f.apps.items {
		for _, ans := range app.Answers {
			if ans.ApplicationID != app.ID {
				t.Fatalf("answer attached to wrong application")
			}
			if _, dup := seen[ans.ID]; dup {
				t.Fatalf("answer row shared between applications")
			}
			seen[ans.ID] = struct{}{}
		}
	}
}

func TestSubmit_UnpublishedJob(t *testing.T) {
	f := newSubmitFixture(t)
	j := f.jobs.jobs[f.jobID]
	j.Status = job.StatusDraft
	f.jobs.jobs[f.jobID] = j
	resumeID := f.storedResume(f.applicant.UserID)

	_, err := f.uc.Submit(context.Background(), f.applicant, SubmitInput{
		JobID: f.jobID.String(), ResumeID: resumeID.String(), Answers: strptr(`{}`),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidateDraft(t *testing.T) {
	f := newSubmitFixture(t)

	err := f.uc.ValidateDraft(context.Background(), f.applicant, f.jobID, DraftInput{
		ResumeSelection: "select",
		Answers:         strptr(`{"` + f.q1.String() + `":""}`),
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fields[form.FieldResumeID] != form.MsgSelectResume {
		t.Fatalf("expected resume selection error, got %+v", verr.Fields)
	}
	if verr.Fields[form.AnswerPath(f.q1.String())] != form.MsgRequired {
		t.Fatalf("expected required error, got %+v", verr.Fields)
	}

	err = f.uc.ValidateDraft(context.Background(), f.applicant, f.jobID, DraftInput{
		ResumeSelection: "upload",
		NewResumeFile:   &form.FileInfo{Name: "cv.pdf", Size: 100, ContentType: "application/pdf"},
		Answers:         strptr(`{"` + f.q1.String() + `":"ok"}`),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.blobs.puts != 0 || len(f.apps.items) != 0 {
		t.Fatalf("expected no side effects")
	}
}

func TestValidateDraft_UnpublishedJobIsNotFound(t *testing.T) {
	for _, status := range []job.Status{job.StatusDraft, job.StatusArchived} {
		f := newSubmitFixture(t)
		j := f.jobs.jobs[f.jobID]
		j.Status = status
		f.jobs.jobs[f.jobID] = j

		err := f.uc.ValidateDraft(context.Background(), f.applicant, f.jobID, DraftInput{
			ResumeSelection: "select",
			Answers:         strptr(`{}`),
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("status %s: expected ErrNotFound, got %v", status, err)
		}
	}
}

func TestApplications_RepositoryFailuresAreLogged(t *testing.T) {
	f := newSubmitFixture(t)
	var buf bytes.Buffer
	uc := NewApplicationUsecase(f.db, f.jobs, f.resumes, f.apps, f.blobs, f.publisher, log.New(&buf, "", 0))

	f.jobs.getErr = errors.New("conn reset")
	err := uc.ValidateDraft(context.Background(), f.applicant, f.jobID, DraftInput{Answers: strptr(`{}`)})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if !strings.Contains(buf.String(), "[Application] loading job for draft failed") || !strings.Contains(buf.String(), "conn reset") {
		t.Fatalf("expected draft failure to be logged, got %q", buf.String())
	}

	buf.Reset()
	f.resumes.listErr = errors.New("pool closed")
	if _, err := uc.ListResumes(context.Background(), f.applicant); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if !strings.Contains(buf.String(), "[Application] listing resumes failed") || !strings.Contains(buf.String(), "pool closed") {
		t.Fatalf("expected resume failure to be logged, got %q", buf.String())
	}
}

func TestListForJob_RequiresOwningRecruiter(t *testing.T) {
	f := newSubmitFixture(t)
	other := uuid.New()

	_, err := f.uc.ListForJob(context.Background(), Session{UserID: uuid.New(), IsRecruiter: true, CompanyID: &other}, f.jobID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err = f.uc.ListForJob(context.Background(), f.applicant, f.jobID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	owner := f.companyID
	items, err := f.uc.ListForJob(context.Background(), Session{UserID: uuid.New(), IsRecruiter: true, CompanyID: &owner}, f.jobID)
	if err != nil || len(items) != 0 {
		t.Fatalf("unexpected result: %v %v", items, err)
	}
}
