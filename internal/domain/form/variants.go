package form

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxResumeSize = 5 * 1024 * 1024

	MsgSelectResume      = "Please select a resume."
	MsgUploadResume      = "Please upload a resume file."
	MsgResumeTooLarge    = "Max file size is 5MB."
	MsgResumeType        = "Only .pdf, .doc, and .docx formats are supported."
	MsgResumeSelection   = "Please choose how to provide your resume."
	MsgInvalidJobID      = "Invalid Job ID format."
	MsgInvalidResumeID   = "Invalid Resume ID format."
	MsgMalformedAnswers  = "Answers could not be read."
	FieldResumeID        = "resumeId"
	FieldNewResumeFile   = "newResumeFile"
	FieldResumeSelection = "resumeSelection"
	FieldJobID           = "jobId"
)

var resumeMIMETypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// AllowedResumeType reports whether contentType (parameters ignored) is a
// supported resume format.
func AllowedResumeType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	_, ok := resumeMIMETypes[ct]
	return ok
}

type ResumeSelection string

const (
	ResumeSelect ResumeSelection = "select"
	ResumeUpload ResumeSelection = "upload"
)

type FileInfo struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// ClientSubmission is what the applicant form posts before anything is
// persisted.
type ClientSubmission struct {
	ResumeSelection ResumeSelection
	ResumeID        string
	NewResumeFile   *FileInfo
	Answers         map[string]json.RawMessage
}

// ServerSubmission carries identifiers that are already resolved.
type ServerSubmission struct {
	JobID    string
	ResumeID string
	Answers  map[string]json.RawMessage
}

// ValidateResumeFile applies the size and format limits to an upload.
func ValidateResumeFile(f *FileInfo) (string, bool) {
	if f == nil || f.Size <= 0 {
		return MsgUploadResume, false
	}
	if f.Size > MaxResumeSize {
		return MsgResumeTooLarge, false
	}
	if !AllowedResumeType(f.ContentType) {
		return MsgResumeType, false
	}
	return "", true
}

// ValidateClient runs the client-facing variant.
func (s *AnswersSchema) ValidateClient(in ClientSubmission) ([]Answer, FieldErrors) {
	errs := FieldErrors{}

	switch in.ResumeSelection {
	case ResumeSelect:
		if strings.TrimSpace(in.ResumeID) == "" {
			errs.Add(FieldResumeID, MsgSelectResume)
		}
	case ResumeUpload:
		if msg, ok := ValidateResumeFile(in.NewResumeFile); !ok {
			errs.Add(FieldNewResumeFile, msg)
		}
	default:
		errs.Add(FieldResumeSelection, MsgResumeSelection)
	}

	answers, answerErrs := s.Validate(in.Answers)
	for k, v := range answerErrs {
		errs.Add(k, v)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return answers, nil
}

// ValidateServer runs the server-facing variant.
func (s *AnswersSchema) ValidateServer(in ServerSubmission) ([]Answer, FieldErrors) {
	errs := FieldErrors{}

	if _, err := uuid.Parse(strings.TrimSpace(in.JobID)); err != nil {
		errs.Add(FieldJobID, MsgInvalidJobID)
	}
	if _, err := uuid.Parse(strings.TrimSpace(in.ResumeID)); err != nil {
		errs.Add(FieldResumeID, MsgInvalidResumeID)
	}

	answers, answerErrs := s.Validate(in.Answers)
	for k, v := range answerErrs {
		errs.Add(k, v)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return answers, nil
}

// ParseAnswers decodes the serialized answers mapping posted with the form.
func ParseAnswers(payload string) (map[string]json.RawMessage, error) {
	out := map[string]json.RawMessage{}
	if strings.TrimSpace(payload) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]json.RawMessage{}
	}
	return out, nil
}
