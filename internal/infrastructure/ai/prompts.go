package ai

import (
	"fmt"
	"strings"
)

type SummaryInput struct {
	JobTitle        string
	Department      string
	ExperienceLevel string
	JobType         string
	Location        string
	Skills          []string
}

type ListInput struct {
	FieldName       string
	JobTitle        string
	Summary         string
	ExperienceLevel string
	JobType         string
}

const (
	FieldQualifications   = "qualifications"
	FieldResponsibilities = "responsibilities"
)

func SummaryPrompt(in SummaryInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a compelling job summary of 3 to 4 sentences for a %q position.\n", in.JobTitle)
	writeOpt(&b, "Department", in.Department)
	writeOpt(&b, "Experience level", in.ExperienceLevel)
	writeOpt(&b, "Job type", in.JobType)
	writeOpt(&b, "Location", in.Location)
	if len(in.Skills) > 0 {
		writeOpt(&b, "Key skills", strings.Join(in.Skills, ", "))
	}
	b.WriteString("Return a single plain-text paragraph with no headings, lists or markdown.")
	return b.String()
}

func ListPrompt(in ListInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate 5 to 7 concise %s for a %q position.\n", in.FieldName, in.JobTitle)
	writeOpt(&b, "Job summary", in.Summary)
	writeOpt(&b, "Experience level", in.ExperienceLevel)
	writeOpt(&b, "Job type", in.JobType)
	b.WriteString(`Respond with a JSON array of strings only, for example ["item one", "item two"].`)
	return b.String()
}

func writeOpt(b *strings.Builder, label, v string) {
	if v = strings.TrimSpace(v); v != "" {
		fmt.Fprintf(b, "%s: %s\n", label, v)
	}
}
