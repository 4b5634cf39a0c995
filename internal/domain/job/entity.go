package job

import "strings"

type Budget struct {
	Min      float64
	Max      float64
	Currency string
}

type Job struct {
	Title          string
	Description    string
	RequiredSkills []string
	Budget         Budget
}

// Text collapses the posting into the single string fed to the embedding
// service. Candidate profiles are embedded the same way at ingest, so both
// sides live in the same vector space.
func (j Job) Text() string {
	return j.Title + ". " + j.Description + ". Required skills: " + strings.Join(j.RequiredSkills, ", ")
}
