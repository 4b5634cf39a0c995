package candidate

import (
	"fmt"
	"strings"
)

type Experience struct {
	Company       string
	Role          string
	StartDate     string
	EndDate       string
	DurationYears float64
}

func (e Experience) Text() string {
	return fmt.Sprintf("Worked as %s at %s for %.1f years", e.Role, e.Company, e.DurationYears)
}

type Education struct {
	Institution      string
	Degree           string
	YearOfGraduation int
}

func (e Education) Text() string {
	return fmt.Sprintf("Studied %s at %s graduating in %d", e.Degree, e.Institution, e.YearOfGraduation)
}

// Candidate is a read-only snapshot of a stored profile. The ranking engine
// never mutates it.
type Candidate struct {
	FirstName   string
	LastName    string
	Email       string
	Skills      []string
	Experiences []Experience
	Education   []Education
}

func (c Candidate) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ProfileText flattens the profile into the text embedded at ingest time.
// It must stay consistent with job.Job.Text's vector space: both go through
// the same embedding service.
func (c Candidate) ProfileText() string {
	parts := make([]string, 0, len(c.Experiences)+len(c.Education)+1)
	for _, exp := range c.Experiences {
		parts = append(parts, exp.Text())
	}
	for _, edu := range c.Education {
		parts = append(parts, edu.Text())
	}
	parts = append(parts, strings.Join(c.Skills, " "))
	return strings.Join(parts, " ")
}
