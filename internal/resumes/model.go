package resumes

import (
	"time"

	"job-catalog/internal/shared/util"
)

// Resume is a candidate profile published in the catalog.
type Resume struct {
	ID                int64     `json:"id"`
	FullName          string    `json:"full_name"`
	Position          string    `json:"position"`
	About             string    `json:"about"`
	SalaryExpectation *float64  `json:"salary_expectation"`
	Location          string    `json:"location"`
	EmploymentType    string    `json:"employment_type"`
	ExperienceYears   string    `json:"experience_years"`
	Skills            *string   `json:"skills"`
	Education         *string   `json:"education"`
	Email             string    `json:"email"`
	Phone             *string   `json:"phone"`
	CreatedAt         time.Time `json:"created_at"`
}

// Filter narrows a resume search. Zero values disable a constraint.
type Filter struct {
	Query           string
	Location        string
	EmploymentType  string
	ExperienceYears string
	SalaryMin       *float64
	SalaryMax       *float64
}

// Matches applies the filter in memory with the same semantics as the SQL search.
// Salary bounds never match a resume without a salary expectation.
func (f Filter) Matches(r Resume) bool {
	if f.Query != "" {
		skills := ""
		if r.Skills != nil {
			skills = *r.Skills
		}
		if !util.ContainsFold(r.Position, f.Query) &&
			!util.ContainsFold(r.FullName, f.Query) &&
			!util.ContainsFold(skills, f.Query) &&
			!util.ContainsFold(r.About, f.Query) {
			return false
		}
	}
	if f.Location != "" && !util.ContainsFold(r.Location, f.Location) {
		return false
	}
	if f.EmploymentType != "" && r.EmploymentType != f.EmploymentType {
		return false
	}
	if f.ExperienceYears != "" && r.ExperienceYears != f.ExperienceYears {
		return false
	}
	if f.SalaryMin != nil && (r.SalaryExpectation == nil || *r.SalaryExpectation < *f.SalaryMin) {
		return false
	}
	if f.SalaryMax != nil && (r.SalaryExpectation == nil || *r.SalaryExpectation > *f.SalaryMax) {
		return false
	}
	return true
}
