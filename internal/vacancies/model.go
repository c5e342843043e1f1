package vacancies

import (
	"time"

	"job-catalog/internal/shared/util"
)

// Vacancy is a job opening published in the catalog.
type Vacancy struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Description    string    `json:"description"`
	SalaryMin      *float64  `json:"salary_min"`
	SalaryMax      *float64  `json:"salary_max"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	Experience     string    `json:"experience"`
	Skills         *string   `json:"skills"`
	CreatedAt      time.Time `json:"created_at"`
}

// Filter narrows a vacancy search. Zero values disable a constraint.
type Filter struct {
	Query          string
	Location       string
	EmploymentType string
	Experience     string
	SalaryMin      *float64
	SalaryMax      *float64
}

// Matches applies the filter in memory with the same semantics as the SQL search.
// A salary bound only matches vacancies that publish the opposite bound.
func (f Filter) Matches(v Vacancy) bool {
	if f.Query != "" {
		skills := ""
		if v.Skills != nil {
			skills = *v.Skills
		}
		if !util.ContainsFold(v.Title, f.Query) &&
			!util.ContainsFold(v.Company, f.Query) &&
			!util.ContainsFold(skills, f.Query) &&
			!util.ContainsFold(v.Description, f.Query) {
			return false
		}
	}
	if f.Location != "" && !util.ContainsFold(v.Location, f.Location) {
		return false
	}
	if f.EmploymentType != "" && v.EmploymentType != f.EmploymentType {
		return false
	}
	if f.Experience != "" && v.Experience != f.Experience {
		return false
	}
	if f.SalaryMin != nil && (v.SalaryMax == nil || *v.SalaryMax < *f.SalaryMin) {
		return false
	}
	if f.SalaryMax != nil && (v.SalaryMin == nil || *v.SalaryMin > *f.SalaryMax) {
		return false
	}
	return true
}
