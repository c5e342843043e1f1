package vacancies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"job-catalog/internal/shared/util"
)

const vacancyColumns = `id, title, company, description, salary_min, salary_max, location, employment_type, experience, skills, created_at`

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a vacancy and returns it with the database-assigned id.
func (r *PGRepo) Create(ctx context.Context, v Vacancy) (Vacancy, error) {
	const query = `
INSERT INTO vacancies (title, company, description, salary_min, salary_max, location, employment_type, experience, skills)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		v.Title,
		v.Company,
		v.Description,
		nullableFloat(v.SalaryMin),
		nullableFloat(v.SalaryMax),
		v.Location,
		v.EmploymentType,
		v.Experience,
		nullableString(v.Skills),
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return Vacancy{}, err
	}
	return v, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (Vacancy, error) {
	query := `SELECT ` + vacancyColumns + ` FROM vacancies WHERE id = $1`
	v, err := scanVacancy(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Vacancy{}, ErrNotFound
		}
		return Vacancy{}, err
	}
	return v, nil
}

func (r *PGRepo) List(ctx context.Context, limit int) ([]Vacancy, error) {
	return r.Search(ctx, Filter{}, limit)
}

// Search runs a filtered select; an empty filter lists everything.
func (r *PGRepo) Search(ctx context.Context, f Filter, limit int) ([]Vacancy, error) {
	query, args := buildSearchQuery(f, limit)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Vacancy{}
	for rows.Next() {
		v, err := scanVacancy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, v Vacancy) error {
	const query = `
UPDATE vacancies SET
  title = $1,
  company = $2,
  description = $3,
  salary_min = $4,
  salary_max = $5,
  location = $6,
  employment_type = $7,
  experience = $8,
  skills = $9
WHERE id = $10`
	res, err := r.DB.ExecContext(ctx, query,
		v.Title,
		v.Company,
		v.Description,
		nullableFloat(v.SalaryMin),
		nullableFloat(v.SalaryMax),
		v.Location,
		v.EmploymentType,
		v.Experience,
		nullableString(v.Skills),
		v.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM vacancies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func buildSearchQuery(f Filter, limit int) (string, []any) {
	var (
		where []string
		args  []any
	)
	next := func(arg any) string {
		args = append(args, arg)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Query != "" {
		p := next(util.ContainsPattern(f.Query))
		where = append(where, fmt.Sprintf("(title ILIKE %[1]s OR company ILIKE %[1]s OR skills ILIKE %[1]s OR description ILIKE %[1]s)", p))
	}
	if f.Location != "" {
		where = append(where, "location ILIKE "+next(util.ContainsPattern(f.Location)))
	}
	if f.EmploymentType != "" {
		where = append(where, "employment_type = "+next(f.EmploymentType))
	}
	if f.Experience != "" {
		where = append(where, "experience = "+next(f.Experience))
	}
	if f.SalaryMin != nil {
		where = append(where, "salary_max >= "+next(*f.SalaryMin))
	}
	if f.SalaryMax != nil {
		where = append(where, "salary_min <= "+next(*f.SalaryMax))
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + vacancyColumns + ` FROM vacancies`)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY id")
	if limit > 0 {
		b.WriteString(" LIMIT " + next(limit))
	}
	return b.String(), args
}

func scanVacancy(row rowScanner) (Vacancy, error) {
	var v Vacancy
	var salaryMin, salaryMax sql.NullFloat64
	var skills sql.NullString
	if err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Company,
		&v.Description,
		&salaryMin,
		&salaryMax,
		&v.Location,
		&v.EmploymentType,
		&v.Experience,
		&skills,
		&v.CreatedAt,
	); err != nil {
		return Vacancy{}, err
	}
	if salaryMin.Valid {
		v.SalaryMin = &salaryMin.Float64
	}
	if salaryMax.Valid {
		v.SalaryMax = &salaryMax.Float64
	}
	if skills.Valid {
		v.Skills = &skills.String
	}
	return v, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
