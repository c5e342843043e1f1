package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"job-catalog/internal/shared/util"
)

const resumeColumns = `id, full_name, position, about, salary_expectation, location, employment_type, experience_years, skills, education, email, phone, created_at`

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) Create(ctx context.Context, in Resume) (Resume, error) {
	const query = `
INSERT INTO resumes (full_name, position, about, salary_expectation, location, employment_type, experience_years, skills, education, email, phone)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		in.FullName,
		in.Position,
		in.About,
		nullableFloat(in.SalaryExpectation),
		in.Location,
		in.EmploymentType,
		in.ExperienceYears,
		nullableString(in.Skills),
		nullableString(in.Education),
		in.Email,
		nullableString(in.Phone),
	).Scan(&in.ID, &in.CreatedAt)
	if err != nil {
		return Resume{}, err
	}
	return in, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	out, err := scanResume(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return out, nil
}

func (r *PGRepo) List(ctx context.Context, limit int) ([]Resume, error) {
	return r.Search(ctx, Filter{}, limit)
}

func (r *PGRepo) Search(ctx context.Context, f Filter, limit int) ([]Resume, error) {
	query, args := buildSearchQuery(f, limit)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		item, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, in Resume) error {
	const query = `
UPDATE resumes SET
  full_name = $1,
  position = $2,
  about = $3,
  salary_expectation = $4,
  location = $5,
  employment_type = $6,
  experience_years = $7,
  skills = $8,
  education = $9,
  email = $10,
  phone = $11
WHERE id = $12`
	res, err := r.DB.ExecContext(ctx, query,
		in.FullName,
		in.Position,
		in.About,
		nullableFloat(in.SalaryExpectation),
		in.Location,
		in.EmploymentType,
		in.ExperienceYears,
		nullableString(in.Skills),
		nullableString(in.Education),
		in.Email,
		nullableString(in.Phone),
		in.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
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
		where = append(where, fmt.Sprintf("(position ILIKE %[1]s OR full_name ILIKE %[1]s OR skills ILIKE %[1]s OR about ILIKE %[1]s)", p))
	}
	if f.Location != "" {
		where = append(where, "location ILIKE "+next(util.ContainsPattern(f.Location)))
	}
	if f.EmploymentType != "" {
		where = append(where, "employment_type = "+next(f.EmploymentType))
	}
	if f.ExperienceYears != "" {
		where = append(where, "experience_years = "+next(f.ExperienceYears))
	}
	if f.SalaryMin != nil {
		where = append(where, "salary_expectation >= "+next(*f.SalaryMin))
	}
	if f.SalaryMax != nil {
		where = append(where, "salary_expectation <= "+next(*f.SalaryMax))
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + resumeColumns + ` FROM resumes`)
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

func scanResume(row rowScanner) (Resume, error) {
	var (
		r                        Resume
		salary                   sql.NullFloat64
		skills, education, phone sql.NullString
	)
	if err := row.Scan(
		&r.ID,
		&r.FullName,
		&r.Position,
		&r.About,
		&salary,
		&r.Location,
		&r.EmploymentType,
		&r.ExperienceYears,
		&skills,
		&education,
		&r.Email,
		&phone,
		&r.CreatedAt,
	); err != nil {
		return Resume{}, err
	}
	if salary.Valid {
		r.SalaryExpectation = &salary.Float64
	}
	if skills.Valid {
		r.Skills = &skills.String
	}
	if education.Valid {
		r.Education = &education.String
	}
	if phone.Valid {
		r.Phone = &phone.String
	}
	return r, nil
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
