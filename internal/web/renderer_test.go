package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"job-catalog/internal/resource"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("en")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func decode(t *testing.T, raw string) []resource.Record {
	t.Helper()
	recs, err := resource.DecodeRecords(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	return recs
}

func TestItemsRendersVacancyCard(t *testing.T) {
	res := loadResource(t, "vacancies")
	recs := decode(t, `[{"id":7,"title":"Engineer","company":"Acme","description":"Build things","salary_min":1000,"salary_max":null,"location":"Remote","employment_type":"Full-time","experience":"3 years","skills":"Go, SQL"}]`)

	out, err := newTestRenderer(t).Items(res, recs)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "1,000 - — ₽") {
		t.Fatalf("salary line missing:\n%s", html)
	}
	if strings.Count(html, `<span class="tag">`) != 2 ||
		!strings.Contains(html, `<span class="tag">Go</span>`) ||
		!strings.Contains(html, `<span class="tag">SQL</span>`) {
		t.Fatalf("expected Go and SQL chips:\n%s", html)
	}
	if !strings.Contains(html, `href="/vacancies/7/edit"`) || !strings.Contains(html, `href="/vacancies/7/delete"`) {
		t.Fatalf("missing action links:\n%s", html)
	}
}

func TestItemsEscapesUserText(t *testing.T) {
	res := loadResource(t, "resumes")
	recs := decode(t, `[{"id":1,"full_name":"<script>alert(1)</script>","position":"Dev","about":"a & b","location":"x","employment_type":"y","experience_years":"z","email":"e@example.com"}]`)

	out, err := newTestRenderer(t).Items(res, recs)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "<script>") {
		t.Fatalf("script tag was not escaped:\n%s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;alert(1)&lt;/script&gt;") || !strings.Contains(html, "a &amp; b") {
		t.Fatalf("escaped text missing:\n%s", html)
	}
}

func TestItemsOmitsEmptyOptionalRows(t *testing.T) {
	res := loadResource(t, "resumes")
	recs := decode(t, `[{"id":1,"full_name":"Анна","position":"QA","about":"about","salary_expectation":0,"location":"Казань","employment_type":"Полная","experience_years":"1 год","skills":null,"education":"","email":"anna@example.com","phone":null}]`)

	out, err := newTestRenderer(t).Items(res, recs)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	html := string(out)
	for _, label := range []string{"Ожидаемая ЗП:", "Телефон:", "Образование:", `class="tags"`, "—"} {
		if strings.Contains(html, label) {
			t.Fatalf("row %q should be omitted:\n%s", label, html)
		}
	}
	for _, label := range []string{"Местоположение:", "Email:", "anna@example.com"} {
		if !strings.Contains(html, label) {
			t.Fatalf("row %q should be present:\n%s", label, html)
		}
	}

	vac := loadResource(t, "vacancies")
	out, err = newTestRenderer(t).Items(vac, decode(t, `[{"id":2,"title":"T","salary_min":null,"salary_max":null}]`))
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if strings.Contains(string(out), "Зарплата:") {
		t.Fatalf("salary row should be omitted:\n%s", out)
	}
}

func TestItemsResumeSalaryUsesGrouping(t *testing.T) {
	res := loadResource(t, "resumes")
	out, err := newTestRenderer(t).Items(res, decode(t, `[{"id":3,"full_name":"Пётр","salary_expectation":150000}]`))
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if !strings.Contains(string(out), "150,000 ₽") {
		t.Fatalf("expected grouped salary:\n%s", out)
	}
}

func TestItemsEmptyState(t *testing.T) {
	res := loadResource(t, "vacancies")
	out, err := newTestRenderer(t).Items(res, nil)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if !strings.Contains(string(out), `<div class="no-results">Вакансии не найдены</div>`) {
		t.Fatalf("unexpected empty state %q", out)
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" Go, ,SQL ,  Docker,")
	if diff := cmp.Diff([]string{"Go", "SQL", "Docker"}, got); diff != "" {
		t.Fatalf("SplitTags mismatch (-want +got):\n%s", diff)
	}
	if SplitTags("") != nil {
		t.Fatal("empty skills should yield no tags")
	}
}

func TestPageExposesDOMContract(t *testing.T) {
	res := loadResource(t, "vacancies")
	r := newTestRenderer(t)
	form := (&Controller{Res: res}).NewForm()

	var buf bytes.Buffer
	err := r.Page(&buf, PageData{Resources: []*resource.Resource{res}, Res: res, Filters: Filters{"query": "go"}, HasList: true, Form: &form})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		`id="vacanciesList"`,
		`id="vacancyModal"`,
		`id="vacancyForm"`,
		`id="vacancyId"`,
		`id="salary_min"`,
		`id="searchQuery" name="query"`,
		`value="go"`,
		`id="employmentTypeFilter"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("page missing %s", want)
		}
	}
}

func TestNewRendererRejectsBadLocale(t *testing.T) {
	if _, err := NewRenderer("not a locale!"); err == nil {
		t.Fatal("expected locale error")
	}
}
