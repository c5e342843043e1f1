package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"job-catalog/internal/apiclient"
	"job-catalog/internal/resource"
)

type backendCall struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type fakeBackend struct {
	mu     sync.Mutex
	calls  []backendCall
	routes map[string]func(w http.ResponseWriter)
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.calls = append(b.calls, backendCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body)})
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if fn, ok := b.routes[r.Method+" "+r.URL.Path]; ok {
		fn(w)
		return
	}
	switch r.Method {
	case http.MethodGet:
		_, _ = io.WriteString(w, `[]`)
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		_, _ = io.WriteString(w, `{}`)
	}
}

func (b *fakeBackend) methods(method string) []backendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []backendCall
	for _, c := range b.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func setupWeb(t *testing.T, routes map[string]func(w http.ResponseWriter)) (*gin.Engine, *fakeBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &fakeBackend{routes: routes}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	set, err := resource.Load("")
	if err != nil {
		t.Fatalf("resource.Load: %v", err)
	}
	router := gin.New()
	NewHandler(set, apiclient.New(srv.URL, time.Second), newTestRenderer(t)).RegisterRoutes(router)
	return router, backend
}

func serve(router http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestListPageRendersRecords(t *testing.T) {
	router, backend := setupWeb(t, map[string]func(http.ResponseWriter){
		"GET /api/vacancies/": func(w http.ResponseWriter) {
			_, _ = io.WriteString(w, `[{"id":7,"title":"Engineer","company":"Acme","salary_min":1000,"salary_max":null,"skills":"Go, SQL"}]`)
		},
	})

	resp := serve(router, http.MethodGet, "/vacancies", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, `id="vacanciesList"`) || !strings.Contains(body, "Engineer") || !strings.Contains(body, "1,000 - — ₽") {
		t.Fatalf("list not rendered:\n%s", body)
	}
	if got := backend.methods(http.MethodGet); len(got) != 1 || got[0].Path != "/api/vacancies/" {
		t.Fatalf("unexpected backend calls %+v", got)
	}
}

func TestListPageShowsAlertOnFailure(t *testing.T) {
	router, _ := setupWeb(t, map[string]func(http.ResponseWriter){
		"GET /api/vacancies/": func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})

	body := serve(router, http.MethodGet, "/vacancies", nil).Body.String()
	if !strings.Contains(body, `role="alert">Не удалось загрузить вакансии`) {
		t.Fatalf("expected load alert:\n%s", body)
	}
	if strings.Contains(body, "no-results") {
		t.Fatalf("failed load must not render a list:\n%s", body)
	}
}

func TestSearchWithoutFiltersSendsNoParameters(t *testing.T) {
	router, backend := setupWeb(t, nil)

	resp := serve(router, http.MethodGet, "/resumes/search?query=&location=+&salary_min=", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	calls := backend.methods(http.MethodGet)
	if len(calls) != 1 || calls[0].Path != "/api/resumes/search/" || calls[0].Query != "" {
		t.Fatalf("unexpected search call %+v", calls)
	}
	if !strings.Contains(resp.Body.String(), "Резюме не найдены") {
		t.Fatalf("expected empty state")
	}
}

func TestSearchPassesFilters(t *testing.T) {
	router, backend := setupWeb(t, nil)

	serve(router, http.MethodGet, "/resumes/items?experience_years=1-3&salary_min=500", nil)
	calls := backend.methods(http.MethodGet)
	if len(calls) != 1 {
		t.Fatalf("expected one call, got %+v", calls)
	}
	q, _ := url.ParseQuery(calls[0].Query)
	if q.Get("experience_years") != "1-3" || q.Get("salary_min") != "500" || len(q) != 2 {
		t.Fatalf("unexpected query %q", calls[0].Query)
	}
}

func TestSaveRoutesByHiddenID(t *testing.T) {
	router, backend := setupWeb(t, nil)

	resp := serve(router, http.MethodPost, "/vacancies/save", vacancyForm(""))
	if resp.Code != http.StatusSeeOther || resp.Header().Get("Location") != "/vacancies" {
		t.Fatalf("expected redirect to list, got %d %q", resp.Code, resp.Header().Get("Location"))
	}
	resp = serve(router, http.MethodPost, "/vacancies/save", vacancyForm("42"))
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", resp.Code)
	}

	posts := backend.methods(http.MethodPost)
	puts := backend.methods(http.MethodPut)
	if len(posts) != 1 || posts[0].Path != "/api/vacancies/" {
		t.Fatalf("unexpected POST calls %+v", posts)
	}
	if len(puts) != 1 || puts[0].Path != "/api/vacancies/42" {
		t.Fatalf("unexpected PUT calls %+v", puts)
	}
	if !strings.Contains(posts[0].Body, `"salary_max":null`) {
		t.Fatalf("blank salary_max should be null: %s", posts[0].Body)
	}
}

func TestSaveFailureShowsServerDetail(t *testing.T) {
	router, _ := setupWeb(t, map[string]func(http.ResponseWriter){
		"PUT /api/vacancies/9": func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Вакансия не найдена"}`)
		},
	})

	resp := serve(router, http.MethodPost, "/vacancies/save", vacancyForm("9"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected re-rendered page, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, `id="vacancyModal"`) || !strings.Contains(body, "Вакансия не найдена") {
		t.Fatalf("expected modal with detail:\n%s", body)
	}
	if !strings.Contains(body, `value="Engineer"`) {
		t.Fatalf("submitted values should be kept:\n%s", body)
	}
}

func TestEditFormPage(t *testing.T) {
	router, _ := setupWeb(t, map[string]func(http.ResponseWriter){
		"GET /api/vacancies/7": func(w http.ResponseWriter) {
			_, _ = io.WriteString(w, `{"id":7,"title":"Engineer","company":"Acme","salary_min":1000,"salary_max":null,"skills":null}`)
		},
	})

	body := serve(router, http.MethodGet, "/vacancies/7/edit", nil).Body.String()
	for _, want := range []string{
		`id="vacancyId" name="vacancyId" value="7"`,
		`id="title" name="title" type="text" value="Engineer"`,
		`id="salary_min" name="salary_min" type="number" step="any" min="0" value="1000"`,
		`id="salary_max" name="salary_max" type="number" step="any" min="0" value=""`,
		"Редактировать вакансию",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("edit form missing %s:\n%s", want, body)
		}
	}
}

func TestEditFormFailureShowsAlert(t *testing.T) {
	router, _ := setupWeb(t, map[string]func(http.ResponseWriter){
		"GET /api/resumes/3": func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusNotFound)
		},
	})

	body := serve(router, http.MethodGet, "/resumes/3/edit", nil).Body.String()
	if !strings.Contains(body, "Не удалось загрузить резюме") || strings.Contains(body, `id="resumeModal"`) {
		t.Fatalf("expected alert without modal:\n%s", body)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	router, backend := setupWeb(t, nil)

	body := serve(router, http.MethodGet, "/vacancies/7/delete", nil).Body.String()
	if !strings.Contains(body, `action="/vacancies/7/delete"`) || !strings.Contains(body, "Вы уверены") {
		t.Fatalf("confirmation dialog missing:\n%s", body)
	}

	resp := serve(router, http.MethodPost, "/vacancies/7/delete", url.Values{"confirm": {"no"}})
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", resp.Code)
	}
	if n := len(backend.methods(http.MethodDelete)); n != 0 {
		t.Fatalf("declined delete issued %d DELETE calls", n)
	}

	resp = serve(router, http.MethodPost, "/vacancies/7/delete", url.Values{"confirm": {"yes"}})
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", resp.Code)
	}
	deletes := backend.methods(http.MethodDelete)
	if len(deletes) != 1 || deletes[0].Path != "/api/vacancies/7" {
		t.Fatalf("unexpected DELETE calls %+v", deletes)
	}
}

func TestDeleteFailureShowsAlert(t *testing.T) {
	router, _ := setupWeb(t, map[string]func(http.ResponseWriter){
		"DELETE /api/resumes/4": func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})

	resp := serve(router, http.MethodPost, "/resumes/4/delete", url.Values{"confirm": {"yes"}})
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "Не удалось удалить резюме") {
		t.Fatalf("expected delete alert, got %d:\n%s", resp.Code, resp.Body.String())
	}
}

func TestInvalidRecordID(t *testing.T) {
	router, backend := setupWeb(t, nil)
	if resp := serve(router, http.MethodGet, "/vacancies/abc/edit", nil); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if len(backend.calls) != 0 {
		t.Fatalf("invalid id should not reach the backend: %+v", backend.calls)
	}
}

func TestIndexLinksResources(t *testing.T) {
	router, _ := setupWeb(t, nil)
	body := serve(router, http.MethodGet, "/", nil).Body.String()
	if !strings.Contains(body, `href="/vacancies"`) || !strings.Contains(body, `href="/resumes"`) {
		t.Fatalf("index missing links:\n%s", body)
	}
}

func TestResetReloadsFullList(t *testing.T) {
	router, backend := setupWeb(t, nil)

	resp := serve(router, http.MethodGet, "/vacancies/reset", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	calls := backend.methods(http.MethodGet)
	if len(calls) != 1 || calls[0].Path != "/api/vacancies/" || calls[0].Query != "" {
		t.Fatalf("expected a plain list call, got %+v", calls)
	}
}
