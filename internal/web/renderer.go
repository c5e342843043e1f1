package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"job-catalog/internal/resource"
)

//go:embed templates/*.tmpl static
var assets embed.FS

// StaticFS returns the embedded stylesheet directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

const missingBound = "—"

// Renderer turns records into HTML. It holds no per-request state.
type Renderer struct {
	tmpl *template.Template
	lang language.Tag
}

// NewRenderer parses the embedded templates. locale selects digit grouping
// for numbers, e.g. "en" renders 1000 as "1,000".
func NewRenderer(locale string) (*Renderer, error) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, fmt.Errorf("renderer: locale %q: %w", locale, err)
	}
	tmpl, err := template.New("web").ParseFS(assets, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("renderer: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, lang: tag}, nil
}

type cardView struct {
	ID        string
	Title     string
	Subtitle  string
	Body      string
	Details   []detailView
	Tags      []string
	EditURL   string
	DeleteURL string
}

type detailView struct {
	Icon  template.HTML
	Label string
	Value string
}

type itemsView struct {
	Res   *resource.Resource
	Cards []cardView
}

// Items renders the list fragment for records. An empty slice renders the
// resource's empty-state message.
func (r *Renderer) Items(res *resource.Resource, records []resource.Record) (template.HTML, error) {
	p := message.NewPrinter(r.lang)
	view := itemsView{Res: res, Cards: make([]cardView, 0, len(records))}
	for _, rec := range records {
		view.Cards = append(view.Cards, buildCard(p, res, rec))
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "items", view); err != nil {
		return "", fmt.Errorf("render %s items: %w", res.Name, err)
	}
	// Output of html/template is already escaped.
	return template.HTML(buf.String()), nil
}

func buildCard(p *message.Printer, res *resource.Resource, rec resource.Record) cardView {
	id := rec.ID()
	base := "/" + res.Name + "/" + url.PathEscape(id)
	card := cardView{
		ID:        id,
		Title:     rec.Text(res.Card.Title),
		Subtitle:  rec.Text(res.Card.Subtitle),
		Body:      rec.Text(res.Card.Body),
		EditURL:   base + "/edit",
		DeleteURL: base + "/delete",
	}
	for _, d := range res.Card.Details {
		value, ok := detailValue(p, d, rec)
		if !ok {
			continue
		}
		card.Details = append(card.Details, detailView{Icon: res.Icon(d.Icon), Label: d.Label, Value: value})
	}
	if res.Card.Tags != "" {
		card.Tags = SplitTags(rec.Text(res.Card.Tags))
	}
	return card
}

// detailValue formats one detail row. ok is false when an optional row has
// nothing to show.
func detailValue(p *message.Printer, d resource.Detail, rec resource.Record) (string, bool) {
	switch d.Kind {
	case resource.DetailRange:
		lo, hasLo := rec.Number(d.Fields[0])
		hi, hasHi := rec.Number(d.Fields[1])
		if !hasLo && !hasHi && d.Optional {
			return "", false
		}
		return bound(p, lo, hasLo) + " - " + bound(p, hi, hasHi) + d.Suffix, true
	case resource.DetailMoney:
		v, ok := rec.Number(d.Fields[0])
		if !ok {
			if d.Optional {
				return "", false
			}
			return missingBound + d.Suffix, true
		}
		return formatNumber(p, v) + d.Suffix, true
	default:
		v := rec.Text(d.Fields[0])
		if d.Optional && strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	}
}

func bound(p *message.Printer, v float64, ok bool) string {
	if !ok {
		return missingBound
	}
	return formatNumber(p, v)
}

func formatNumber(p *message.Printer, v float64) string {
	return p.Sprint(number.Decimal(v))
}

// SplitTags splits a comma separated list into trimmed, non-empty tags.
func SplitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ConfirmState is the content of the delete confirmation dialog.
type ConfirmState struct {
	ID     string
	Action string
}

// PageData is everything the resource page template needs.
type PageData struct {
	Resources []*resource.Resource
	Res       *resource.Resource
	Filters   Filters
	Items     template.HTML
	HasList   bool
	Alerts    []string
	Form      *FormState
	Confirm   *ConfirmState
}

// Page writes a full resource page.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, "page", data)
}

// Index writes the home page linking every resource.
func (r *Renderer) Index(w io.Writer, resources []*resource.Resource) error {
	return r.tmpl.ExecuteTemplate(w, "index", PageData{Resources: resources})
}
