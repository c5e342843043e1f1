// Package web is the server-rendered catalog front end. One Controller and one
// set of templates serve every resource described by a resource.Set.
package web

import (
	"context"
	"math"
	"net/url"
	"strconv"
	"strings"

	"job-catalog/internal/apiclient"
	"job-catalog/internal/resource"
)

// API is the subset of the catalog REST client the front end needs.
type API interface {
	List(ctx context.Context, endpoint string) ([]resource.Record, error)
	Search(ctx context.Context, endpoint string, q url.Values) ([]resource.Record, error)
	Get(ctx context.Context, endpoint, id string) (resource.Record, error)
	Create(ctx context.Context, endpoint string, payload map[string]any) error
	Update(ctx context.Context, endpoint, id string, payload map[string]any) error
	Delete(ctx context.Context, endpoint, id string) error
}

// Filters holds search input values keyed by API query parameter.
type Filters map[string]string

// FiltersFrom collects the resource's filter values from a request query.
func FiltersFrom(res *resource.Resource, q url.Values) Filters {
	f := make(Filters, len(res.Filters))
	for _, flt := range res.Filters {
		f[flt.Param] = q.Get(flt.Param)
	}
	return f
}

// Query returns only the filters whose trimmed value is non-empty.
func (f Filters) Query(res *resource.Resource) url.Values {
	q := url.Values{}
	for _, flt := range res.Filters {
		if v := strings.TrimSpace(f[flt.Param]); v != "" {
			q.Set(flt.Param, v)
		}
	}
	return q
}

// FormState is the content of the create/edit modal.
type FormState struct {
	Title  string
	ID     string
	Values map[string]string
	Error  string
}

// Controller runs list, search, form and delete actions for one resource.
type Controller struct {
	Res *resource.Resource
	API API
}

// Load fetches the full collection.
func (c *Controller) Load(ctx context.Context) ([]resource.Record, error) {
	return c.API.List(ctx, c.Res.Endpoint)
}

// Search fetches the collection narrowed by the non-empty filters.
func (c *Controller) Search(ctx context.Context, f Filters) ([]resource.Record, error) {
	return c.API.Search(ctx, c.Res.Endpoint, f.Query(c.Res))
}

// NewForm returns an empty form in create mode.
func (c *Controller) NewForm() FormState {
	values := make(map[string]string, len(c.Res.Fields))
	for _, f := range c.Res.Fields {
		values[f.Name] = ""
	}
	return FormState{Title: c.Res.Messages.CreateTitle, Values: values}
}

// EditForm fetches the record and fills every field from it.
func (c *Controller) EditForm(ctx context.Context, id string) (FormState, error) {
	rec, err := c.API.Get(ctx, c.Res.Endpoint, id)
	if err != nil {
		return FormState{}, err
	}
	state := FormState{
		Title:  c.Res.Messages.EditTitle,
		ID:     rec.ID(),
		Values: make(map[string]string, len(c.Res.Fields)),
	}
	if state.ID == "" {
		state.ID = id
	}
	for _, f := range c.Res.Fields {
		state.Values[f.Name] = rec.FormValue(f)
	}
	return state, nil
}

// Submit creates the record when the hidden id is empty and updates it
// otherwise. On failure the returned state keeps the submitted values and
// carries the message to show.
func (c *Controller) Submit(ctx context.Context, values url.Values) (FormState, error) {
	id := strings.TrimSpace(values.Get(c.Res.IDField()))
	payload := BuildPayload(c.Res, values)

	var err error
	if id == "" {
		err = c.API.Create(ctx, c.Res.Endpoint, payload)
	} else {
		err = c.API.Update(ctx, c.Res.Endpoint, id, payload)
	}
	if err == nil {
		return FormState{}, nil
	}

	state := FormState{Title: c.Res.Messages.CreateTitle, ID: id, Values: make(map[string]string, len(c.Res.Fields))}
	if id != "" {
		state.Title = c.Res.Messages.EditTitle
	}
	for _, f := range c.Res.Fields {
		state.Values[f.Name] = values.Get(f.Name)
	}
	state.Error = apiclient.DetailOf(err)
	if state.Error == "" {
		state.Error = c.Res.Messages.SaveFailed
	}
	return state, err
}

// Delete removes the record only when confirmed is true. It reports whether
// a DELETE request was issued.
func (c *Controller) Delete(ctx context.Context, id string, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	return true, c.API.Delete(ctx, c.Res.Endpoint, id)
}

// BuildPayload serializes every form field. Numbers that are blank, invalid
// or zero become null, as do blank optional text fields.
func BuildPayload(res *resource.Resource, values url.Values) map[string]any {
	payload := make(map[string]any, len(res.Fields))
	for _, f := range res.Fields {
		raw := values.Get(f.Name)
		switch {
		case f.Numeric():
			payload[f.Name] = parseNumber(raw)
		case !f.Required && raw == "":
			payload[f.Name] = nil
		default:
			payload[f.Name] = raw
		}
	}
	return payload
}

func parseNumber(raw string) any {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
