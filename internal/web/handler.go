package web

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"job-catalog/internal/apiclient"
	"job-catalog/internal/resource"
	"job-catalog/internal/shared/server/middleware"
	"job-catalog/internal/shared/server/params"
	"job-catalog/internal/shared/telemetry"
)

const htmlContentType = "text/html; charset=utf-8"

// Handler serves the catalog pages for every resource in Resources.
type Handler struct {
	Resources *resource.Set
	API       API
	Renderer  *Renderer
}

// NewHandler constructs a Handler.
func NewHandler(resources *resource.Set, api API, renderer *Renderer) *Handler {
	return &Handler{Resources: resources, API: api, Renderer: renderer}
}

// RegisterRoutes attaches the index and one route group per resource.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.index)
	for _, res := range h.Resources.All() {
		p := &pages{h: h, ctl: &Controller{Res: res, API: h.API}}
		g := r.Group("/"+res.Name, params.Resource(res.Name))
		g.GET("", p.list)
		g.GET("/search", p.search)
		g.GET("/reset", p.list)
		g.GET("/items", p.items)
		g.GET("/new", p.newForm)
		g.GET("/:id/edit", p.editForm)
		g.POST("/save", p.save)
		g.GET("/:id/delete", p.confirmDelete)
		g.POST("/:id/delete", p.remove)
	}
}

func (h *Handler) index(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.Renderer.Index(&buf, h.Resources.All()); err != nil {
		telemetry.Err("web.render_failed", err, telemetry.Fields{"request_id": middleware.RequestIDFromContext(c)})
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// pages binds the page handlers of one resource to its controller.
type pages struct {
	h   *Handler
	ctl *Controller
}

func (p *pages) list(c *gin.Context) {
	p.render(c, p.pageData(nil), false)
}

func (p *pages) search(c *gin.Context) {
	p.render(c, p.pageData(FiltersFrom(p.ctl.Res, c.Request.URL.Query())), true)
}

// items writes only the list fragment, using search semantics.
func (p *pages) items(c *gin.Context) {
	res := p.ctl.Res
	records, err := p.ctl.Search(c.Request.Context(), FiltersFrom(res, c.Request.URL.Query()))
	if err != nil {
		p.logFailure(c, "search", err)
		c.Data(http.StatusBadGateway, htmlContentType, []byte(`<div class="alert" role="alert">`+template.HTMLEscapeString(res.Messages.SearchFailed)+`</div>`))
		return
	}
	html, err := p.h.Renderer.Items(res, records)
	if err != nil {
		p.logFailure(c, "render", err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}

func (p *pages) newForm(c *gin.Context) {
	data := p.pageData(nil)
	form := p.ctl.NewForm()
	data.Form = &form
	p.render(c, data, false)
}

func (p *pages) editForm(c *gin.Context) {
	id, ok := p.recordID(c)
	if !ok {
		return
	}
	data := p.pageData(nil)
	form, err := p.ctl.EditForm(c.Request.Context(), id)
	if err != nil {
		p.logFailure(c, "edit", err)
		data.Alerts = append(data.Alerts, p.ctl.Res.Messages.RecordFailed)
	} else {
		data.Form = &form
	}
	p.render(c, data, false)
}

func (p *pages) save(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	form, err := p.ctl.Submit(c.Request.Context(), c.Request.PostForm)
	if err == nil {
		c.Redirect(http.StatusSeeOther, "/"+p.ctl.Res.Name)
		return
	}
	p.logFailure(c, "save", err)
	data := p.pageData(nil)
	data.Form = &form
	p.render(c, data, false)
}

func (p *pages) confirmDelete(c *gin.Context) {
	id, ok := p.recordID(c)
	if !ok {
		return
	}
	data := p.pageData(nil)
	data.Confirm = &ConfirmState{ID: id, Action: "/" + p.ctl.Res.Name + "/" + id + "/delete"}
	p.render(c, data, false)
}

func (p *pages) remove(c *gin.Context) {
	id, ok := p.recordID(c)
	if !ok {
		return
	}
	_, err := p.ctl.Delete(c.Request.Context(), id, c.PostForm("confirm") == "yes")
	if err == nil {
		c.Redirect(http.StatusSeeOther, "/"+p.ctl.Res.Name)
		return
	}
	p.logFailure(c, "delete", err)
	data := p.pageData(nil)
	data.Alerts = append(data.Alerts, p.ctl.Res.Messages.DeleteFailed)
	p.render(c, data, false)
}

func (p *pages) pageData(f Filters) PageData {
	if f == nil {
		f = Filters{}
	}
	return PageData{Resources: p.h.Resources.All(), Res: p.ctl.Res, Filters: f}
}

// render fills the list behind the page, then writes the page. A failed
// fetch leaves the list empty and adds an alert.
func (p *pages) render(c *gin.Context, data PageData, filtered bool) {
	ctx := c.Request.Context()
	res := p.ctl.Res

	var (
		records []resource.Record
		err     error
	)
	if filtered {
		records, err = p.ctl.Search(ctx, data.Filters)
	} else {
		records, err = p.ctl.Load(ctx)
	}
	switch {
	case err != nil && filtered:
		p.logFailure(c, "search", err)
		data.Alerts = append(data.Alerts, res.Messages.SearchFailed)
	case err != nil:
		p.logFailure(c, "load", err)
		data.Alerts = append(data.Alerts, res.Messages.LoadFailed)
	default:
		items, renderErr := p.h.Renderer.Items(res, records)
		if renderErr != nil {
			p.logFailure(c, "render", renderErr)
			data.Alerts = append(data.Alerts, res.Messages.LoadFailed)
			break
		}
		data.Items = items
		data.HasList = true
	}

	var buf bytes.Buffer
	if err := p.h.Renderer.Page(&buf, data); err != nil {
		p.logFailure(c, "render", err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

func (p *pages) recordID(c *gin.Context) (string, bool) {
	id, err := params.ID(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return "", false
	}
	return strconv.FormatInt(id, 10), true
}

func (p *pages) logFailure(c *gin.Context, op string, err error) {
	fields := telemetry.Fields{
		"request_id": middleware.RequestIDFromContext(c),
		"resource":   p.ctl.Res.Name,
		"record_id":  c.GetString("recordId"),
	}
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		fields["status"] = apiErr.Status
		fields["code"] = apiErr.Code
	}
	telemetry.Err("web."+op+"_failed", err, fields)
}
