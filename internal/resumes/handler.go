package resumes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-catalog/internal/shared/server/params"
	"job-catalog/internal/shared/server/respond"
)

const notFoundDetail = "Резюме не найдено"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/resumes", params.Resource("resumes"))
	g.POST("/", h.create)
	g.GET("/", h.list)
	g.GET("/search/", h.search)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var in Resume
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create resume")
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes")
		return
	}
	respond.OK(c, items)
}

func (h *Handler) search(c *gin.Context) {
	f := Filter{
		Query:           params.Text(c, "query"),
		Location:        params.Text(c, "location"),
		EmploymentType:  params.Text(c, "employment_type"),
		ExperienceYears: params.Text(c, "experience_years"),
	}
	var err error
	if f.SalaryMin, err = params.OptionalFloat(c, "salary_min"); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if f.SalaryMax, err = params.OptionalFloat(c, "salary_max"); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	items, err := h.Svc.Search(c.Request.Context(), f)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search resumes")
		return
	}
	respond.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	id, err := params.ID(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	r, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeLookupError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, r)
}

// update merges the keys present in the body into the stored resume.
func (h *Handler) update(c *gin.Context) {
	id, err := params.ID(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	body, err := c.GetRawData()
	if err != nil || !json.Valid(body) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	var badBody bool
	updated, err := h.Svc.Update(c.Request.Context(), id, func(r *Resume) error {
		if err := json.Unmarshal(body, r); err != nil {
			badBody = true
			return err
		}
		return nil
	})
	if err != nil {
		if badBody {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
			return
		}
		h.writeLookupError(c, err, "failed to update resume")
		return
	}
	respond.OK(c, updated)
}

func (h *Handler) remove(c *gin.Context) {
	id, err := params.ID(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.writeLookupError(c, err, "failed to delete resume")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) writeLookupError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", notFoundDetail)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", fallback)
}
