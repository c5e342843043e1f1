package vacancies

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-catalog/internal/shared/server/params"
	"job-catalog/internal/shared/server/respond"
)

const notFoundDetail = "Вакансия не найдена"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches vacancy routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/vacancies", params.Resource("vacancies"))
	g.POST("/", h.create)
	g.GET("/", h.list)
	g.GET("/search/", h.search)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var in Vacancy
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create vacancy")
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list vacancies")
		return
	}
	respond.OK(c, items)
}

func (h *Handler) search(c *gin.Context) {
	f := Filter{
		Query:          params.Text(c, "query"),
		Location:       params.Text(c, "location"),
		EmploymentType: params.Text(c, "employment_type"),
		Experience:     params.Text(c, "experience"),
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
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search vacancies")
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
	v, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeLookupError(c, err, "failed to fetch vacancy")
		return
	}
	respond.OK(c, v)
}

// update applies only the keys present in the body, like a merge patch.
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
	updated, err := h.Svc.Update(c.Request.Context(), id, func(v *Vacancy) error {
		if err := json.Unmarshal(body, v); err != nil {
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
		h.writeLookupError(c, err, "failed to update vacancy")
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
		h.writeLookupError(c, err, "failed to delete vacancy")
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
