package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// JobHandler handles posting CRUD, applications and saved jobs.
type JobHandler struct {
	jobService ports.JobService
}

func NewJobHandler(jobService ports.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

type jobRequest struct {
	Title        string   `json:"title"        validate:"required,max=200"`
	Company      string   `json:"company"      validate:"required,max=200"`
	Location     string   `json:"location"     validate:"max=200"`
	Description  string   `json:"description"  validate:"required"`
	Requirements []string `json:"requirements" validate:"max=50,dive,max=500"`
	SalaryRange  string   `json:"salary_range" validate:"max=100"`
}

// Create posts a new job. Recruiter only.
//
// @Summary      Create a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      jobRequest  true  "Job details"
// @Success      201   {object}  domain.Job
// @Failure      403   {object}  map[string]string
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.jobService.Create(c.Request().Context(), ports.CreateJobInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryRange:  req.SalaryRange,
		PostedBy:     id.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// Get returns one posting.
//
// @Summary      Get a job posting
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.jobService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// List returns postings, optionally filtered by title/company.
//
// @Summary      List job postings
// @Tags         jobs
// @Produce      json
// @Param        title    query  string  false  "Title filter (substring)"
// @Param        company  query  string  false  "Company filter (substring)"
// @Param        limit    query  int     false  "Page size"
// @Param        offset   query  int     false  "Page offset"
// @Success      200  {array}  domain.Job
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	offset, _ := strconv.ParseInt(c.QueryParam("offset"), 10, 64)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	jobs, err := h.jobService.List(c.Request().Context(), ports.JobFilter{
		Title:   c.QueryParam("title"),
		Company: c.QueryParam("company"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Update modifies a posting (poster or admin).
//
// @Summary      Update a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string      true  "Job id"
// @Param        body  body      jobRequest  true  "Job details"
// @Success      200   {object}  domain.Job
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.jobService.Update(c.Request().Context(), c.Param("id"),
		ports.Actor{ID: id.ID, IsAdmin: id.IsAdmin},
		ports.UpdateJobInput{
			Title:        req.Title,
			Company:      req.Company,
			Location:     req.Location,
			Description:  req.Description,
			Requirements: req.Requirements,
			SalaryRange:  req.SalaryRange,
		})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Delete removes a posting (poster or admin).
//
// @Summary      Delete a job posting
// @Tags         jobs
// @Security     BearerAuth
// @Param        id  path  string  true  "Job id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	if err := h.jobService.Delete(c.Request().Context(), c.Param("id"),
		ports.Actor{ID: id.ID, IsAdmin: id.IsAdmin}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Apply records an application. Jobseeker only; a duplicate pair conflicts.
//
// @Summary      Apply to a job
// @Tags         jobs
// @Security     BearerAuth
// @Param        id  path  string  true  "Job id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	if err := h.jobService.Apply(c.Request().Context(), c.Param("id"), id.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Save bookmarks a posting for the caller.
//
// @Summary      Save a job
// @Tags         jobs
// @Security     BearerAuth
// @Param        id  path  string  true  "Job id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id}/save [post]
func (h *JobHandler) Save(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	if err := h.jobService.Save(c.Request().Context(), c.Param("id"), id.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unsave removes a bookmark.
//
// @Summary      Unsave a job
// @Tags         jobs
// @Security     BearerAuth
// @Param        id  path  string  true  "Job id"
// @Success      204
// @Router       /jobs/{id}/save [delete]
func (h *JobHandler) Unsave(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	if err := h.jobService.Unsave(c.Request().Context(), c.Param("id"), id.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
