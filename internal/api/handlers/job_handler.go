package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/services"
	"github.com/yoockh/joblynk/internal/utils"
)

type JobHandler struct {
	jobs       services.JobService
	recruiters services.RecruiterService
}

func NewJobHandler(jobs services.JobService, recruiters services.RecruiterService) *JobHandler {
	return &JobHandler{jobs: jobs, recruiters: recruiters}
}

func jobFilterFromQuery(c *gin.Context) models.JobFilter {
	return models.JobFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Location: strings.TrimSpace(c.Query("location")),
		JobType:  models.JobType(strings.TrimSpace(c.Query("jobType"))),
	}
}

// List is the public board: active jobs only.
func (h *JobHandler) List(c *gin.Context) {
	page, err := h.jobs.List(c.Request.Context(), jobFilterFromQuery(c), pageFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Paginated jobs retrieved successfully")
}

// ListMine returns the caller's jobs in every status.
func (h *JobHandler) ListMine(c *gin.Context) {
	rec, ok := callerRecruiter(c, h.recruiters, "JobHandler.ListMine")
	if !ok {
		return
	}
	f := jobFilterFromQuery(c)
	f.RecruiterID = rec.ID

	page, err := h.jobs.List(c.Request.Context(), f, pageFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Paginated jobs retrieved successfully")
}

func (h *JobHandler) Get(c *gin.Context) {
	j, err := h.jobs.Get(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, j, "Job retrieved successfully")
}

type CreateJobRequest struct {
	Title               string           `json:"title" binding:"required"`
	DescriptionMarkdown string           `json:"descriptionMarkdown" binding:"required"`
	Location            string           `json:"location" binding:"required"`
	JobType             models.JobType   `json:"jobType" binding:"required"`
	SalaryMin           *int             `json:"salaryMin"`
	SalaryMax           *int             `json:"salaryMax"`
	SalaryCurrency      *string          `json:"salaryCurrency"`
	ApplyURL            string           `json:"applyUrl" binding:"required"`
	Status              models.JobStatus `json:"status"`
	PostedAt            *time.Time       `json:"postedAt"`
	ExpiresAt           *time.Time       `json:"expiresAt"`
	EasyApply           bool             `json:"easyApply"`
	Skills              []string         `json:"skills"`
}

// Create ignores any recruiterId in the body; the caller's recruiter owns the job.
func (h *JobHandler) Create(c *gin.Context) {
	const op = "JobHandler.Create"

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, "invalid request body", err)
		return
	}
	rec, ok := callerRecruiter(c, h.recruiters, op)
	if !ok {
		return
	}

	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}
	j, err := h.jobs.Create(c.Request.Context(), &models.Job{
		RecruiterID:         rec.ID,
		Title:               req.Title,
		DescriptionMarkdown: req.DescriptionMarkdown,
		Location:            req.Location,
		JobType:             req.JobType,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryCurrency:      req.SalaryCurrency,
		ApplyURL:            req.ApplyURL,
		Status:              req.Status,
		PostedAt:            req.PostedAt,
		ExpiresAt:           req.ExpiresAt,
		EasyApply:           req.EasyApply,
		Skills:              skills,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, j, "Job created successfully")
}

type UpdateJobRequest struct {
	Title               *string           `json:"title"`
	DescriptionMarkdown *string           `json:"descriptionMarkdown"`
	Location            *string           `json:"location"`
	JobType             *models.JobType   `json:"jobType"`
	SalaryMin           *int              `json:"salaryMin"`
	SalaryMax           *int              `json:"salaryMax"`
	SalaryCurrency      *string           `json:"salaryCurrency"`
	ApplyURL            *string           `json:"applyUrl"`
	Status              *models.JobStatus `json:"status"`
	PostedAt            *time.Time        `json:"postedAt"`
	ExpiresAt           *time.Time        `json:"expiresAt"`
	EasyApply           *bool             `json:"easyApply"`
	Skills              *[]string         `json:"skills"`
}

func (h *JobHandler) Update(c *gin.Context) {
	const op = "JobHandler.Update"

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, "invalid request body", err)
		return
	}
	j, ok := h.ownedJob(c, op)
	if !ok {
		return
	}

	updated, err := h.jobs.Update(c.Request.Context(), j.ID, services.JobPatch{
		Title:               req.Title,
		DescriptionMarkdown: req.DescriptionMarkdown,
		Location:            req.Location,
		JobType:             req.JobType,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryCurrency:      req.SalaryCurrency,
		ApplyURL:            req.ApplyURL,
		Status:              req.Status,
		PostedAt:            req.PostedAt,
		ExpiresAt:           req.ExpiresAt,
		EasyApply:           req.EasyApply,
		Skills:              req.Skills,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "Job updated successfully")
}

type UpdateJobStatusRequest struct {
	Status models.JobStatus `json:"status" binding:"required"`
}

func (h *JobHandler) UpdateStatus(c *gin.Context) {
	const op = "JobHandler.UpdateStatus"

	var req UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, "status is required", err)
		return
	}
	j, ok := h.ownedJob(c, op)
	if !ok {
		return
	}

	updated, err := h.jobs.UpdateStatus(c.Request.Context(), j.ID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "Job status updated successfully")
}

func (h *JobHandler) Delete(c *gin.Context) {
	j, ok := h.ownedJob(c, "JobHandler.Delete")
	if !ok {
		return
	}
	if err := h.jobs.Delete(c.Request.Context(), j.ID); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Job deleted successfully")
}

// ownedJob loads :jobId and checks it belongs to the calling recruiter.
func (h *JobHandler) ownedJob(c *gin.Context, op string) (*models.Job, bool) {
	rec, ok := callerRecruiter(c, h.recruiters, op)
	if !ok {
		return nil, false
	}
	j, err := h.jobs.Get(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if j.RecruiterID != rec.ID {
		writeError(c, utils.E(utils.CodeForbidden, op, "You are not authorized to modify this job.", nil))
		return nil, false
	}
	return j, true
}
