package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/services"
	"github.com/yoockh/joblynk/internal/utils"
)

type ApplicationHandler struct {
	apps       services.ApplicationService
	seekers    services.SeekerService
	recruiters services.RecruiterService
}

func NewApplicationHandler(apps services.ApplicationService, seekers services.SeekerService, recruiters services.RecruiterService) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, seekers: seekers, recruiters: recruiters}
}

type CreateApplicationRequest struct {
	JobID string `json:"jobId" binding:"required"`
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	const op = "ApplicationHandler.Create"

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, "Job ID is required.", err)
		return
	}
	seeker, ok := callerSeeker(c, h.seekers, op)
	if !ok {
		return
	}

	app, err := h.apps.Create(c.Request.Context(), req.JobID, seeker.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, app, "Application submitted successfully.")
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	seeker, ok := callerSeeker(c, h.seekers, "ApplicationHandler.ListMine")
	if !ok {
		return
	}
	page, err := h.apps.ListForSeeker(c.Request.Context(), seeker.ID, pageFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Applications retrieved successfully.")
}

func (h *ApplicationHandler) ListForRecruiter(c *gin.Context) {
	rec, ok := callerRecruiter(c, h.recruiters, "ApplicationHandler.ListForRecruiter")
	if !ok {
		return
	}
	status := models.ApplicationStatus(strings.TrimSpace(c.Query("status")))
	page, err := h.apps.ListForRecruiter(c.Request.Context(), rec.ID, status, pageFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Applications retrieved successfully.")
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
}

// UpdateStatus lets a recruiter move an application on one of its own jobs.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	const op = "ApplicationHandler.UpdateStatus"

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, "status is required", err)
		return
	}
	rec, ok := callerRecruiter(c, h.recruiters, op)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	app, err := h.apps.Get(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if app.Job == nil || app.Job.RecruiterID != rec.ID {
		writeError(c, utils.E(utils.CodeForbidden, op, "You are not authorized to update this application.", nil))
		return
	}

	updated, err := h.apps.UpdateStatus(ctx, app.ID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, updated, "Application status updated successfully.")
}
