package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/joblynk/internal/services"
)

type ProfileHandler struct {
	seekers    services.SeekerService
	recruiters services.RecruiterService
}

func NewProfileHandler(seekers services.SeekerService, recruiters services.RecruiterService) *ProfileHandler {
	return &ProfileHandler{seekers: seekers, recruiters: recruiters}
}

type UpdateSeekerRequest struct {
	EmploymentStatus *string `json:"employmentStatus"`
	ResumeURL        *string `json:"resumeUrl"`
}

func (h *ProfileHandler) UpdateSeeker(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateSeekerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ProfileHandler.UpdateSeeker", "invalid request body", err)
		return
	}

	s, err := h.seekers.Update(c.Request.Context(), userID, services.SeekerUpdate{
		EmploymentStatus: req.EmploymentStatus,
		ResumeURL:        req.ResumeURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, s, "Seeker profile updated successfully.")
}

type UpdateRecruiterRequest struct {
	CompanyName *string `json:"companyName"`
	CompanyURL  *string `json:"companyUrl" binding:"omitempty,url"`
}

func (h *ProfileHandler) UpdateRecruiter(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateRecruiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ProfileHandler.UpdateRecruiter", "invalid request body", err)
		return
	}

	r, err := h.recruiters.Update(c.Request.Context(), userID, services.RecruiterUpdate{
		CompanyName: req.CompanyName,
		CompanyURL:  req.CompanyURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, r, "Recruiter profile updated successfully.")
}
