package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/services"
	"github.com/yoockh/joblynk/internal/utils"
)

func callerRecruiter(c *gin.Context, recruiters services.RecruiterService, op string) (*models.Recruiter, bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return nil, false
	}
	rec, err := recruiters.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			badRequest(c, op, "Recruiter profile not found.", err)
			return nil, false
		}
		writeError(c, err)
		return nil, false
	}
	return rec, true
}

func callerSeeker(c *gin.Context, seekers services.SeekerService, op string) (*models.Seeker, bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return nil, false
	}
	s, err := seekers.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			badRequest(c, op, "Seeker profile not found.", err)
			return nil, false
		}
		writeError(c, err)
		return nil, false
	}
	return s, true
}

func pageFromQuery(c *gin.Context) utils.Page {
	return utils.ParsePage(c.Query("page"), c.Query("pageSize"))
}
