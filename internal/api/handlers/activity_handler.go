package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/joblynk/internal/services"
)

type ActivityHandler struct {
	activity   services.ActivityService
	recruiters services.RecruiterService
}

func NewActivityHandler(activity services.ActivityService, recruiters services.RecruiterService) *ActivityHandler {
	return &ActivityHandler{activity: activity, recruiters: recruiters}
}

func (h *ActivityHandler) ListForRecruiter(c *gin.Context) {
	rec, ok := callerRecruiter(c, h.recruiters, "ActivityHandler.ListForRecruiter")
	if !ok {
		return
	}
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)

	events, err := h.activity.ListForRecruiter(c.Request.Context(), rec.ID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, events, "Activity retrieved successfully.")
}
