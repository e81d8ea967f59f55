package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/joblynk/internal/api/handlers"
	"github.com/yoockh/joblynk/internal/api/middleware"
	"github.com/yoockh/joblynk/internal/observability/metrics"
	"github.com/yoockh/joblynk/internal/providers/identity"
	"github.com/yoockh/joblynk/internal/services"
)

type Deps struct {
	Log          *logrus.Logger
	APIPrefix    string
	CORSOrigins  []string
	FrontendHost string

	Identity      identity.Provider
	SessionCookie middleware.SessionCookie
	Users         services.UserService

	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Profile     *handlers.ProfileHandler
	Job         *handlers.JobHandler
	Application *handlers.ApplicationHandler
	File        *handlers.FileHandler
	Activity    *handlers.ActivityHandler
	Health      *handlers.HealthHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestLogger(d.Log), middleware.Metrics(), middleware.CORS(d.CORSOrigins))

	r.GET("/health", d.Health.Health)
	r.GET("/readyz", d.Health.Ready)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	prefix := d.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	api := r.Group(prefix)

	authn := middleware.SessionAuth(d.Identity, d.SessionCookie, d.FrontendHost, d.Log)
	seekerOnly := middleware.RequireSeeker(d.Users)
	recruiterOnly := middleware.RequireRecruiter(d.Users)

	auth := api.Group("/auth")
	auth.GET("/login", d.Auth.Login)
	auth.GET("/callback", d.Auth.Callback)
	auth.GET("/is-logged-in", d.Auth.IsLoggedIn)
	auth.GET("/logout", d.Auth.Logout)

	jobs := api.Group("/jobs")
	jobs.GET("", d.Job.List)
	jobs.GET("/recruiter", authn, recruiterOnly, d.Job.ListMine)
	jobs.GET("/:jobId", d.Job.Get)
	jobs.POST("", authn, recruiterOnly, d.Job.Create)
	jobs.PATCH("/:jobId", authn, recruiterOnly, d.Job.Update)
	jobs.PATCH("/:jobId/status", authn, recruiterOnly, d.Job.UpdateStatus)
	jobs.DELETE("/:jobId", authn, recruiterOnly, d.Job.Delete)

	apps := api.Group("/application", authn)
	apps.POST("", seekerOnly, d.Application.Create)
	apps.GET("", seekerOnly, d.Application.ListMine)
	apps.GET("/recruiter", recruiterOnly, d.Application.ListForRecruiter)
	apps.PUT("/recruiter/:id", recruiterOnly, d.Application.UpdateStatus)

	user := api.Group("/user", authn)
	user.GET("", d.User.Me)
	user.POST("", d.User.Create)
	user.PUT("", d.User.Update)
	user.POST("/role", d.User.SetRole)

	api.PATCH("/seeker", authn, seekerOnly, d.Profile.UpdateSeeker)
	api.PATCH("/recruiter", authn, recruiterOnly, d.Profile.UpdateRecruiter)

	files := api.Group("/files", authn)
	files.POST("/upload-url", d.File.UploadURL)
	files.POST("/s3-presigned-post", d.File.UploadURL)
	files.POST("/resume-url", d.File.ResumeURL)
	files.POST("/secure-resume-url", d.File.ResumeURL)
	files.GET("/secure-resume-url", d.File.ResumeURL)

	api.GET("/activity/recruiter", authn, recruiterOnly, d.Activity.ListForRecruiter)
}
